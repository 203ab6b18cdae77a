package usecase

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"RegimePulse/internal/domain/models"
)

// HashInputs fingerprints the full input payload of one evaluation. The op
// tag keeps different operations over the same payload from sharing cache
// entries.
func HashInputs(op string, series models.PriceSeries, news models.NewsBatch) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(op)
	hashSeries(d, series)
	hashBatch(d, news)
	return d.Sum64()
}

func hashSeries(d *xxhash.Digest, series models.PriceSeries) {
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	writeU64(uint64(len(series)))
	for _, p := range series {
		writeU64(uint64(p.Timestamp.UnixNano()))
		writeF64(p.Open)
		writeF64(p.High)
		writeF64(p.Low)
		writeF64(p.Close)
		writeF64(p.Volume)
	}
}

func hashBatch(d *xxhash.Digest, news models.NewsBatch) {
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	writeU64(uint64(len(news)))
	for _, n := range news {
		writeU64(uint64(n.Timestamp.UnixNano()))
		writeU64(uint64(len(n.Text)))
		_, _ = d.WriteString(n.Text)
		writeU64(math.Float64bits(n.SourceWeight))
	}
}
