package sentiment

import (
	"math"
	"strings"
	"time"
	"unicode"

	"RegimePulse/internal/domain/models"
	"RegimePulse/internal/domain/service"
)

// normalizationAlpha dampens the raw valence sum into [-1,1]:
// score = s / sqrt(s^2 + alpha).
const normalizationAlpha = 15.0

// polarityBand separates neutral from polar headlines; compound scores
// within +/-0.05 read as neutral.
const polarityBand = 0.05

// LexiconScorer is a deterministic rule-based text scorer. It carries no
// state and is safe for concurrent use.
type LexiconScorer struct{}

// NewLexiconScorer returns the default scorer backed by the built-in
// financial lexicon.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Score returns the polarity of a single text in [-1,1]. Empty or
// lexicon-free text scores exactly 0.
func (s *LexiconScorer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	sum := 0.0
	for i, tok := range tokens {
		valence, ok := lexicon[tok]
		if !ok {
			continue
		}
		if i > 0 {
			prev := tokens[i-1]
			if negators[prev] {
				valence = -valence
			} else if b, ok := boosters[prev]; ok {
				valence *= b
			}
		}
		sum += valence
	}
	if sum == 0 {
		return 0
	}

	score := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return clamp(score, -1, 1)
}

// ScoreBatch aggregates a batch of news items into a single sentiment score
// using the supplied scorer. Items are deduplicated by (timestamp, text);
// each surviving item's score is weighted by its source weight (1 when
// unset). An empty batch yields the NoData marker, which is distinct from a
// genuinely neutral 0.
func ScoreBatch(s service.TextScorer, batch models.NewsBatch) models.SentimentScore {
	type itemKey struct {
		ts   int64
		text string
	}

	seen := make(map[itemKey]bool, len(batch))
	var weightedSum, weightSum float64
	var counted int
	var asOf time.Time

	for _, item := range batch {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		key := itemKey{ts: item.Timestamp.UnixNano(), text: item.Text}
		if seen[key] {
			continue
		}
		seen[key] = true

		w := item.SourceWeight
		if w <= 0 {
			w = 1
		}
		weightedSum += s.Score(item.Text) * w
		weightSum += w
		counted++
		if item.Timestamp.After(asOf) {
			asOf = item.Timestamp
		}
	}

	if counted == 0 || weightSum == 0 {
		return models.SentimentScore{NoData: true}
	}
	return models.SentimentScore{
		Value: weightedSum / weightSum,
		Items: counted,
		AsOf:  asOf,
	}
}

// Label buckets a sentiment value: positive above the polarity band,
// negative below, neutral within.
func Label(score models.SentimentScore) string {
	switch {
	case score.NoData:
		return "no_data"
	case score.Value >= polarityBand:
		return "positive"
	case score.Value <= -polarityBand:
		return "negative"
	default:
		return "neutral"
	}
}

// tokenize lowercases and splits on anything outside letters, digits and
// apostrophes, so "isn't" survives as one token.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
