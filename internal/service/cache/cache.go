package cache

import "time"

// BytesCache stores marshaled HTTP response bodies keyed by request content.
// It sits in front of the evaluation pipeline so identical payloads can be
// replayed without recomputing or re-encoding anything.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
