package live

import "time"

// CacheEntry holds either a payload or an error, never both.
type CacheEntry[T any] struct {
	OK        bool      `json:"ok"`
	UpdatedAt time.Time `json:"updated_at"`
	Payload   *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func OKEntry[T any](at time.Time, payload T) CacheEntry[T] {
	return CacheEntry[T]{
		OK:        true,
		UpdatedAt: at,
		Payload:   &payload,
	}
}

func ErrorEntry[T any](at time.Time, err error) CacheEntry[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return CacheEntry[T]{
		OK:        false,
		UpdatedAt: at,
		Error:     msg,
	}
}

// Value returns the payload of an ok entry.
func (e CacheEntry[T]) Value() (T, bool) {
	var zero T
	if !e.OK || e.Payload == nil {
		return zero, false
	}
	return *e.Payload, true
}

// Age is the time elapsed since the entry was written.
func (e CacheEntry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.UpdatedAt)
}
