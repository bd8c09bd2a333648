package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig is the per-dependency breaker setting read from the
// environment. A disabled config yields a nil breaker, which lets every call
// through.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultCircuitBreakerConfig trips after five consecutive transient failures
// and probes the provider again after 15 s.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Validate reports the first invalid field. prefix names the env block in
// the message, e.g. API_FOOTBALL_CIRCUIT.
func (c CircuitBreakerConfig) Validate(prefix string) error {
	if !c.Enabled {
		return nil
	}
	if c.FailureThreshold < 1 {
		return fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	if c.OpenTimeout <= 0 {
		return fmt.Errorf("%s_OPEN_TIMEOUT must be > 0", prefix)
	}
	if c.HalfOpenMaxReq < 1 {
		return fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return nil
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return c
}
