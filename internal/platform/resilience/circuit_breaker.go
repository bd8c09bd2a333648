package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs after the breaker
// lock is released.
type StateChangeFunc func(name string, from, to CircuitState)

// CircuitBreaker guards one upstream provider. Consecutive transient
// failures open it; after the open timeout a limited number of probes decide
// whether it closes again. All methods are safe on a nil breaker, which
// behaves as always closed.
type CircuitBreaker struct {
	name string
	cfg  CircuitBreakerConfig

	mu                  sync.Mutex
	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	probesInFlight      int
	probeSuccesses      int
	onChange            StateChangeFunc
	now                 func() time.Time
}

// NewCircuitBreaker returns nil when cfg is disabled.
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return &CircuitBreaker{
		name:  name,
		cfg:   cfg.withDefaults(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers fn for transitions; it returns the breaker so it can
// be chained onto the constructor.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) *CircuitBreaker {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
	return b
}

func (b *CircuitBreaker) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Execute runs fn when the breaker allows it. isFailure picks the errors that
// count against the provider; nil counts every error.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if b == nil {
		return fn()
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}

func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	from := b.state
	err := b.allowLocked()
	b.unlockAndNotify(from)
	return err
}

func (b *CircuitBreaker) allowLocked() error {
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.setState(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probesInFlight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
	case CircuitStateHalfOpen:
		b.probesInFlight = max(0, b.probesInFlight-1)
		b.probeSuccesses++
		if b.probeSuccesses >= b.cfg.HalfOpenMaxReq && b.probesInFlight == 0 {
			b.setState(CircuitStateClosed)
		}
	}
	b.unlockAndNotify(from)
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.setState(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.setState(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	b.unlockAndNotify(from)
}

// State is the effective state: an open breaker whose timeout has elapsed
// reports half-open even before the next probe arrives.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) setState(to CircuitState) {
	b.state = to
	b.probesInFlight = 0
	b.probeSuccesses = 0
	switch to {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.consecutiveFailures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) unlockAndNotify(from CircuitState) {
	to := b.state
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil && from != to {
		fn(b.name, from, to)
	}
}

// LogTransitions logs opening at warn level and every other transition at info.
func LogTransitions(logger *logging.Logger) StateChangeFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(name string, from, to CircuitState) {
		if to == CircuitStateOpen {
			logger.Warn("circuit breaker opened", "dependency", name, "from", string(from))
			return
		}
		logger.Info("circuit breaker state changed", "dependency", name, "from", string(from), "to", string(to))
	}
}
