package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold int, openTimeout time.Duration, probes int) *CircuitBreaker {
	return NewCircuitBreaker("api-football", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   probes,
	})
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := testBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []string
	b.OnStateChange(func(name string, from, to CircuitState) {
		transitions = append(transitions, name+":"+string(from)+">"+string(to))
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []string{
		"api-football:closed>open",
		"api-football:open>half_open",
		"api-football:half_open>closed",
	}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions got=%v want=%v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("unexpected transition %d got=%q want=%q", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := testBreaker(1, time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := testBreaker(1, time.Minute, 1)

	errTransient := errors.New("transient")
	errNotFound := errors.New("fixture not found")
	isFailure := func(err error) bool { return errors.Is(err, errTransient) }

	if err := b.Execute(func() error { return errNotFound }, isFailure); !errors.Is(err, errNotFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after non-failure error, got %s", state)
	}

	if err := b.Execute(func() error { return errTransient }, isFailure); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failure, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, isFailure)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run while circuit is open")
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreaker("openai", CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	called := false
	if err := b.Execute(func() error { called = true; return nil }, nil); err != nil || !called {
		t.Fatalf("nil breaker must run fn, err=%v called=%v", err, called)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed, got %s", state)
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig()
	if err := cfg.Validate("OPENAI_CIRCUIT"); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	cfg.FailureThreshold = 0
	if err := cfg.Validate("OPENAI_CIRCUIT"); err == nil {
		t.Fatalf("expected error for zero failure count")
	}
	cfg.Enabled = false
	if err := cfg.Validate("OPENAI_CIRCUIT"); err != nil {
		t.Fatalf("disabled config must not be validated: %v", err)
	}
}
