package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/live-corners/internal/config"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

type component struct {
	name string
	stop func(context.Context) error
}

// Stack holds the observability components started for the process. Only
// enabled components are tracked.
type Stack struct {
	logger     *logging.Logger
	components []component
}

// Start brings up tracing, profiling and the pprof listener according to cfg.
// On failure everything started so far is stopped again.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startUptrace},
		{name: "pyroscope", start: startPyroscope},
		{name: "pprof", start: startPprof},
	}
	for _, st := range starters {
		stop, err := st.start(cfg, s.logger)
		if err != nil {
			_ = s.Shutdown(ctx)
			return nil, fmt.Errorf("start %s: %w", st.name, err)
		}
		if stop != nil {
			s.components = append(s.components, component{name: st.name, stop: stop})
		}
	}
	return s, nil
}

// Enabled lists the names of running components in start order.
func (s *Stack) Enabled() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.components))
	for _, c := range s.components {
		names = append(names, c.name)
	}
	return names
}

// Shutdown stops components in reverse start order so the tracer flushes
// last.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.components) - 1; i >= 0; i-- {
		c := s.components[i]
		if err := c.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.name, err))
			continue
		}
		s.logger.Info("observability component stopped", "component", c.name)
	}
	s.components = nil
	return errors.Join(errs...)
}
