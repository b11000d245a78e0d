package cli

import (
	"budget/internal/log"
)

type closer struct {
	name string
	fn   func() error
}

// Shutdown collects resources opened during start-up and closes them in
// reverse order. Failures are logged and do not stop the remaining closers.
type Shutdown struct {
	logger  *log.Logger
	closers []closer
}

func NewShutdown(logger *log.Logger) *Shutdown {
	if logger == nil {
		logger = log.Discard()
	}
	return &Shutdown{logger: logger}
}

// Add registers fn under name. A nil fn is ignored.
func (s *Shutdown) Add(name string, fn func() error) {
	if fn == nil {
		return
	}
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

// Run closes everything registered so far. Calling it again is a no-op.
func (s *Shutdown) Run() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if err := c.fn(); err != nil {
			s.logger.Error("Error during cleanup",
				log.FieldOperation, log.OpShutdown,
				"resource", c.name,
				log.FieldError, err)
		}
	}
	s.closers = nil
}
