// Package session implements the BMC core's Session (A1): the single
// object that owns the BE manager, the variable manager, and the run
// configuration for one BMC invocation, behind an explicit
// constructor/destructor pair. Grounded on the teacher's
// solver.New(options...)/Option pattern (pkg/controller/registry/
// resolver/solver/solve.go), generalized from "build one SAT solver"
// to "build one BMC run's shared state".
//
// Per §5, a Session is single-threaded and cooperative: it carries no
// internal locking, matching the teacher's own solver type.
package session

import (
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/config"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Session owns the shared state one BMC run needs: the BE manager and
// variable manager the symbolic encoding is built against, and the
// configuration and logger threaded through every algorithm it drives.
type Session struct {
	cfg    *config.Config
	logger *logrus.Logger
	be     *be.Manager
	vm     *varmgr.Manager
	closed bool
}

// Option configures a Session under construction.
type Option func(*Session) error

// New builds a Session, applying options over the built-in defaults —
// the same append(options, defaults...) shape solver.New uses so a
// caller's explicit choices always win over the fallbacks.
func New(options ...Option) (*Session, error) {
	s := &Session{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithConfig attaches an already-validated configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.cfg = cfg
		return nil
	}
}

// WithLogger attaches a caller-supplied logger instead of a default one.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// WithVariables declares the state and input variable names the
// session's FSM will be built over, constructing the BE manager and
// variable manager together so they can never disagree about naming.
func WithVariables(stateNames, inputNames []string) Option {
	return func(s *Session) error {
		m := be.NewManager()
		vm, err := varmgr.New(m, stateNames, inputNames)
		if err != nil {
			return bmcerr.Wrap(bmcerr.SetupRequired, err, "declaring session variables")
		}
		s.be = m
		s.vm = vm
		return nil
	}
}

var defaults = []Option{
	func(s *Session) error {
		if s.logger == nil {
			s.logger = logrus.New()
		}
		return nil
	},
	func(s *Session) error {
		if s.cfg == nil {
			s.cfg = config.Default()
		}
		return nil
	},
}

// Config returns the session's configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Logger returns the session's logger.
func (s *Session) Logger() *logrus.Logger { return s.logger }

// BE returns the session's BE manager, or SetupRequired if
// WithVariables was never applied.
func (s *Session) BE() (*be.Manager, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if s.be == nil {
		return nil, bmcerr.New(bmcerr.SetupRequired, "session has no variables declared")
	}
	return s.be, nil
}

// VM returns the session's variable manager, or SetupRequired if
// WithVariables was never applied.
func (s *Session) VM() (*varmgr.Manager, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if s.vm == nil {
		return nil, bmcerr.New(bmcerr.SetupRequired, "session has no variables declared")
	}
	return s.vm, nil
}

func (s *Session) checkOpen() error {
	if s.closed {
		return bmcerr.New(bmcerr.SetupRequired, "session is already closed")
	}
	return nil
}

// Close releases the session. The BE and variable managers hold no
// external resources (they are plain in-memory interning tables), so
// Close's only job is to make every further accessor call fail fast
// with SetupRequired rather than silently hand out state from a run
// that has ended.
func (s *Session) Close() error {
	if s.closed {
		return bmcerr.New(bmcerr.SetupRequired, "session is already closed")
	}
	s.closed = true
	return nil
}
