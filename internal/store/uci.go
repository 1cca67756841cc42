package store

import (
	"context"
	"os/exec"

	"go.uber.org/zap"
)

const defaultUCIBinary = "uci"

// Runner executes a command and returns its standard output. A non-nil error
// covers launch failures and non-zero exit statuses alike.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// UCIOption configures a UCIStore.
type UCIOption func(*UCIStore)

// WithBinary overrides the uci executable path.
func WithBinary(path string) UCIOption {
	return func(s *UCIStore) {
		if path != "" {
			s.binary = path
		}
	}
}

// WithRunner overrides command execution, primarily for tests.
func WithRunner(run Runner) UCIOption {
	return func(s *UCIStore) {
		if run != nil {
			s.run = run
		}
	}
}

// WithUCILogger sets the logger used for failed lookups.
func WithUCILogger(logger *zap.Logger) UCIOption {
	return func(s *UCIStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// UCIStore reads values with `uci get <key>`. The context bounds the command;
// cancelling it kills the process and the lookup reports absent.
type UCIStore struct {
	binary string
	run    Runner
	logger *zap.Logger
}

// NewUCIStore constructs a UCIStore with the provided options.
func NewUCIStore(opts ...UCIOption) *UCIStore {
	s := &UCIStore{
		binary: defaultUCIBinary,
		run:    execRunner,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the raw standard output of `uci get key`.
func (s *UCIStore) Get(ctx context.Context, key string) (string, bool) {
	out, err := s.run(ctx, s.binary, "get", key)
	if err != nil {
		s.logger.Debug("uci get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return string(out), true
}
