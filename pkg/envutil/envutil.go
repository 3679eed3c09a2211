// Package envutil reads typed values from environment variables and
// keeps a documented table of the variables a program consumes, so the
// full set can be rendered for help output.
package envutil

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"tollan/pkg/fmtutil"
)

// Set is a table of documented environment variables with typed
// accessors. Safe for concurrent use.
type Set struct {
	mu     sync.Mutex
	docs   map[string]string
	order  []string
	logger *zap.Logger
}

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the logger used for registration and lookup traces.
func WithLogger(l *zap.Logger) Option {
	return func(s *Set) {
		s.logger = l
	}
}

// NewSet returns an empty variable table.
func NewSet(opts ...Option) *Set {
	s := &Set{
		docs:   make(map[string]string),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register records name with its one-line doc. Registering the same
// name again with an identical doc is a no-op; a conflicting doc is an
// error.
func (s *Set) Register(name, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[name]; ok {
		if prev != doc {
			return fmt.Errorf("env var %q already registered: %q", name, prev)
		}
		return nil
	}
	s.docs[name] = doc
	s.order = append(s.order, name)
	s.logger.Debug("registered env var", zap.String("name", name), zap.String("doc", doc))
	return nil
}

// Names returns the registered variable names in registration order.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Doc renders the registered variables as an aligned table.
func (s *Set) Doc() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]string, 0, len(s.order))
	for _, name := range s.order {
		rows = append(rows, []string{name, s.docs[name]})
	}
	return fmtutil.Table(rows, 0, 0)
}

// String returns the variable's value, or def when unset.
func (s *Set) String(name, def string) string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	s.logger.Debug("env override", zap.String("name", name), zap.String("value", v))
	return v
}

// Int returns the variable parsed as an integer, or def when unset.
func (s *Set) Int(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("env var %q: %w", name, err)
	}
	return n, nil
}

// Bool returns the variable parsed as a boolean, or def when unset.
func (s *Set) Bool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("env var %q: %w", name, err)
	}
	return b, nil
}

// Duration returns the variable parsed as a time.Duration, or def
// when unset.
func (s *Set) Duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("env var %q: %w", name, err)
	}
	return d, nil
}
