package revision

import (
	"go.uber.org/zap"

	"github.com/arowla/django-versions/pkg/repo"
)

// Option is a functor to build a manager with some options
type Option func(*Manager)

// Logger injects a logging facility into the manager
func Logger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.l = l
		}
	}
}

// WithRepository injects a pre-built repository handle under a name,
// bypassing the configured backend builders. Mostly useful for tests
// and for embedding callers that manage backend lifecycles themselves.
func WithRepository(name string, r repo.Repository) Option {
	return func(m *Manager) {
		m.registry.inject(name, r)
	}
}
