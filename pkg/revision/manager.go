// Package revision orchestrates versioned record mutations: it scopes
// nested transactions to an execution context, buffers staged record
// snapshots, and flushes each touched repository's buffer as one atomic
// commit when the outermost transaction completes.
package revision

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/repo"
	"github.com/arowla/django-versions/pkg/revision/status"
	"github.com/arowla/django-versions/pkg/snapshot"
)

// Manager is the public orchestrator of the revision engine.
//
// Transaction state lives on the context returned by Begin, one
// independent copy per execution context. The manager itself only holds
// immutable configuration and the shared repository handles, so one
// manager serves any number of concurrent contexts.
type Manager struct {
	registry *registry
	l        *zap.Logger
}

// NewManager builds a manager routing commits to the configured
// repositories. The configuration must carry a "default" entry unless
// every repository is injected with WithRepository.
func NewManager(cfg model.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		registry: newRegistry(cfg),
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}
	if err := m.registry.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Repository returns the cached backend handle for a configured
// repository name, constructing it on first use.
func (m *Manager) Repository(name string) (repo.Repository, error) {
	return m.registry.get(name, m.l)
}

// Begin opens a transaction. The first Begin on a context attaches
// fresh transaction state to the returned context; nested Begins on
// that context only increase the nesting depth. Nesting is unlimited.
func (m *Manager) Begin(ctx context.Context) context.Context {
	if s := fromContext(ctx); s != nil {
		s.depth++
		return ctx
	}
	s := newState()
	s.depth = 1
	return withState(ctx, s)
}

// IsActive reports whether the context carries an active transaction
func (m *Manager) IsActive(ctx context.Context) bool {
	s := fromContext(ctx)
	return s != nil && s.active()
}

// Invalidate marks the active transaction invalid: the outermost Finish
// will discard all buffered snapshots instead of committing them. The
// flag sticks until the transaction state resets.
func (m *Manager) Invalidate(ctx context.Context) error {
	s := fromContext(ctx)
	if s == nil || !s.active() {
		return status.ErrNotActive
	}
	s.invalid = true
	return nil
}

// SetUser records the acting user on the active transaction
func (m *Manager) SetUser(ctx context.Context, user model.Contributor) error {
	s := fromContext(ctx)
	if s == nil || !s.active() {
		return status.ErrNotActive
	}
	if user == (model.Contributor{}) {
		user = model.Anonymous
	}
	s.user = user
	return nil
}

// SetMessage records the commit message on the active transaction
func (m *Manager) SetMessage(ctx context.Context, message string) error {
	s := fromContext(ctx)
	if s == nil || !s.active() {
		return status.ErrNotActive
	}
	s.message = message
	return nil
}

// Finish closes one level of transaction nesting.
//
// Closing the outermost level flushes every dirty repository's buffered
// items as one commit per repository and returns the mapping of
// repository name to new Version. The transaction state is reset on
// every exit path, success or failure. Inner Finishes flush nothing and
// return an empty mapping.
func (m *Manager) Finish(ctx context.Context) (map[string]*repo.Version, error) {
	s := fromContext(ctx)
	if s == nil || !s.active() {
		return nil, status.ErrNotActive
	}
	s.depth--
	revisions := map[string]*repo.Version{}
	if s.depth > 0 {
		return revisions, nil
	}

	defer s.reset()

	if len(s.objects) == 0 || s.invalid {
		if s.invalid {
			m.l.Debug("transaction invalidated, discarding buffered snapshots",
				zap.Int("repositories", len(s.objects)))
		}
		return revisions, nil
	}

	meta := model.CommitMeta{
		Contributor: s.user,
		Message:     s.message,
	}.WithDefaults()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, err := m.Repository(name)
		if err != nil {
			return nil, err
		}
		v, err := r.Commit(ctx, s.objects[name], meta)
		if err != nil {
			return nil, err
		}
		m.l.Debug("flushed transaction buffer",
			zap.String("repository", name),
			zap.String("revision", v.Revision()),
			zap.Int("items", len(s.objects[name])))
		revisions[name] = v
	}
	return revisions, nil
}

// Stage captures a record's snapshot. Inside a transaction the snapshot
// is buffered (later stages of the same item path overwrite earlier
// ones); outside any transaction it is committed immediately and solely
// to the record's repository, returning the resulting Version.
func (m *Manager) Stage(ctx context.Context, rec model.Record, updates *model.RelatedUpdates) (*repo.Version, error) {
	repoName := model.RepositoryName(rec.Kind())
	itemPath := model.ItemPath(rec.Kind(), rec.Key())

	data, err := snapshot.Marshal(snapshot.FromRecord(rec, updates))
	if err != nil {
		return nil, err
	}

	if s := fromContext(ctx); s != nil && s.active() {
		s.buffer(repoName, itemPath, data)
		return nil, nil
	}

	r, err := m.Repository(repoName)
	if err != nil {
		return nil, err
	}
	return r.Commit(ctx, map[string][]byte{itemPath: data}, model.CommitMeta{}.WithDefaults())
}

// WithRevision runs fn inside its own transaction scope. Any error or
// panic raised by fn invalidates the transaction before it is finished,
// so no partial state is ever committed, and is then propagated
// unchanged. On success it returns the revisions committed by the
// outermost Finish.
func (m *Manager) WithRevision(ctx context.Context, fn func(context.Context) error) (revisions map[string]*repo.Version, err error) {
	ctx = m.Begin(ctx)
	defer func() {
		if r := recover(); r != nil {
			_ = m.Invalidate(ctx)
			_, _ = m.Finish(ctx)
			panic(r)
		}
	}()
	if err = fn(ctx); err != nil {
		_ = m.Invalidate(ctx)
		if _, ferr := m.Finish(ctx); ferr != nil {
			m.l.Warn("finishing invalidated transaction", zap.Error(ferr))
		}
		return nil, err
	}
	return m.Finish(ctx)
}
