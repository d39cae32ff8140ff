package revision

import (
	"context"

	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/snapshot"
)

// Data captures a record's current snapshot without staging it
func (m *Manager) Data(rec model.Record, updates *model.RelatedUpdates) snapshot.T {
	return snapshot.FromRecord(rec, updates)
}

// VersionAt fetches a record's snapshot as of rev. The empty rev means
// "latest".
func (m *Manager) VersionAt(ctx context.Context, kind, key, rev string) (snapshot.T, error) {
	r, err := m.Repository(model.RepositoryName(kind))
	if err != nil {
		return snapshot.T{}, err
	}
	data, err := r.Version(ctx, model.ItemPath(kind, key), rev)
	if err != nil {
		return snapshot.T{}, err
	}
	return snapshot.Unmarshal(data)
}

// History lists a record's revision identifiers, most recent first
func (m *Manager) History(ctx context.Context, kind, key string) ([]string, error) {
	r, err := m.Repository(model.RepositoryName(kind))
	if err != nil {
		return nil, err
	}
	return r.Versions(ctx, model.ItemPath(kind, key))
}

// Diff compares a record's snapshot at rev0 against its snapshot at
// rev1, or against the record's live state when rev1 is empty.
func (m *Manager) Diff(ctx context.Context, rec model.Record, rev0, rev1 string) (map[string]string, error) {
	a, err := m.VersionAt(ctx, rec.Kind(), rec.Key(), rev0)
	if err != nil {
		return nil, err
	}
	var b snapshot.T
	if rev1 == "" {
		b = snapshot.FromRecord(rec, nil)
	} else {
		b, err = m.VersionAt(ctx, rec.Kind(), rec.Key(), rev1)
		if err != nil {
			return nil, err
		}
	}
	return snapshot.Diff(a, b)
}

// DiffRevisions compares an item's snapshots at two stored revisions,
// without needing the live record.
func (m *Manager) DiffRevisions(ctx context.Context, kind, key, rev0, rev1 string) (map[string]string, error) {
	a, err := m.VersionAt(ctx, kind, key, rev0)
	if err != nil {
		return nil, err
	}
	b, err := m.VersionAt(ctx, kind, key, rev1)
	if err != nil {
		return nil, err
	}
	return snapshot.Diff(a, b)
}
