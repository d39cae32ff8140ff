// Package localfs implements the repository contract as a commit log
// over a K/V storage store, typically a local file system.
//
// Layout: commit descriptors live under commits/, content-addressed
// snapshot blobs under objects/, and HEAD records the repository tip.
// Item history is derived by walking the commit chain from HEAD, and
// HEAD is written last, so a failed commit leaves no visible history
// node behind.
package localfs

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"

	"github.com/arowla/django-versions/pkg/errors"
	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/repo"
	"github.com/arowla/django-versions/pkg/repo/status"
	"github.com/arowla/django-versions/pkg/storage"
	storagestatus "github.com/arowla/django-versions/pkg/storage/status"
)

const headKey = "HEAD"

// Option is a functor to build a repository with some options
type Option func(*repository)

// Logger injects a logging facility into repository operations
func Logger(l *zap.Logger) Option {
	return func(r *repository) {
		if l != nil {
			r.l = l
		}
	}
}

// New creates a repository named name over the given store
func New(name string, store storage.Store, opts ...Option) repo.Repository {
	r := &repository{
		name:  name,
		store: store,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

type repository struct {
	name  string
	store storage.Store
	l     *zap.Logger

	// commits against one handle are serialized: concurrent callers
	// each append a distinct, single-parent history node
	mu sync.Mutex
}

func (r *repository) String() string {
	return fmt.Sprintf("localfs repository %q on %s", r.name, r.store)
}

func (r *repository) Commit(ctx context.Context, items map[string][]byte, meta model.CommitMeta) (*repo.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta = meta.WithDefaults()

	tip, err := r.tip(ctx)
	if err != nil {
		return nil, err
	}
	var parents []string
	if tip != "" {
		parents = []string{tip}
	}

	entries := make(map[string]string, len(items))
	for item, data := range items {
		key := repo.BlobKey(data)
		if err = r.store.Put(ctx, blobPath(key), bytes.NewReader(data)); err != nil {
			return nil, status.ErrStorage.Wrap(err)
		}
		entries[item] = key
	}

	d := repo.NewDescriptor(parents, entries, meta)
	d.ID = d.Digest()

	buf, err := yaml.Marshal(d)
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	if err = r.store.Put(ctx, commitPath(d.ID), bytes.NewReader(buf)); err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}

	if err = r.store.Put(ctx, headKey, strings.NewReader(d.ID)); err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}

	r.l.Debug("committed",
		zap.String("repository", r.name),
		zap.String("revision", d.ID),
		zap.Int("items", len(entries)))

	return repo.NewVersion(repo.NewNode(d, r.load)), nil
}

func (r *repository) Version(ctx context.Context, itemPath, rev string) ([]byte, error) {
	if rev == "" {
		tip, err := r.tip(ctx)
		if err != nil {
			return nil, err
		}
		if tip == "" {
			return nil, status.ErrVersionDoesNotExist.Wrap(
				fmt.Errorf("item %q has no versions in repository %q", itemPath, r.name))
		}
		rev = tip
	}

	// walk back from rev to the commit that last touched the item
	for id := rev; id != ""; {
		d, err := r.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if key, ok := d.Entries[itemPath]; ok {
			data, err := storage.ReadAll(ctx, r.store, blobPath(key))
			if err != nil {
				return nil, status.ErrStorage.Wrap(err)
			}
			return data, nil
		}
		if len(d.Parents) == 0 {
			break
		}
		id = d.Parents[0]
	}
	return nil, status.ErrVersionDoesNotExist.Wrap(
		fmt.Errorf("item %q has no state as of revision %s", itemPath, rev))
}

// Versions derives the item's history by walking the commit chain from
// the repository tip. Only commits reachable from HEAD are visible, so
// descriptors left behind by a failed commit never surface here.
func (r *repository) Versions(ctx context.Context, itemPath string) ([]string, error) {
	tip, err := r.tip(ctx)
	if err != nil {
		return nil, err
	}
	revs := []string{}
	for id := tip; id != ""; {
		d, err := r.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, ok := d.Entries[itemPath]; ok {
			revs = append(revs, id)
		}
		if len(d.Parents) == 0 {
			break
		}
		id = d.Parents[0]
	}
	return revs, nil
}

func (r *repository) tip(ctx context.Context) (string, error) {
	data, err := storage.ReadAll(ctx, r.store, headKey)
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return "", nil
		}
		return "", status.ErrStorage.Wrap(err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (r *repository) load(ctx context.Context, id string) (repo.Descriptor, error) {
	data, err := storage.ReadAll(ctx, r.store, commitPath(id))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return repo.Descriptor{}, status.ErrVersionDoesNotExist.Wrap(
				fmt.Errorf("no commit %s in repository %q", id, r.name))
		}
		return repo.Descriptor{}, status.ErrStorage.Wrap(err)
	}
	var d repo.Descriptor
	if err = yaml.Unmarshal(data, &d); err != nil {
		return repo.Descriptor{}, status.ErrStorage.Wrap(err)
	}
	return d, nil
}

func commitPath(id string) string {
	return fmt.Sprint("commits/", id, ".yaml")
}

func blobPath(key string) string {
	return fmt.Sprint("objects/", key)
}
