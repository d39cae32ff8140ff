// Package bdgr implements the repository contract on a badger K/V
// database. One commit is recorded in a single badger transaction, so
// either every buffered item lands in the new history node or none do.
package bdgr

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/repo"
	"github.com/arowla/django-versions/pkg/repo/status"
)

const tipKey = "tip"

var (
	commitPref = []byte("commit:")
	itemPref   = []byte("item:")
	blobPref   = []byte("blob:")
)

// Option is a functor to build a repository with some options
type Option func(*Repository)

// Logger injects a logging facility into repository operations
func Logger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// New opens a badger backed repository rooted at baseDir
func New(name, baseDir string, opts ...Option) (*Repository, error) {
	badgerOpts := badger.DefaultOptions(baseDir)
	badgerOpts.Logger = nil
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	r := &Repository{
		name: name,
		db:   db,
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r, nil
}

// Repository is a badger backed repository
type Repository struct {
	name string
	db   *badger.DB
	l    *zap.Logger

	// commits are serialized on the handle so concurrent callers never
	// race on the tip and each append a distinct history node
	mu    sync.Mutex
	close sync.Once
}

func (r *Repository) String() string {
	return fmt.Sprintf("badger repository %q", r.name)
}

// Close releases the underlying database
func (r *Repository) Close() error {
	var err error
	r.close.Do(func() {
		err = r.db.Close()
	})
	return err
}

// Commit records all items as one history node inside a single badger
// transaction.
func (r *Repository) Commit(ctx context.Context, items map[string][]byte, meta model.CommitMeta) (*repo.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta = meta.WithDefaults()

	var d repo.Descriptor
	err := r.db.Update(func(txn *badger.Txn) error {
		tip, err := getTip(txn)
		if err != nil {
			return err
		}
		var parents []string
		if tip != "" {
			parents = []string{tip}
		}

		entries := make(map[string]string, len(items))
		for item, data := range items {
			key := repo.BlobKey(data)
			if err = txn.Set(append(blobPref, key...), data); err != nil {
				return err
			}
			entries[item] = key
		}

		d = repo.NewDescriptor(parents, entries, meta)
		d.ID = d.Digest()

		buf, err := jsoniter.Marshal(d)
		if err != nil {
			return err
		}
		if err = txn.Set(append(commitPref, d.ID...), buf); err != nil {
			return err
		}

		for item := range entries {
			if err = appendLog(txn, item, d.ID); err != nil {
				return err
			}
		}
		return txn.Set([]byte(tipKey), []byte(d.ID))
	})
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}

	r.l.Debug("committed",
		zap.String("repository", r.name),
		zap.String("revision", d.ID),
		zap.Int("items", len(d.Entries)))

	return repo.NewVersion(repo.NewNode(d, r.load)), nil
}

// Version fetches the snapshot bytes for an item as of rev
func (r *Repository) Version(ctx context.Context, itemPath, rev string) ([]byte, error) {
	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		if rev == "" {
			log, err := itemLog(txn, itemPath)
			if err != nil {
				return err
			}
			if len(log) == 0 {
				return status.ErrVersionDoesNotExist.Wrap(
					fmt.Errorf("item %q has no versions in repository %q", itemPath, r.name))
			}
			rev = log[0]
		}
		for id := rev; id != ""; {
			d, err := loadDescriptor(txn, id, r.name)
			if err != nil {
				return err
			}
			if key, ok := d.Entries[itemPath]; ok {
				item, err := txn.Get(append(blobPref, key...))
				if err != nil {
					return badgerRewriteError(err)
				}
				data, err = item.ValueCopy(nil)
				return badgerRewriteError(err)
			}
			if len(d.Parents) == 0 {
				break
			}
			id = d.Parents[0]
		}
		return status.ErrVersionDoesNotExist.Wrap(
			fmt.Errorf("item %q has no state as of revision %s", itemPath, rev))
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Versions returns the item's revision history, most recent first
func (r *Repository) Versions(ctx context.Context, itemPath string) ([]string, error) {
	var log []string
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		log, err = itemLog(txn, itemPath)
		return err
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (r *Repository) load(ctx context.Context, id string) (repo.Descriptor, error) {
	var d repo.Descriptor
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		d, err = loadDescriptor(txn, id, r.name)
		return err
	})
	return d, err
}

func loadDescriptor(txn *badger.Txn, id, name string) (repo.Descriptor, error) {
	item, err := txn.Get(append(commitPref, id...))
	if err == badger.ErrKeyNotFound {
		return repo.Descriptor{}, status.ErrVersionDoesNotExist.Wrap(
			fmt.Errorf("no commit %s in repository %q", id, name))
	}
	if err != nil {
		return repo.Descriptor{}, status.ErrStorage.Wrap(err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return repo.Descriptor{}, status.ErrStorage.Wrap(err)
	}
	var d repo.Descriptor
	if err = jsoniter.Unmarshal(data, &d); err != nil {
		return repo.Descriptor{}, status.ErrStorage.Wrap(err)
	}
	return d, nil
}

func getTip(txn *badger.Txn) (string, error) {
	item, err := txn.Get([]byte(tipKey))
	if err == badger.ErrKeyNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func itemLog(txn *badger.Txn, itemPath string) ([]string, error) {
	item, err := txn.Get(append(itemPref, itemPath...))
	if err == badger.ErrKeyNotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	var log []string
	if err = jsoniter.Unmarshal(data, &log); err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	return log, nil
}

func appendLog(txn *badger.Txn, itemPath, id string) error {
	log, err := itemLog(txn, itemPath)
	if err != nil {
		return err
	}
	log = append([]string{id}, log...)
	buf, err := jsoniter.Marshal(log)
	if err != nil {
		return err
	}
	return txn.Set(append(itemPref, itemPath...), buf)
}

func badgerRewriteError(err error) error {
	switch err {
	case nil:
		return nil
	case badger.ErrKeyNotFound:
		return status.ErrVersionDoesNotExist
	default:
		return status.ErrStorage.Wrap(err)
	}
}
