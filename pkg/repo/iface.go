// Package repo defines the narrow contract fulfilled by backend
// repositories and the Version wrapper resolving commit identity,
// parentage, authorship and timestamps.
package repo

import (
	"context"

	"github.com/arowla/django-versions/pkg/model"
)

// Repository is the contract the revision engine consumes. A repository
// owns the full, linear commit history for a set of item paths.
type Repository interface {
	String() string

	// Commit atomically records every listed item at its given bytes as
	// one new history node parented on the repository's prior tip, or as
	// a root node when the history is empty. On failure nothing is
	// committed.
	Commit(ctx context.Context, items map[string][]byte, meta model.CommitMeta) (*Version, error)

	// Version fetches the snapshot bytes for an item as of rev. The
	// empty rev means "latest".
	Version(ctx context.Context, itemPath, rev string) ([]byte, error)

	// Versions returns the full history of revision identifiers for one
	// item, most recent first.
	Versions(ctx context.Context, itemPath string) ([]string, error)
}

// Commit is one history node as stored by a backend. Version resolves
// its derived attributes lazily through this interface.
type Commit interface {
	// Hex is the commit's stable revision identifier
	Hex() string

	// Parents fetches the commit's immediate parents
	Parents(ctx context.Context) ([]Commit, error)

	// Contributor is the commit's recorded author
	Contributor() model.Contributor

	// Message is the commit message
	Message() string

	// Date is the backend-stored timestamp: epoch seconds plus the
	// author's UTC offset in seconds west of UTC
	Date() (int64, int)
}
