package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/repo/status"
)

// Version wraps one backend commit. The revision identifier is resolved
// at construction; parents and the normalized date are resolved on
// first access and cached in explicit cells, never re-fetched.
type Version struct {
	commit   Commit
	revision string

	mu          sync.Mutex
	parents     []*Version
	hasParents  bool
	contributor *model.Contributor
	date        *time.Time
}

// NewVersion wraps a backend commit
func NewVersion(c Commit) *Version {
	return &Version{commit: c, revision: c.Hex()}
}

// Revision is the commit's stable identifier
func (v *Version) Revision() string {
	return v.revision
}

// Parents resolves the commit's immediate parents once and returns the
// same sequence on every call.
func (v *Version) Parents(ctx context.Context) ([]*Version, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hasParents {
		commits, err := v.commit.Parents(ctx)
		if err != nil {
			return nil, err
		}
		parents := make([]*Version, 0, len(commits))
		for _, c := range commits {
			parents = append(parents, NewVersion(c))
		}
		v.parents = parents
		v.hasParents = true
	}
	out := make([]*Version, len(v.parents))
	copy(out, v.parents)
	return out, nil
}

// Parent returns the commit's single parent, or nil at the root of
// history. A commit with more than one parent violates the linear
// history invariant and is surfaced as ErrMultipleParents rather than
// silently picking one.
func (v *Version) Parent(ctx context.Context) (*Version, error) {
	parents, err := v.Parents(ctx)
	if err != nil {
		return nil, err
	}
	switch len(parents) {
	case 0:
		return nil, nil
	case 1:
		return parents[0], nil
	default:
		return nil, status.ErrMultipleParents.Wrap(
			fmt.Errorf("found %d parents for commit %s", len(parents), v.revision))
	}
}

// Contributor is the commit's recorded author
func (v *Version) Contributor() model.Contributor {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.contributor == nil {
		c := v.commit.Contributor()
		v.contributor = &c
	}
	return *v.contributor
}

// Message is the commit message
func (v *Version) Message() string {
	return v.commit.Message()
}

// Date reconstructs the commit's wall clock from the backend-stored
// epoch seconds plus UTC offset pair, normalized through UTC. The
// returned time carries the author's local wall clock reading in UTC.
func (v *Version) Date() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.date == nil {
		secs, offset := v.commit.Date()
		wall := time.Unix(secs-int64(offset), 0).UTC()
		v.date = &wall
	}
	return *v.date
}

// Equal reports whether both versions refer to the same revision
func (v *Version) Equal(other *Version) bool {
	return other != nil && v.revision == other.revision
}

func (v *Version) String() string {
	return v.revision
}
