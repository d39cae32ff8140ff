package repo

import (
	"context"

	"github.com/arowla/django-versions/pkg/model"
)

// LoadFunc fetches a stored descriptor by revision identifier.
type LoadFunc func(ctx context.Context, id string) (Descriptor, error)

// NewNode wraps a stored descriptor as a Commit. Parent nodes are
// fetched through load, so all backends share one node implementation.
func NewNode(d Descriptor, load LoadFunc) Commit {
	return node{d: d, load: load}
}

type node struct {
	d    Descriptor
	load LoadFunc
}

func (n node) Hex() string {
	return n.d.ID
}

func (n node) Parents(ctx context.Context) ([]Commit, error) {
	parents := make([]Commit, 0, len(n.d.Parents))
	for _, id := range n.d.Parents {
		d, err := n.load(ctx, id)
		if err != nil {
			return nil, err
		}
		parents = append(parents, node{d: d, load: n.load})
	}
	return parents, nil
}

func (n node) Contributor() model.Contributor {
	return n.d.Contributor
}

func (n node) Message() string {
	return n.d.Message
}

func (n node) Date() (int64, int) {
	return n.d.Timestamp, n.d.TzOffset
}
