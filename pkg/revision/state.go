package revision

import (
	"context"

	"github.com/arowla/django-versions/pkg/model"
)

// state is the per-execution-context transaction state. It is attached
// to a context by Begin and only ever touched by the call stack holding
// that context, so it needs no locking of its own.
type state struct {
	depth   int
	objects map[string]map[string][]byte
	user    model.Contributor
	message string
	invalid bool
}

func newState() *state {
	s := &state{}
	s.reset()
	return s
}

func (s *state) reset() {
	s.objects = map[string]map[string][]byte{}
	s.user = model.Anonymous
	s.message = ""
	s.depth = 0
	s.invalid = false
}

func (s *state) active() bool {
	return s.depth > 0
}

func (s *state) buffer(repoName, itemPath string, data []byte) {
	items, ok := s.objects[repoName]
	if !ok {
		items = map[string][]byte{}
		s.objects[repoName] = items
	}
	// last write wins: a later stage of the same item silently
	// overwrites the earlier buffered snapshot
	items[itemPath] = data
}

type stateKey struct{}

func fromContext(ctx context.Context) *state {
	s, _ := ctx.Value(stateKey{}).(*state)
	return s
}

func withState(ctx context.Context, s *state) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}
