// Package snapshot captures versioned records as canonical,
// byte-serializable snapshots and computes diffs between them.
package snapshot

import (
	"sort"

	"github.com/arowla/django-versions/pkg/model"
)

// T is the canonical snapshot of one record at one point in time:
// its captured scalar field values plus the resolved identifier set of
// every relationship.
type T struct {
	Field   map[string]interface{} `msgpack:"field"`
	Related map[string][]string    `msgpack:"related"`
}

// FromRecord captures a record's current state.
//
// Field selection follows the options registered for the record's kind:
// a non-empty include list wins, otherwise excluded names are dropped.
// The core status field is always captured. Pending relationship edits
// are folded into the current related sets: removed identifiers are
// subtracted, added identifiers unioned in, and the result sorted so
// equal sets serialize identically.
func FromRecord(rec model.Record, updates *model.RelatedUpdates) T {
	opts := model.OptionsFor(rec.Kind())

	field := make(map[string]interface{})
	for name, value := range rec.Fields() {
		if !captured(name, opts) {
			continue
		}
		field[name] = value
	}
	field[model.StatusField] = int64(rec.Status())

	related := make(map[string][]string)
	for name, current := range rec.Related() {
		ids := make(map[string]struct{}, len(current))
		for _, id := range current {
			ids[id] = struct{}{}
		}
		if updates != nil {
			for _, id := range updates.Removed[name] {
				delete(ids, id)
			}
			for _, id := range updates.Added[name] {
				ids[id] = struct{}{}
			}
		}
		set := make([]string, 0, len(ids))
		for id := range ids {
			set = append(set, id)
		}
		sort.Strings(set)
		related[name] = set
	}

	return T{Field: field, Related: related}
}

func captured(name string, opts model.Options) bool {
	if name == model.StatusField {
		return true
	}
	if len(opts.Include) > 0 {
		for _, included := range opts.Include {
			if name == included {
				return true
			}
		}
		return false
	}
	for _, excluded := range opts.Exclude {
		if name == excluded {
			return false
		}
	}
	return true
}
