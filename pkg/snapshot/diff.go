package snapshot

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Diff compares two snapshots name by name.
//
// For the union of field and relation names present in either snapshot
// it produces a unified diff of each name's textual representation,
// keyed by that name. Names absent from one side diff against empty.
// Names whose representations are equal map to an empty diff.
func Diff(a, b T) (map[string]string, error) {
	reprA := repr(a)
	reprB := repr(b)

	difference := make(map[string]string)
	for _, name := range union(reprA, reprB) {
		if reprA[name] == reprB[name] {
			difference[name] = ""
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(reprA[name]),
			B:        difflib.SplitLines(reprB[name]),
			FromFile: name,
			ToFile:   name,
			Context:  3,
		})
		if err != nil {
			return nil, err
		}
		difference[name] = text
	}
	return difference, nil
}

func repr(snap T) map[string]string {
	out := make(map[string]string, len(snap.Field)+len(snap.Related))
	for name, value := range snap.Field {
		out[name] = dumper.Sdump(value)
	}
	for name, ids := range snap.Related {
		out[name] = dumper.Sdump(ids)
	}
	return out
}

func union(a, b map[string]string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	names := make([]string, 0, len(a)+len(b))
	for name := range a {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range b {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}
