package model

// Status tracks the lifecycle of a versioned record.
//
// Staged states mark edits or deletions that are buffered in an open
// transaction and not yet part of the published state.
type Status uint

const (
	// StatusPublished is the default state of a saved record
	StatusPublished Status = 1

	// StatusDeleted marks a record whose deletion has been committed
	StatusDeleted Status = 2

	// StatusStagedEdits marks a record with edits buffered in a transaction
	StatusStagedEdits Status = 3

	// StatusStagedDelete marks a record whose deletion is buffered in a transaction
	StatusStagedDelete Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusPublished:
		return "published"
	case StatusDeleted:
		return "deleted"
	case StatusStagedEdits:
		return "staged-edits"
	case StatusStagedDelete:
		return "staged-delete"
	default:
		return "unknown"
	}
}

// StatusField is the core snapshot field recording a record's Status.
// It is always captured, regardless of the include/exclude options
// registered for the record's kind.
const StatusField = "_status"

// Record is the contract a versioned application object fulfills so the
// revision engine can capture its state.
//
// The engine never inspects records beyond this interface: which fields
// exist and when save/delete happen are concerns of the record layer.
type Record interface {
	// Kind identifies the record type, e.g. "music/artist".
	Kind() string

	// Key is the record's primary identity within its kind.
	Key() string

	// Fields returns the record's scalar field values at capture time.
	Fields() map[string]interface{}

	// Related returns, per relationship name, the identifiers of the
	// currently related records.
	Related() map[string][]string

	// Status reports the record's lifecycle state.
	Status() Status
}

// RelatedUpdates carries pending relationship edits to fold into a
// snapshot: identifiers to add to, or remove from, the current related
// sets, keyed by relationship name.
type RelatedUpdates struct {
	Added   map[string][]string
	Removed map[string][]string
}
