// Package model describes the data model shared by the revision engine:
// the record contract implemented by versioned application objects,
// per-kind versioning options, repository configuration, commit metadata
// and the path scheme locating an item's history slot inside a repository.
package model
