package repo

import (
	"encoding/hex"
	"fmt"
	"sort"

	blake2b "github.com/minio/blake2b-simd"

	"github.com/arowla/django-versions/pkg/model"
)

// Descriptor is the stored form of one commit: its identity, parent
// revisions, authorship metadata and the blob recorded for every item
// the commit touches.
type Descriptor struct {
	ID          string            `json:"id" yaml:"id"`
	Parents     []string          `json:"parents,omitempty" yaml:"parents,omitempty"`
	Contributor model.Contributor `json:"contributor" yaml:"contributor"`
	Message     string            `json:"message,omitempty" yaml:"message,omitempty"`
	Timestamp   int64             `json:"timestamp" yaml:"timestamp"`
	TzOffset    int               `json:"tz_offset" yaml:"tz_offset"`

	// Entries maps item paths to the content-addressed blob keys
	// recorded by this commit.
	Entries map[string]string `json:"entries" yaml:"entries"`
}

// NewDescriptor assembles an unidentified descriptor from commit inputs.
func NewDescriptor(parents []string, entries map[string]string, meta model.CommitMeta) Descriptor {
	return Descriptor{
		Parents:     parents,
		Contributor: meta.Contributor,
		Message:     meta.Message,
		Timestamp:   meta.Timestamp,
		TzOffset:    meta.TzOffset,
		Entries:     entries,
	}
}

// Digest computes the commit's revision identifier: a blake2b hash over
// the canonical rendering of the descriptor's content. Entries are
// folded in sorted order so the digest is deterministic.
func (d Descriptor) Digest() string {
	h := blake2b.New256()
	for _, parent := range d.Parents {
		fmt.Fprintf(h, "parent %s\n", parent)
	}
	fmt.Fprintf(h, "contributor %s\n", d.Contributor)
	fmt.Fprintf(h, "date %d %d\n", d.Timestamp, d.TzOffset)
	fmt.Fprintf(h, "message %s\n", d.Message)

	items := make([]string, 0, len(d.Entries))
	for item := range d.Entries {
		items = append(items, item)
	}
	sort.Strings(items)
	for _, item := range items {
		fmt.Fprintf(h, "entry %s %s\n", item, d.Entries[item])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BlobKey is the content address of one snapshot blob.
func BlobKey(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
