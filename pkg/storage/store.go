// Package storage declares the K/V store contract backing the
// filesystem repository backend.
//
// Typically this is something file system-like. Implementations of this
// interface are assumed to be fairly simple.
package storage

import (
	"context"
	"io"
)

// Store implementations know how to read and write opaque entries to a
// K/V backing store.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
}

// PipeIO copies the reader to the writer with a fixed buffer
func PipeIO(writer io.Writer, reader io.Reader) (n int64, err error) {
	buf := make([]byte, 32*1024)
	return io.CopyBuffer(writer, reader, buf)
}

// ReadAll fetches a key and reads it fully into memory
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
