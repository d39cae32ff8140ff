package snapshot

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes a snapshot to its storage blob.
func Marshal(snap T) ([]byte, error) {
	return msgpack.Marshal(snap)
}

// Unmarshal decodes a storage blob back into a snapshot.
//
// The round trip is lossless for the supported field value types:
// strings, integers, floats, booleans and timestamps. Integers come
// back as int64/uint64 and floats as float64.
func Unmarshal(data []byte) (T, error) {
	var snap T
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(&snap); err != nil {
		return T{}, err
	}
	return snap, nil
}
