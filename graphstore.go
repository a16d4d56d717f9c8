package elevroute

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Serialize encodes the GraphStore to a binary artifact using gob, the
// same approach the teacher graph package used for its own Graph type.
// Arrays round-trip byte-for-byte; the exact on-disk layout is gob's own,
// which satisfies spec.md §6's "exact byte format is an implementation
// choice provided it round-trips."
func (s GraphStore) Serialize(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating artifact %q: %v", ErrMalformedInput, path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("%w: encoding artifact: %v", ErrMalformedInput, err)
	}
	return nil
}

// DeserializeGraphStore loads a GraphStore previously written by Serialize.
func DeserializeGraphStore(path string) (GraphStore, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return GraphStore{}, fmt.Errorf("%w: %q: %v", ErrInputMissing, path, err)
		}
		return GraphStore{}, fmt.Errorf("%w: opening artifact %q: %v", ErrMalformedInput, path, err)
	}
	defer f.Close()
	var s GraphStore
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return GraphStore{}, fmt.Errorf("%w: decoding artifact %q: %v", ErrMalformedInput, path, err)
	}
	return s, nil
}
