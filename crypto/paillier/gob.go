package paillier

import (
	"encoding"
	"encoding/gob"
)

var (
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PrivateKey)(nil)
)

// init registers Paillier key types with the gob package.
// This enables gob encoding/decoding of these types either directly or when embedded in other structs, including
// behind interface values. On the wire gob carries the MarshalBinary form, so decoding validates the key.
func init() {
	gob.Register(&PrivateKey{})
	gob.Register(&PublicKey{})
}
