// Copyright © 2021 Io FinNet Group, Inc.

package paillier

import (
	big "github.com/iofinnet/paillier/common/int"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Binary key encodings use the protobuf wire format:
//
//	message PublicKey  { bytes n = 1; bytes g = 2; }
//	message PrivateKey { PublicKey public_key = 1; bytes lambda = 2; bytes mu = 3; }
const (
	pkFieldN protowire.Number = 1
	pkFieldG protowire.Number = 2

	skFieldPublicKey protowire.Number = 1
	skFieldLambda    protowire.Number = 2
	skFieldMu        protowire.Number = 3
)

func (publicKey *PublicKey) MarshalBinary() ([]byte, error) {
	if err := publicKey.checkKey(); err != nil {
		return nil, err
	}
	return publicKey.appendWire(nil), nil
}

func (publicKey *PublicKey) appendWire(b []byte) []byte {
	b = appendInt(b, pkFieldN, publicKey.N)
	b = appendInt(b, pkFieldG, publicKey.G)
	return b
}

// UnmarshalBinary decodes and validates a public key. Unknown fields are skipped.
func (publicKey *PublicKey) UnmarshalBinary(data []byte) error {
	var decoded PublicKey
	err := consumeFields(data, func(num protowire.Number, v []byte) {
		switch num {
		case pkFieldN:
			decoded.N = new(big.Int).SetBytes(v)
		case pkFieldG:
			decoded.G = new(big.Int).SetBytes(v)
		}
	})
	if err != nil {
		return errors.Wrap(err, "PublicKey.UnmarshalBinary")
	}
	if err = decoded.Validate(); err != nil {
		return errors.Wrap(err, "PublicKey.UnmarshalBinary")
	}
	*publicKey = decoded
	return nil
}

func (privateKey *PrivateKey) MarshalBinary() ([]byte, error) {
	if privateKey == nil || privateKey.Lambda == nil || privateKey.Mu == nil {
		return nil, ErrInvalidKey
	}
	if err := privateKey.checkKey(); err != nil {
		return nil, err
	}
	b := protowire.AppendTag(nil, skFieldPublicKey, protowire.BytesType)
	b = protowire.AppendBytes(b, privateKey.PublicKey.appendWire(nil))
	b = appendInt(b, skFieldLambda, privateKey.Lambda)
	b = appendInt(b, skFieldMu, privateKey.Mu)
	return b, nil
}

// UnmarshalBinary decodes and validates a private key. Unknown fields are skipped.
func (privateKey *PrivateKey) UnmarshalBinary(data []byte) error {
	var (
		decoded PrivateKey
		pkErr   error
	)
	err := consumeFields(data, func(num protowire.Number, v []byte) {
		switch num {
		case skFieldPublicKey:
			pkErr = decoded.PublicKey.UnmarshalBinary(v)
		case skFieldLambda:
			decoded.Lambda = new(big.Int).SetBytes(v)
		case skFieldMu:
			decoded.Mu = new(big.Int).SetBytes(v)
		}
	})
	if err == nil {
		err = pkErr
	}
	if err != nil {
		return errors.Wrap(err, "PrivateKey.UnmarshalBinary")
	}
	if err = decoded.Validate(); err != nil {
		return errors.Wrap(err, "PrivateKey.UnmarshalBinary")
	}
	*privateKey = decoded
	return nil
}

func appendInt(b []byte, num protowire.Number, v *big.Int) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v.Bytes())
}

// consumeFields calls fn for every length-delimited field in b and skips the others.
func consumeFields(b []byte, fn func(num protowire.Number, v []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		fn(num, v)
		b = b[n:]
	}
	return nil
}
