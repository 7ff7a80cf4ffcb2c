// Copyright © 2021 Io FinNet Group, Inc.

package paillier

import (
	"github.com/iofinnet/paillier/common"
	"github.com/zeebo/blake3"
)

const fingerprintDomain = "paillier public key fingerprint v1"

// Fingerprint returns the BLAKE3-256 digest of the binary encoding of the key.
// Keys with equal N and G have equal fingerprints.
func (publicKey *PublicKey) Fingerprint() ([]byte, error) {
	bz, err := publicKey.MarshalBinary()
	if err != nil {
		common.Logger.Errorf("Fingerprint: %v", err)
		return nil, err
	}
	h := blake3.New()
	_, _ = h.Write([]byte(fingerprintDomain))
	_, _ = h.Write(bz)
	return h.Sum(nil), nil
}
