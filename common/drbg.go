// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	crand "crypto/rand"
	"crypto/sha256"
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const deterministicReaderInfo = "paillier deterministic reader v1"

type deterministicReader struct {
	mu     sync.Mutex
	stream *chacha20.Cipher
}

// NewDeterministicReader returns a reproducible ChaCha20 key stream derived from `seed` with HKDF-SHA256.
// It is safe for concurrent use. Anything generated from it is only as secret as the seed:
// use it for tests and simulations, never for production keys.
func NewDeterministicReader(seed []byte) io.Reader {
	kdf := hkdf.New(sha256.New, seed, nil, []byte(deterministicReaderInfo))
	keyNonce := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := io.ReadFull(kdf, keyNonce); err != nil {
		panic(errors.Wrap(err, "NewDeterministicReader: hkdf expansion failed"))
	}
	stream, err := chacha20.NewUnauthenticatedCipher(keyNonce[:chacha20.KeySize], keyNonce[chacha20.KeySize:])
	if err != nil {
		panic(errors.Wrap(err, "NewDeterministicReader: chacha20 init failed"))
	}
	return &deterministicReader{stream: stream}
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range p {
		p[i] = 0
	}
	r.stream.XORKeyStream(p, p)
	return len(p), nil
}

// IsDeterministicReader reports whether r was returned by NewDeterministicReader.
func IsDeterministicReader(r io.Reader) bool {
	_, ok := r.(*deterministicReader)
	return ok
}

// lockedReader serialises reads from a reader that is not safe for concurrent use.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// newLockedReader returns r unchanged when it is already safe for concurrent use.
func newLockedReader(r io.Reader) io.Reader {
	if r == crand.Reader {
		return r
	}
	if IsDeterministicReader(r) {
		return r
	}
	return &lockedReader{r: r}
}

func (lr *lockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}
