// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	"bytes"
	crand "crypto/rand"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readN(t *testing.T, r io.Reader, n int) []byte {
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	return buf
}

func TestDeterministicReaderRepeatable(t *testing.T) {
	a := NewDeterministicReader([]byte("seed"))
	b := NewDeterministicReader([]byte("seed"))
	// read in different chunk sizes, the stream must still line up
	left := append(readN(t, a, 7), readN(t, a, 121)...)
	right := readN(t, b, 128)
	assert.Equal(t, left, right)
	assert.NotEqual(t, make([]byte, 128), left)
}

func TestDeterministicReaderSeedsDiffer(t *testing.T) {
	a := readN(t, NewDeterministicReader([]byte("seed-1")), 64)
	b := readN(t, NewDeterministicReader([]byte("seed-2")), 64)
	assert.False(t, bytes.Equal(a, b))
}

func TestDeterministicReaderConcurrent(t *testing.T) {
	r := NewDeterministicReader([]byte("concurrent"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 256)
			for j := 0; j < 50; j++ {
				_, err := r.Read(buf)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestLockedReaderPassThrough(t *testing.T) {
	r := NewDeterministicReader([]byte("x"))
	assert.True(t, IsDeterministicReader(r))
	assert.Equal(t, r, newLockedReader(r))
	assert.Equal(t, crand.Reader, newLockedReader(crand.Reader), "crypto/rand is already safe for concurrent use")

	assert.False(t, IsDeterministicReader(crand.Reader))
	wrapped := newLockedReader(bytes.NewReader([]byte{1, 2, 3}))
	_, isLocked := wrapped.(*lockedReader)
	assert.True(t, isLocked)
	assert.Equal(t, []byte{1, 2, 3}, readN(t, wrapped, 3))
}
