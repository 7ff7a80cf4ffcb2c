// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	"crypto/rand"
	"errors"
	"testing"
	"testing/iotest"

	big "github.com/iofinnet/paillier/common/int"
	"github.com/iofinnet/paillier/internal"
	"github.com/otiai10/primes"
	"github.com/stretchr/testify/assert"
)

const primalityCheckLimit = 10000

func TestIsProbablePrimeAgreesWithSieve(t *testing.T) {
	t.Parallel()
	oracle := make(map[int64]bool)
	for _, p := range primes.Until(primalityCheckLimit).List() {
		oracle[p] = true
	}
	sieved := GetPrimesUpTo(primalityCheckLimit)
	assert.Equal(t, len(oracle), len(sieved), "sieve and oracle disagree on the prime count")
	for _, p := range sieved {
		assert.Truef(t, oracle[int64(p)], "sieve reported %d", p)
	}

	for n := int64(-2); n <= primalityCheckLimit; n++ {
		got := IsProbablePrime(rand.Reader, big.NewInt(n), PrimeTestN)
		if oracle[n] {
			assert.Truef(t, got, "%d is prime", n)
		} else {
			assert.Falsef(t, got, "%d is not prime", n)
		}
	}
}

func TestIsProbablePrimeCarmichael(t *testing.T) {
	t.Parallel()
	for _, n := range []int64{561, 1105, 1729, 2465, 2821, 6601, 8911, 41041, 825265, 321197185} {
		assert.Falsef(t, IsProbablePrime(rand.Reader, big.NewInt(n), PrimeTestN), "carmichael number %d", n)
	}
}

func TestIsProbablePrimeLarge(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value string
		prime bool
	}{
		{"M61", "2305843009213693951", true},
		{"M89", "618970019642690137449562111", true},
		{"M127", "170141183460469231731687303715884105727", true},
		{"2^127+1", "170141183460469231731687303715884105729", false},
		{"M61*M89", "1427247692705959880439315947500961989719490561", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := big.SetString(tt.value, 10)
			assert.True(t, ok)
			assert.Equal(t, tt.prime, IsProbablePrime(rand.Reader, n, PrimeTestN))
			assert.Equal(t, tt.prime, n.ProbablyPrime(PrimeTestN))
		})
	}
}

func TestIsProbablePrimeDeterministic(t *testing.T) {
	t.Parallel()
	r1 := NewDeterministicReader([]byte("miller-rabin"))
	r2 := NewDeterministicReader([]byte("miller-rabin"))
	for n := int64(5); n < 2000; n += 2 {
		assert.Equal(t, IsProbablePrime(r1, big.NewInt(n), 3), IsProbablePrime(r2, big.NewInt(n), 3))
	}
}

func TestIsProbablePrimeReaderFailure(t *testing.T) {
	n := big.NewInt(7919)
	prime, err := isProbablePrime(iotest.ErrReader(errNoEntropy), n, PrimeTestN)
	assert.False(t, prime)
	assert.True(t, errors.Is(err, errNoEntropy))

	// short-circuited inputs never touch the reader
	prime, err = isProbablePrime(iotest.ErrReader(errNoEntropy), big.NewInt(3), PrimeTestN)
	assert.True(t, prime)
	assert.NoError(t, err)

	ok, err := internal.ExpectPanic(nil, func() {
		IsProbablePrime(iotest.ErrReader(errNoEntropy), n, PrimeTestN)
	})
	assert.True(t, ok)
	assert.NoError(t, err)
}
