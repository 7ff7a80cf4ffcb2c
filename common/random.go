// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	crand "crypto/rand"
	"fmt"
	"io"
	big2 "math/big"

	big "github.com/iofinnet/paillier/common/int"
	"github.com/pkg/errors"
)

const (
	// covers N² for an 8192-bit modulus and bounds the allocation a caller-supplied bit count can trigger
	mustGetRandomIntMaxBits = 16384
)

var (
	ErrEmptyRange = errors.New("random range is empty")

	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// GetRandomInt returns a uniformly random integer in [0, 2^bits) read from `rand`.
func GetRandomInt(rand io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		return nil, fmt.Errorf("GetRandomInt: bits should be positive, non-zero and less than %d", mustGetRandomIntMaxBits)
	}
	max := new(big2.Int).Lsh(big2.NewInt(1), uint(bits))
	n, err := crand.Int(rand, max)
	if err != nil {
		return nil, errors.Wrap(err, "rand.Int failure in GetRandomInt")
	}
	return big.Wrap(n), nil
}

// MustGetRandomInt panics if it is unable to gather entropy from `rand` or when `bits` is out of range
func MustGetRandomInt(rand io.Reader, bits int) *big.Int {
	n, err := GetRandomInt(rand, bits)
	if err != nil {
		panic(err)
	}
	return n
}

// GetRandomIntInRange returns a uniformly random integer in [lo, hi).
func GetRandomIntInRange(rand io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo == nil || hi == nil || lo.Cmp(hi) >= 0 {
		return nil, ErrEmptyRange
	}
	// rand.Int rejection-samples below its bound, so the draw is uniform with no modulo bias
	width := new(big.Int).Sub(hi, lo)
	n, err := crand.Int(rand, width.Big())
	if err != nil {
		return nil, errors.Wrap(err, "rand.Int failure in GetRandomIntInRange")
	}
	return new(big.Int).Add(big.Wrap(n), lo), nil
}

func MustGetRandomIntInRange(rand io.Reader, lo, hi *big.Int) *big.Int {
	n, err := GetRandomIntInRange(rand, lo, hi)
	if err != nil {
		panic(err)
	}
	return n
}

// GetRandomIntOfBitLen draws from [0, 2^bits) until the sample is exactly `bits` long.
func GetRandomIntOfBitLen(rand io.Reader, bits int) (*big.Int, error) {
	for {
		try, err := GetRandomInt(rand, bits)
		if err != nil {
			return nil, err
		}
		// the top bit is set half of the time, so this terminates after two draws on average
		if try.BitLen() == bits {
			return try, nil
		}
	}
}

// GetRandomPositiveRelativelyPrimeInt returns a random element of the group of all the elements in Z/nZ that
// has a multiplicative inverse.
func GetRandomPositiveRelativelyPrimeInt(rand io.Reader, n *big.Int) (*big.Int, error) {
	if n == nil || n.Cmp(two) < 0 {
		return nil, errors.Wrap(ErrEmptyRange, "GetRandomPositiveRelativelyPrimeInt: n must be >= 2")
	}
	for {
		try, err := GetRandomIntInRange(rand, one, n)
		if err != nil {
			return nil, err
		}
		if IsNumberInMultiplicativeGroup(n, try) {
			return try, nil
		}
	}
}

func IsNumberInMultiplicativeGroup(n, v *big.Int) bool {
	if n == nil || v == nil || zero.Cmp(n) != -1 {
		return false
	}
	gcd := new(big.Int).GCD(nil, nil, v, n)
	return v.Cmp(n) < 0 && v.Cmp(one) >= 0 && gcd.Cmp(one) == 0
}
