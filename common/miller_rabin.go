// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	"io"

	big "github.com/iofinnet/paillier/common/int"
)

// IsProbablePrime runs `rounds` Miller-Rabin trials on n, drawing each witness uniformly from [2, n-2] with `rand`.
// A false result is definitive. A true result means "probably prime": a composite passes with probability at most 4^-rounds.
// It panics if `rand` fails to produce entropy; use it only with readers that cannot fail, such as crypto/rand.
func IsProbablePrime(rand io.Reader, n *big.Int, rounds int) bool {
	prime, err := isProbablePrime(rand, n, rounds)
	if err != nil {
		panic(err)
	}
	return prime
}

// isProbablePrime is IsProbablePrime returning reader failures as errors, for use inside worker goroutines
// where a panic cannot be recovered by the caller.
func isProbablePrime(rand io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Cmp(one) <= 0 {
		return false, nil
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// n - 1 = d⋅2^s with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d, s := nMinus1.Clone(), 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	modN := big.ModInt(n)
	// each round lets a composite through with probability at most 1/4
	for i := 0; i < rounds; i++ {
		a, err := GetRandomIntInRange(rand, two, nMinus1)
		if err != nil {
			return false, err
		}
		x := modN.Exp(a, d)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for r := 1; r < s; r++ {
			x = modN.Mul(x, x)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}
