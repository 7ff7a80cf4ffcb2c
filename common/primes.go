// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	big "github.com/iofinnet/paillier/common/int"
)

// smallPrimes contains the first 15 odd primes (excluding 2).
// Used for rapid elimination of composite candidates in prime generation.
// Product fits in uint64 for efficient modular arithmetic.
var smallPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// smallPrimesProduct is the product of smallPrimes.
// Allows efficient coprimality testing via single modular reduction.
var smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// GetPrimesUpTo generates all prime numbers up to the given limit
// using the Sieve of Eratosthenes algorithm.
func GetPrimesUpTo(limit int) []uint {
	if limit < 2 {
		return []uint{}
	}

	isComposite := make([]bool, limit+1)
	isComposite[0] = true
	isComposite[1] = true

	for p := 2; p*p <= limit; p++ {
		if !isComposite[p] {
			for i := p * p; i <= limit; i += p {
				isComposite[i] = true
			}
		}
	}

	var primes []uint
	for i := 2; i <= limit; i++ {
		if !isComposite[i] {
			primes = append(primes, uint(i))
		}
	}
	return primes
}

// isPrimeCandidate rejects even numbers other than 2 and multiples of smallPrimes.
// The `m != prime` check keeps the small primes themselves, which matters for tiny bit lengths
// where the candidate is smaller than smallPrimesProduct.
func isPrimeCandidate(n *big.Int) bool {
	if n.Bit(0) == 0 {
		return n.Cmp(two) == 0
	}
	m := new(big.Int).Mod(n, smallPrimesProduct).Uint64()
	for _, prime := range smallPrimes {
		if m != prime && m%prime == 0 {
			return false
		}
	}
	return true
}

// HasSmallFactor reports whether n is divisible by a prime p <= limit with p < n.
func HasSmallFactor(n *big.Int, limit int) bool {
	for _, p := range GetPrimesUpTo(limit) {
		bp := new(big.Int).SetUint64(uint64(p))
		if bp.Cmp(n) >= 0 {
			return false
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return true
		}
	}
	return false
}
