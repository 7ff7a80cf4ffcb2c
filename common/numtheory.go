// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	big "github.com/iofinnet/paillier/common/int"
)

// LCM returns a⋅b / gcd(a, b). Both a and b must be non-zero.
func LCM(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	ab := new(big.Int).Mul(a, b)
	return ab.Div(ab, gcd)
}

// ModInverse computes a⁻¹ mod m with the extended Euclidean algorithm, normalised into [0, m).
// The result is meaningless when gcd(a, m) != 1; m must be positive.
func ModInverse(a, m *big.Int) *big.Int {
	r0, r1 := m.Clone(), a.Clone()
	t0, t1 := big.NewInt(0), big.NewInt(1)
	for r1.Sign() != 0 {
		q := new(big.Int).Div(r0, r1)
		t0, t1 = t1, new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))
		r0, r1 = r1, new(big.Int).Mod(r0, r1)
	}
	for t0.Sign() < 0 {
		t0.Add(t0, m)
	}
	return t0
}

// ModPow computes base^exponent mod modulus by right-to-left square-and-multiply, independently of the
// provider's Exp. A zero exponent yields 1 for any base, including 0.
// It panics if exponent is negative.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if exponent.Sign() < 0 {
		panic("ModPow: negative exponent")
	}
	result := big.NewInt(1)
	if exponent.Sign() == 0 {
		return result
	}
	mod := big.ModInt(modulus)
	b := new(big.Int).Mod(base, modulus)
	result.Mod(result, modulus)
	for i, bits := 0, exponent.BitLen(); i < bits; i++ {
		if exponent.Bit(i) == 1 {
			result = mod.Mul(result, b)
		}
		if i+1 < bits {
			b = mod.Mul(b, b)
		}
	}
	return result
}
