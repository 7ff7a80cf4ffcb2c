// Copyright © 2021 Io FinNet Group, Inc.

package paillier

import (
	"github.com/hashicorp/go-multierror"
	"github.com/iofinnet/paillier/common"
	big "github.com/iofinnet/paillier/common/int"
	"github.com/pkg/errors"
)

const (
	// smallFactorBound is the trial division bound used on moduli large enough to be made of primes above it.
	// 2^16 catches moduli assembled from many primes that all exceed 1000 but stay below 65536 (the "6ix1een" attack),
	// which a bound of 1000 would let through.
	smallFactorBound = 1 << 16
	// maxPerfectPowerExponent bounds the prime exponents k checked for N = b^k.
	// Composite exponents need no check: b^(jk) = (b^j)^k is caught at the prime k.
	// A random modulus is a k-th power for larger k with negligible probability.
	maxPerfectPowerExponent = 64
)

var smallPrimesForPerfectPower = common.GetPrimesUpTo(maxPerfectPowerExponent)

// Validate checks the structure of the public key. Every failed check is reported.
func (publicKey *PublicKey) Validate() error {
	if publicKey == nil || publicKey.N == nil || publicKey.G == nil {
		return errors.Wrap(ErrInvalidKey, "missing N or G")
	}
	var result *multierror.Error
	N := publicKey.N
	if N.Cmp(one) <= 0 {
		return errors.Wrap(ErrInvalidKey, "N must be > 1")
	}
	if N.Bit(0) == 0 {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "N is even"))
	}
	if publicKey.G.Cmp(publicKey.Gamma()) != 0 {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "G != N+1"))
	}
	if N.ProbablyPrime(common.PrimeTestN) {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "N is prime"))
	}
	if isPerfectPower(N) {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "N is a perfect power"))
	}
	// a modulus of two primes above the bound has at least 34 bits
	if N.BitLen() >= 34 && common.HasSmallFactor(N, smallFactorBound) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidKey, "N has a prime factor below %d", smallFactorBound))
	}
	return result.ErrorOrNil()
}

// Validate checks the public part and that Mu inverts L(G^Lambda mod N²).
func (privateKey *PrivateKey) Validate() error {
	if privateKey == nil {
		return errors.Wrap(ErrInvalidKey, "nil private key")
	}
	var result *multierror.Error
	if err := privateKey.PublicKey.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if privateKey.Lambda == nil || privateKey.Mu == nil {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "missing Lambda or Mu"))
		return result.ErrorOrNil()
	}
	if privateKey.Lambda.Sign() <= 0 {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "Lambda must be positive"))
	}
	if privateKey.checkKey() != nil || result.ErrorOrNil() != nil {
		return result.ErrorOrNil()
	}
	N := privateKey.N
	Lg := L(new(big.Int).Exp(privateKey.G, privateKey.Lambda, privateKey.NSquare()), N)
	if big.ModInt(N).Mul(Lg, privateKey.Mu).Cmp(one) != 0 {
		result = multierror.Append(result, errors.Wrap(ErrInvalidKey, "Mu is not the inverse of L(G^Lambda mod N²)"))
	}
	return result.ErrorOrNil()
}

// isPerfectPower checks if N is a perfect power b^k with b > 1 and prime k up to maxPerfectPowerExponent.
func isPerfectPower(N *big.Int) bool {
	if N.Cmp(big.NewInt(4)) < 0 {
		return false
	}
	// squares first: N = p² is the likeliest malformed modulus and Sqrt is cheap
	root := new(big.Int).Sqrt(N)
	if new(big.Int).Mul(root, root).Cmp(N) == 0 {
		return true
	}
	for _, k := range smallPrimesForPerfectPower {
		if k == 2 {
			continue
		}
		if isKthPower(N, k) {
			return true
		}
	}
	return false
}

// isKthPower reports whether N = r^k for some integer r >= 2.
// r is built from its most significant bit down, keeping each bit while r^k stays <= N, which yields floor(N^(1/k)).
func isKthPower(N *big.Int, k uint) bool {
	bitLen := N.BitLen()
	// 2^k > N already, so no root >= 2 exists
	if k >= uint(bitLen) {
		return false
	}
	kBig := new(big.Int).SetUint64(uint64(k))
	// floor(N^(1/k)) < 2^ceil(bitLen/k)
	rootBits := (bitLen + int(k) - 1) / int(k)
	root := new(big.Int)
	for i := rootBits - 1; i >= 0; i-- {
		try := new(big.Int).Add(root, new(big.Int).Lsh(one, uint(i)))
		if new(big.Int).Exp(try, kBig, nil).Cmp(N) <= 0 {
			root = try
		}
	}
	return new(big.Int).Exp(root, kBig, nil).Cmp(N) == 0
}
