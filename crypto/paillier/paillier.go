// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The Paillier Crypto-system is an additive crypto-system. This means that given two ciphertexts, one can perform operations equivalent to adding the respective plain texts.
// Additionally, Paillier Crypto-system supports further computations:
//
// * Encrypted integers can be added together
// * Encrypted integers can be negated and subtracted from one another
// * Encrypted integers can be multiplied by an unencrypted integer
// * Encrypted integers and unencrypted integers can be added together
//
// Plaintexts live in [0, N) and ciphertexts in [0, N²). Arithmetic on plaintexts is modulo N.

package paillier

import (
	"context"
	"crypto/rand"
	"io"
	"time"

	"github.com/iofinnet/paillier/common"
	big "github.com/iofinnet/paillier/common/int"
	"github.com/pkg/errors"
)

type (
	PublicKey struct {
		N, // p⋅q
		G *big.Int // N+1
	}

	PrivateKey struct {
		PublicKey
		Lambda, // lcm(p-1, q-1)
		Mu *big.Int // L(G^Lambda mod N²)⁻¹ mod N
	}
)

var (
	ErrMessageTooLong   = errors.New("the message is too large or < 0")
	ErrMessageMalFormed = errors.New("the message is mal-formed")
	ErrInvalidKey       = errors.New("invalid paillier key")

	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// GenerateKeyPair generates a key pair whose modulus is the product of two distinct primes of modulusBitLen/2 bits.
// The modulus is modulusBitLen or modulusBitLen-1 bits long.
func GenerateKeyPair(modulusBitLen int, timeout time.Duration, optionalConcurrency ...int) (privateKey *PrivateKey, publicKey *PublicKey, err error) {
	params, err := NewParameters(modulusBitLen, timeout)
	if err != nil {
		return nil, nil, err
	}
	if 0 < len(optionalConcurrency) {
		if 1 < len(optionalConcurrency) {
			return nil, nil, errors.New("GenerateKeyPair: expected 0 or 1 item in `optionalConcurrency`")
		}
		params.SetConcurrency(optionalConcurrency[0])
	}
	return GenerateKeyPairWithParameters(context.Background(), params)
}

// GenerateKeyPairWithParameters is GenerateKeyPair with full control over the random source, the primality test
// rounds and cancellation. The search stops at whichever comes first of ctx and the configured timeout.
func GenerateKeyPairWithParameters(ctx context.Context, params *Parameters) (*PrivateKey, *PublicKey, error) {
	if params == nil {
		return nil, nil, errors.New("GenerateKeyPairWithParameters: nil parameters")
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, params.PrimeGenTimeout())
	defer cancel()

	start := time.Now()
	distinct := func(p1, p2 *big.Int) bool {
		return p1.Cmp(p2) != 0
	}
	concurrency := params.Concurrency()
	if common.IsDeterministicReader(params.Rand()) && concurrency > 1 {
		common.Logger.Debugf("deterministic random source installed; searching primes with 1 worker instead of %d", concurrency)
		concurrency = 1
	}
	primes, err := common.GetRandomPrimesConcurrent(
		ctx, params.Rand(), params.ModulusBitLen()/2, 2, params.PrimalityTestRounds(), concurrency, distinct)
	if err != nil {
		return nil, nil, errors.Wrap(err, "paillier key generation failed")
	}
	privateKey, err := NewPrivateKeyFromPrimes(primes[0], primes[1])
	if err != nil {
		return nil, nil, err
	}
	common.Logger.Debugf("generated %d-bit paillier modulus ..%s in %v",
		privateKey.N.BitLen(), common.FormatBigInt(privateKey.N), time.Since(start))
	return privateKey, &privateKey.PublicKey, nil
}

// NewPrivateKeyFromPrimes derives the key pair for N = p⋅q. The primes must be distinct; their primality is not checked.
func NewPrivateKeyFromPrimes(p, q *big.Int) (*PrivateKey, error) {
	if p == nil || q == nil {
		return nil, errors.Wrap(ErrInvalidKey, "nil prime")
	}
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, errors.Wrap(ErrInvalidKey, "primes must be > 1")
	}
	if p.Cmp(q) == 0 {
		return nil, errors.Wrap(ErrInvalidKey, "p and q must be distinct")
	}
	N := new(big.Int).Mul(p, q)
	NSq := new(big.Int).Mul(N, N)
	G := new(big.Int).Add(N, one)

	// lambda = lcm(p−1, q−1)
	PMinus1, QMinus1 := new(big.Int).Sub(p, one), new(big.Int).Sub(q, one)
	lambda := common.LCM(PMinus1, QMinus1)

	// mu = L(g^lambda mod N²)⁻¹ mod N
	Lg := L(new(big.Int).Exp(G, lambda, NSq), N)
	if new(big.Int).GCD(nil, nil, Lg, N).Cmp(one) != 0 {
		return nil, errors.Wrap(ErrInvalidKey, "L(g^lambda) is not invertible mod N")
	}
	mu := common.ModInverse(Lg, N)

	return &PrivateKey{
		PublicKey: PublicKey{N: N, G: G},
		Lambda:    lambda,
		Mu:        mu,
	}, nil
}

// ----- //

// Encrypt encrypts m in [0, N) with fresh randomness from crypto/rand.
func (publicKey *PublicKey) Encrypt(m *big.Int) (c *big.Int, err error) {
	return publicKey.EncryptWithReader(rand.Reader, m)
}

// EncryptWithReader encrypts m in [0, N) drawing the randomness from rand.
func (publicKey *PublicKey) EncryptWithReader(rand io.Reader, m *big.Int) (c *big.Int, err error) {
	c, _, err = publicKey.EncryptAndReturnRandomness(rand, m)
	return
}

// EncryptAndReturnRandomness encrypts m and also returns the randomness x in Z*_N that was used.
func (publicKey *PublicKey) EncryptAndReturnRandomness(rand io.Reader, m *big.Int) (c *big.Int, x *big.Int, err error) {
	if err = publicKey.checkPlaintext(m); err != nil {
		return nil, nil, err
	}
	if x, err = common.GetRandomPositiveRelativelyPrimeInt(rand, publicKey.N); err != nil {
		return nil, nil, errors.Wrap(err, "EncryptAndReturnRandomness: could not draw randomness")
	}
	c = publicKey.encrypt(m, x)
	return
}

func (publicKey *PublicKey) EncryptWithGivenRandomness(m, x *big.Int) (c *big.Int, err error) {
	if x == nil || x.Cmp(zero) == 0 {
		return nil, errors.New("EncryptWithGivenRandomness() requires non-zero randomness")
	}
	if err = publicKey.checkPlaintext(m); err != nil {
		return nil, err
	}
	if !common.IsNumberInMultiplicativeGroup(publicKey.N, x) {
		return nil, errors.New("EncryptWithGivenRandomness() requires randomness in Z*_N")
	}
	return publicKey.encrypt(m, x), nil
}

func (publicKey *PublicKey) encrypt(m, x *big.Int) *big.Int {
	modNSq := big.ModInt(publicKey.NSquare())
	// 1. G^m mod N²
	Gm := modNSq.Exp(publicKey.G, m)
	// 2. x^N mod N²
	xN := modNSq.Exp(x, publicKey.N)
	// 3. (1) * (2) mod N²
	return modNSq.Mul(Gm, xN)
}

// HomoAdd returns a ciphertext of m1 + m2 mod N given ciphertexts of m1 and m2.
func (publicKey *PublicKey) HomoAdd(c1, c2 *big.Int) (*big.Int, error) {
	if err := publicKey.ValidateCiphertext(c1); err != nil {
		return nil, err
	}
	if err := publicKey.ValidateCiphertext(c2); err != nil {
		return nil, err
	}
	// c1 * c2 mod N²
	return big.ModInt(publicKey.NSquare()).Mul(c1, c2), nil
}

// AdditiveInverse returns c^(N-1) mod N², a ciphertext of -m mod N.
func (publicKey *PublicKey) AdditiveInverse(c *big.Int) (*big.Int, error) {
	if err := publicKey.ValidateCiphertext(c); err != nil {
		return nil, err
	}
	NMinus1 := new(big.Int).Sub(publicKey.N, one)
	return common.ModPow(c, NMinus1, publicKey.NSquare()), nil
}

// HomoSub returns a ciphertext of m1 - m2 mod N given ciphertexts of m1 and m2.
func (publicKey *PublicKey) HomoSub(c1, c2 *big.Int) (*big.Int, error) {
	if err := publicKey.ValidateCiphertext(c1); err != nil {
		return nil, err
	}
	negC2, err := publicKey.AdditiveInverse(c2)
	if err != nil {
		return nil, err
	}
	return publicKey.HomoAdd(c1, negC2)
}

// HomoMult returns a ciphertext of k⋅m mod N given the plaintext scalar k and a ciphertext of m.
func (publicKey *PublicKey) HomoMult(k, c1 *big.Int) (*big.Int, error) {
	if err := publicKey.checkPlaintext(k); err != nil {
		return nil, err
	}
	if err := publicKey.ValidateCiphertext(c1); err != nil {
		return nil, err
	}
	// cipher^k mod N²
	return big.ModInt(publicKey.NSquare()).Exp(c1, k), nil
}

// HomoAddPlain returns a ciphertext of m1 + m2 mod N given a ciphertext of m1 and the plaintext m2.
// The randomness of c1 is carried over unchanged.
func (publicKey *PublicKey) HomoAddPlain(c1, m2 *big.Int) (*big.Int, error) {
	if err := publicKey.ValidateCiphertext(c1); err != nil {
		return nil, err
	}
	if err := publicKey.checkPlaintext(m2); err != nil {
		return nil, err
	}
	modNSq := big.ModInt(publicKey.NSquare())
	return modNSq.Mul(c1, modNSq.Exp(publicKey.G, m2)), nil
}

// ValidateCiphertext checks that c lies in [0, N²).
func (publicKey *PublicKey) ValidateCiphertext(c *big.Int) error {
	if err := publicKey.checkKey(); err != nil {
		return err
	}
	if c == nil || c.Cmp(zero) == -1 || c.Cmp(publicKey.NSquare()) != -1 { // c < 0 || c >= N² ?
		return ErrMessageTooLong
	}
	return nil
}

func (publicKey *PublicKey) checkPlaintext(m *big.Int) error {
	if err := publicKey.checkKey(); err != nil {
		return err
	}
	if m == nil || m.Cmp(zero) == -1 || m.Cmp(publicKey.N) != -1 { // m < 0 || m >= N ?
		return ErrMessageTooLong
	}
	return nil
}

func (publicKey *PublicKey) checkKey() error {
	if publicKey == nil || publicKey.N == nil || publicKey.G == nil || publicKey.N.Cmp(one) <= 0 {
		return ErrInvalidKey
	}
	return nil
}

func (publicKey *PublicKey) NSquare() *big.Int {
	return new(big.Int).Mul(publicKey.N, publicKey.N)
}

// Gamma returns N+1
func (publicKey *PublicKey) Gamma() *big.Int {
	return new(big.Int).Add(publicKey.N, one)
}

// Equal reports whether both keys have the same N and G.
func (publicKey *PublicKey) Equal(other *PublicKey) bool {
	if publicKey == nil || other == nil {
		return publicKey == other
	}
	return equalInts(publicKey.N, other.N) && equalInts(publicKey.G, other.G)
}

func equalInts(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// ----- //

// Decrypt recovers m = L(c^Lambda mod N²)⋅Mu mod N.
func (privateKey *PrivateKey) Decrypt(c *big.Int) (m *big.Int, err error) {
	if privateKey == nil || privateKey.Lambda == nil || privateKey.Mu == nil {
		return nil, ErrInvalidKey
	}
	if err = privateKey.ValidateCiphertext(c); err != nil {
		return nil, err
	}
	N2 := privateKey.NSquare()
	cg := new(big.Int).GCD(nil, nil, c, N2)
	if cg.Cmp(one) == 1 {
		return nil, ErrMessageMalFormed
	}
	// 1. L(u) = (c^Lambda mod N²) / N
	Lc := L(new(big.Int).Exp(c, privateKey.Lambda, N2), privateKey.N)
	// 2. (1) * Mu mod N
	m = big.ModInt(privateKey.N).Mul(Lc, privateKey.Mu)
	return
}

// ----- utils

// L is Paillier's L function (u-1)/N, using floor division.
func L(u, N *big.Int) *big.Int {
	t := new(big.Int).Sub(u, one)
	return new(big.Int).Div(t, N)
}

// Clone creates a deep copy of the PublicKey
func (publicKey *PublicKey) Clone() *PublicKey {
	if publicKey == nil {
		return nil
	}
	newPK := &PublicKey{}
	if publicKey.N != nil {
		newPK.N = publicKey.N.Clone()
	}
	if publicKey.G != nil {
		newPK.G = publicKey.G.Clone()
	}
	return newPK
}

// Clone creates a deep copy of the PrivateKey
func (privateKey *PrivateKey) Clone() *PrivateKey {
	if privateKey == nil {
		return nil
	}
	newSK := &PrivateKey{PublicKey: *privateKey.PublicKey.Clone()}
	if privateKey.Lambda != nil {
		newSK.Lambda = privateKey.Lambda.Clone()
	}
	if privateKey.Mu != nil {
		newSK.Mu = privateKey.Mu.Clone()
	}
	return newSK
}
