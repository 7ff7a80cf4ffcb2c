// Copyright © 2021 Io FinNet Group, Inc.

package paillier

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	big "github.com/iofinnet/paillier/common/int"
	"github.com/iofinnet/paillier/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mersenne127 = "170141183460469231731687303715884105727"

func publicKeyFor(N *big.Int) *PublicKey {
	return &PublicKey{N: N, G: new(big.Int).Add(N, one)}
}

func productOf(factors ...int64) *big.Int {
	n := big.NewInt(1)
	for _, f := range factors {
		n.Mul(n, big.NewInt(f))
	}
	return n
}

// padWith multiplies n by f until it is at least bits long.
func padWith(n, f *big.Int, bits int) *big.Int {
	for n.BitLen() < bits {
		n.Mul(n, f)
	}
	return n
}

func TestPublicKeyValidate(t *testing.T) {
	p, q := test.FixturePrimes2048()
	m127, _ := big.SetString(mersenne127, 10)

	tests := []struct {
		name    string
		modulus func() *big.Int
		valid   bool
	}{
		{
			name:    "Valid 2048-bit modulus",
			modulus: func() *big.Int { return new(big.Int).Mul(p, q) },
			valid:   true,
		},
		{
			name:    "Valid tiny modulus",
			modulus: func() *big.Int { return big.NewInt(143) },
			valid:   true,
		},
		{
			name: "Modulus with small factor 997",
			modulus: func() *big.Int {
				return new(big.Int).Mul(big.NewInt(997), new(big.Int).Mul(p, q))
			},
		},
		{
			name: "Modulus with factor 65521 (near the bound)",
			modulus: func() *big.Int {
				return new(big.Int).Mul(big.NewInt(65521), new(big.Int).Mul(p, q))
			},
		},
		{
			name: "Sixteen primes above 1000",
			modulus: func() *big.Int {
				n := productOf(1009, 1013, 1019, 1021, 1031, 1033, 1039, 1049,
					1051, 1061, 1063, 1069, 1087, 1091, 1093, 1097)
				return padWith(n, m127, 2048)
			},
		},
		{
			name: "Sixteen primes near 65536",
			modulus: func() *big.Int {
				n := productOf(65521, 65519, 65497, 65479, 65449, 65447, 65437, 65423,
					65419, 65413, 65407, 65393, 65381, 65371, 65369, 65357)
				return padWith(n, m127, 2048)
			},
		},
		{
			name:    "Even modulus",
			modulus: func() *big.Int { return new(big.Int).Mul(big.NewInt(2), new(big.Int).Mul(p, q)) },
		},
		{
			name:    "Perfect square",
			modulus: func() *big.Int { return new(big.Int).Mul(p, p) },
		},
		{
			name:    "Perfect cube",
			modulus: func() *big.Int { return new(big.Int).Mul(p, new(big.Int).Mul(p, p)) },
		},
		{
			name:    "Prime modulus",
			modulus: func() *big.Int { return p },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := publicKeyFor(tt.modulus()).Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidKey))
		})
	}
}

func TestPublicKeyValidateCollectsAllFailures(t *testing.T) {
	p, _ := test.FixturePrimes1024()
	// prime and with the wrong generator
	err := (&PublicKey{N: p, G: big.NewInt(2)}).Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)

	assert.Error(t, (&PublicKey{}).Validate())
	assert.Error(t, publicKeyFor(one).Validate())
}

func TestPrivateKeyValidate(t *testing.T) {
	sk, _ := fixtureKeys(t)
	assert.NoError(t, sk.Validate())

	bad := sk.Clone()
	bad.Mu.Add(bad.Mu, one)
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidKey))

	bad = sk.Clone()
	bad.Lambda = nil
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidKey))

	bad = sk.Clone()
	bad.Lambda = big.NewInt(0)
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidKey))

	var nilSK *PrivateKey
	assert.Error(t, nilSK.Validate())
}

func TestIsPerfectPower(t *testing.T) {
	assert.False(t, isPerfectPower(big.NewInt(3)))
	assert.True(t, isPerfectPower(big.NewInt(4)))
	assert.True(t, isPerfectPower(big.NewInt(27)))
	assert.True(t, isPerfectPower(new(big.Int).Exp(big.NewInt(7), big.NewInt(31), nil)))
	assert.False(t, isPerfectPower(big.NewInt(143)))
	assert.False(t, isPerfectPower(big.NewInt(2*3*5*7*11*13)))
}

func TestIsKthPower(t *testing.T) {
	tests := []struct {
		n    *big.Int
		k    uint
		want bool
	}{
		{big.NewInt(8), 3, true},
		{big.NewInt(27), 3, true},
		{big.NewInt(26), 3, false},
		{big.NewInt(28), 3, false},
		{big.NewInt(32), 5, true},
		{big.NewInt(31), 5, false},
		{big.NewInt(16), 5, false},
		{new(big.Int).Exp(big.NewInt(1000003), big.NewInt(7), nil), 7, true},
		{new(big.Int).Add(new(big.Int).Exp(big.NewInt(1000003), big.NewInt(7), nil), one), 7, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, isKthPower(tt.n, tt.k), "%s is a %d-th power", tt.n, tt.k)
	}
}
