// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package int is the arbitrary-precision integer provider used throughout the library.
// It is imported under the name `big` and wraps math/big, with an optional best-effort
// constant-time modular exponentiation backed by saferith.

package int

import (
	"encoding/json"
	"math/big"
	"sync/atomic"

	"github.com/cronokirby/saferith"
)

type (
	Int struct {
		i *big.Int
	}
)

var constantTimeExpEnabled atomic.Bool

// EnableConstantTimeArithmetic routes modular exponentiation with non-negative operands and an odd modulus through saferith
// (experimental, slow). Other operations remain variable time.
func EnableConstantTimeArithmetic() (enabled bool) {
	constantTimeExpEnabled.Store(true)
	return constantTimeExpEnabled.Load()
}

// DisableConstantTimeArithmetic restores the math/big exponentiation.
func DisableConstantTimeArithmetic() {
	constantTimeExpEnabled.Store(false)
}

func NewInt(x int64) *Int {
	return &Int{big.NewInt(x)}
}

// Wrap takes ownership of i2; the caller must not modify it afterwards.
func Wrap(i2 *big.Int) *Int {
	if i2 == nil {
		return nil
	}
	return &Int{i2}
}

func SetString(s string, base int) (*Int, bool) {
	bi, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	return Wrap(bi), true
}

func (z *Int) Set(x *Int) *Int {
	z.i = z.big().Set(x.Big())
	return z
}
func (z *Int) SetBytes(data []byte) *Int {
	z.i = z.big().SetBytes(data)
	return z
}
func (z *Int) SetInt64(x int64) *Int {
	z.i = z.big().SetInt64(x)
	return z
}
func (z *Int) SetUint64(x uint64) *Int {
	z.i = z.big().SetUint64(x)
	return z
}
func (z *Int) Clone() *Int {
	return &Int{new(big.Int).Set(z.Big())}
}

func (z *Int) Add(x, y *Int) *Int {
	z.i = z.big().Add(x.Big(), y.Big())
	return z
}
func (z *Int) Sub(x, y *Int) *Int {
	z.i = z.big().Sub(x.Big(), y.Big())
	return z
}
func (z *Int) Mul(x, y *Int) *Int {
	z.i = z.big().Mul(x.Big(), y.Big())
	return z
}

// Div is Euclidean division (rounds towards negative infinity for positive divisors).
func (z *Int) Div(x, y *Int) *Int {
	z.i = z.big().Div(x.Big(), y.Big())
	return z
}

// Mod is the Euclidean modulus; the result is always in [0, |y|).
func (z *Int) Mod(x, y *Int) *Int {
	z.i = z.big().Mod(x.Big(), y.Big())
	return z
}
func (z *Int) Neg(x *Int) *Int {
	z.i = z.big().Neg(x.Big())
	return z
}
func (z *Int) Lsh(x *Int, n uint) *Int {
	z.i = z.big().Lsh(x.Big(), n)
	return z
}
func (z *Int) Rsh(x *Int, n uint) *Int {
	z.i = z.big().Rsh(x.Big(), n)
	return z
}

// Sqrt sets z to the floor of the square root of x. It panics if x is negative.
func (z *Int) Sqrt(x *Int) *Int {
	z.i = z.big().Sqrt(x.Big())
	return z
}

// Exp sets z = x**y mod |m|. A nil m means no reduction.
func (z *Int) Exp(x, y, m *Int) *Int {
	if m == nil {
		z.i = z.big().Exp(x.Big(), y.Big(), nil)
		return z
	}
	if constantTimeExpEnabled.Load() && x.Sign() >= 0 && y.Sign() >= 0 && m.Sign() > 0 && m.Bit(0) == 1 {
		z.i = constantTimeExp(x.Big(), y.Big(), m.Big())
		return z
	}
	z.i = z.big().Exp(x.Big(), y.Big(), m.Big())
	return z
}

// ModInverse is the provider's own inverse. Returns nil when x has no inverse mod m.
func (z *Int) ModInverse(x, m *Int) *Int {
	if z.big().ModInverse(x.Big(), m.Big()) == nil {
		return nil
	}
	return z
}
func (z *Int) GCD(x, y, a, b *Int) *Int {
	var xb, yb *big.Int
	if x != nil {
		xb = x.big()
	}
	if y != nil {
		yb = y.big()
	}
	z.i = z.big().GCD(xb, yb, a.Big(), b.Big())
	return z
}
func (z *Int) ProbablyPrime(n int) bool {
	return z.Big().ProbablyPrime(n)
}

// getters
func (z *Int) Cmp(y *Int) int {
	return z.Big().Cmp(y.Big())
}
func (z *Int) Sign() int {
	return z.Big().Sign()
}
func (z *Int) BitLen() int {
	return z.Big().BitLen()
}
func (z *Int) Bit(i int) uint {
	return z.Big().Bit(i)
}
func (z *Int) Int64() int64 {
	return z.Big().Int64()
}
func (z *Int) Uint64() uint64 {
	return z.Big().Uint64()
}
func (z *Int) Bytes() []byte {
	return z.Big().Bytes()
}
func (z *Int) Text(base int) string {
	return z.Big().Text(base)
}
func (z *Int) String() string {
	if z == nil {
		return "<nil>"
	}
	return z.Big().String()
}

// Big returns the underlying *big.Int; callers must treat it as read-only.
func (z *Int) Big() *big.Int {
	if z.i == nil {
		z.i = new(big.Int)
	}
	return z.i
}

// -----

func (z *Int) big() *big.Int {
	if z.i == nil {
		z.i = new(big.Int)
	}
	return z.i
}

func constantTimeExp(x, y, m *big.Int) *big.Int {
	mod := saferith.ModulusFromBytes(m.Bytes())
	xNat := new(saferith.Nat).SetBytes(x.Bytes())
	xNat.Mod(xNat, mod)
	yNat := new(saferith.Nat).SetBytes(y.Bytes())
	return new(saferith.Nat).Exp(xNat, yNat, mod).Big()
}

func (z *Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.Big())
}

func (z *Int) UnmarshalJSON(b []byte) error {
	var Z big.Int
	if err := json.Unmarshal(b, &Z); err != nil {
		return err
	}
	z.i = &Z
	return nil
}

func (z *Int) GobEncode() ([]byte, error) {
	return z.Big().GobEncode()
}

func (z *Int) GobDecode(buf []byte) error {
	return z.big().GobDecode(buf)
}
