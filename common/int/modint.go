// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package int

// modInt is an *Int that performs all of its arithmetic with modular reduction.
type modInt Int

func ModInt(mod *Int) *modInt {
	return (*modInt)(mod.Clone())
}

func (mi *modInt) Add(x, y *Int) *Int {
	i := new(Int).Add(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Sub(x, y *Int) *Int {
	i := new(Int).Sub(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Mul(x, y *Int) *Int {
	i := new(Int).Mul(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Exp(x, y *Int) *Int {
	return new(Int).Exp(x, y, mi.int())
}

func (mi *modInt) Neg(x *Int) *Int {
	i := new(Int).Neg(x)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Inverse(g *Int) *Int {
	return new(Int).ModInverse(g, mi.int())
}

// Contains reports whether 0 <= x < mod.
func (mi *modInt) Contains(x *Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(mi.int()) < 0
}

func (mi *modInt) int() *Int {
	return (*Int)(mi)
}
