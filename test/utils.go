// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package test

import (
	big "github.com/iofinnet/paillier/common/int"
)

// Pre-generated primes with the two top bits set, so that each pair multiplies to a modulus of exactly twice their size.
// Key generation at realistic sizes takes seconds; tests that only need a valid key pair use these instead.
const (
	prime512a = "10297724418075913674496245190833855510822110990078102422784924355504258639918152065776732274445952107520904569478651792697666538413696499695460356250197101"
	prime512b = "12499635614969593930417178079000020610206939652040862421780112113799427615467994114591084484519663589551904159336865102947187154652516894053846520744398499"

	prime1024a = "141260113474636661461230800830541261142710236706021089743458461071013950464323404761366614058020859766639521731025908414345547860005833849529750000952454494795019807551856027541460459874295926683042503584854863075119686547921624221275236693099313923846162962470098563560971494933135351371528314759532480934913"
	prime1024b = "159232230230109335406852898968485383717131460438518778505806356770078008208203230580081079305183529634410476087326103851189383725607392412838437267975965583898737725090408699375481960940576461871717510756411842733148741147666060145990189610555198808185961971753985932761623222204971501234821267656925754578347"
)

// FixturePrimes1024 returns two distinct 512-bit primes for a 1024-bit modulus.
func FixturePrimes1024() (p, q *big.Int) {
	return mustParse(prime512a), mustParse(prime512b)
}

// FixturePrimes2048 returns two distinct 1024-bit primes for a 2048-bit modulus.
func FixturePrimes2048() (p, q *big.Int) {
	return mustParse(prime1024a), mustParse(prime1024b)
}

func mustParse(s string) *big.Int {
	v, ok := big.SetString(s, 10)
	if !ok {
		panic("test: bad fixture " + s)
	}
	return v
}
