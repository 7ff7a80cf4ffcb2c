// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	big "github.com/iofinnet/paillier/common/int"

	"github.com/ipfs/go-log"
)

var Logger = log.Logger("paillier")

// FormatBigInt renders the low 32 bits of a in hex, enough to tell values apart in logs without printing key material.
func FormatBigInt(a *big.Int) string {
	if a == nil {
		return "<nil>"
	}
	var aux = new(big.Int).SetInt64(0xFFFFFFFF)
	return new(big.Int).Mod(a, new(big.Int).Add(aux, one)).Text(16)
}
