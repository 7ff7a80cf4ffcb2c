// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package paillier

import (
	"crypto/rand"
	"io"
	"runtime"
	"time"

	"github.com/iofinnet/paillier/common"
	"github.com/pkg/errors"
)

type (
	// Parameters configures key generation.
	Parameters struct {
		modulusBitLen      int
		primeGenTimeout    time.Duration
		concurrency        int
		primalityTestRound int
		rand               io.Reader
	}
)

const (
	// MinModulusBitLen is the smallest modulus GenerateKeyPair accepts.
	MinModulusBitLen = 8

	defaultPrimeGenTimeout = 5 * time.Minute
)

var ErrInvalidBitLen = errors.New("modulus bit length must be even and at least 8")

func NewParameters(modulusBitLen int, optionalPrimeGenTimeout ...time.Duration) (*Parameters, error) {
	var primeGenTimeout time.Duration
	if 0 < len(optionalPrimeGenTimeout) {
		if 1 < len(optionalPrimeGenTimeout) {
			return nil, errors.New("NewParameters: expected 0 or 1 item in `optionalPrimeGenTimeout`")
		}
		primeGenTimeout = optionalPrimeGenTimeout[0]
	} else {
		primeGenTimeout = defaultPrimeGenTimeout
	}
	params := &Parameters{
		modulusBitLen:      modulusBitLen,
		primeGenTimeout:    primeGenTimeout,
		concurrency:        runtime.GOMAXPROCS(0),
		primalityTestRound: common.PrimeTestN,
		rand:               rand.Reader,
	}
	return params, params.Validate()
}

func (params *Parameters) Validate() error {
	if params.modulusBitLen < MinModulusBitLen || params.modulusBitLen%2 != 0 {
		return errors.Wrapf(ErrInvalidBitLen, "got %d", params.modulusBitLen)
	}
	if params.primeGenTimeout <= 0 {
		return errors.New("Paillier Parameters: prime generation timeout must be positive")
	}
	if params.concurrency < 1 {
		return errors.New("Paillier Parameters: concurrency < 1")
	}
	if params.primalityTestRound < 1 {
		return errors.New("Paillier Parameters: primality test rounds < 1")
	}
	if params.rand == nil {
		return errors.New("Paillier Parameters: nil random source")
	}
	return nil
}

func (params *Parameters) ModulusBitLen() int {
	return params.modulusBitLen
}

func (params *Parameters) PrimeGenTimeout() time.Duration {
	return params.primeGenTimeout
}

func (params *Parameters) Concurrency() int {
	return params.concurrency
}

func (params *Parameters) PrimalityTestRounds() int {
	return params.primalityTestRound
}

func (params *Parameters) Rand() io.Reader {
	return params.rand
}

func (params *Parameters) SetConcurrency(concurrency int) {
	params.concurrency = concurrency
}

func (params *Parameters) SetPrimalityTestRounds(rounds int) {
	params.primalityTestRound = rounds
}

// SetRand replaces the random source used for prime generation. Use anything but crypto/rand.Reader for tests only.
// With a reader from common.NewDeterministicReader the keys are reproducible: key generation then runs a single
// worker whatever the configured concurrency, since racing workers would consume the stream in scheduling order.
// Other readers are shared by all workers and give no such guarantee.
func (params *Parameters) SetRand(r io.Reader) {
	if r != rand.Reader {
		common.Logger.Warn("SetRand() installed a non-default random source; do not use these keys in production.")
	}
	params.rand = r
}
