// Copyright © 2021 Io FinNet Group, Inc.
// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"context"
	"fmt"
	"io"
	"time"

	big "github.com/iofinnet/paillier/common/int"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	// PrimeTestN is the number of Miller-Rabin rounds used when generating primes.
	// The false positive probability is bounded by 4^-20.
	PrimeTestN = 20
	// MinPrimeBitLen is the smallest prime size that can be requested.
	MinPrimeBitLen = 2
)

var ErrPrimeGenTimeout = errors.New("prime generator timed out")

// GetRandomProbablePrime draws integers of exactly `bitLen` bits from `rand` until one passes
// IsProbablePrime with `rounds` trials. There is no bound on the number of draws.
func GetRandomProbablePrime(rand io.Reader, bitLen, rounds int) (*big.Int, error) {
	return getRandomProbablePrime(context.Background(), rand, bitLen, rounds)
}

func getRandomProbablePrime(ctx context.Context, rand io.Reader, bitLen, rounds int) (*big.Int, error) {
	if bitLen < MinPrimeBitLen {
		return nil, fmt.Errorf("prime size must be at least %d bits", MinPrimeBitLen)
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		try, err := GetRandomIntOfBitLen(rand, bitLen)
		if err != nil {
			return nil, err
		}
		// trial division by the small primes is far cheaper than a Miller-Rabin round and rejects most candidates
		if !isPrimeCandidate(try) {
			continue
		}
		prime, err := isProbablePrime(rand, try, rounds)
		if err != nil {
			return nil, err
		}
		if prime {
			return try, nil
		}
	}
}

// GetRandomPrimesConcurrent searches for `numPrimes` probable primes of `bitLen` bits.
// `concurrency` workers each run the GetRandomProbablePrime loop; the first results accepted by
// `primeFilter` win and the remaining work is cancelled.
//
// The primeFilter parameter can be nil. If provided, it will be called
// to check each new prime candidate against all previously accepted primes.
// Note: This has O(n²) complexity with respect to numPrimes.
//
// If `ctx` is done before enough primes are found, ErrPrimeGenTimeout is returned.
// When concurrency > 1, reads from `rand` are serialised.
func GetRandomPrimesConcurrent(
	ctx context.Context, rand io.Reader, bitLen, numPrimes, rounds, concurrency int, primeFilter func(p1, p2 *big.Int) bool) ([]*big.Int, error) {

	if bitLen < MinPrimeBitLen {
		return nil, fmt.Errorf("prime size must be at least %d bits", MinPrimeBitLen)
	}
	if numPrimes < 1 {
		return nil, errors.New("numPrimes should be > 0")
	}
	if concurrency < 1 {
		return nil, errors.New("concurrency should be > 0")
	}
	// workers share one reader; io.Reader gives no concurrency guarantee
	if concurrency > 1 {
		rand = newLockedReader(rand)
	}

	start := time.Now()
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(searchCtx)

	// one slot per worker so a finished worker is not blocked while the consumer filters
	primeCh := make(chan *big.Int, concurrency)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			return runGenPrimeRoutine(gctx, primeCh, rand, bitLen, rounds)
		})
	}

	primes := make([]*big.Int, 0, numPrimes)
outer:
	for len(primes) < numPrimes {
		select {
		case result := <-primeCh:
			if primeFilter != nil {
				for _, prime := range primes {
					if !primeFilter(prime, result) {
						continue outer
					}
				}
			}
			primes = append(primes, result)
		case <-gctx.Done():
			break outer
		}
	}
	cancel()
	werr := g.Wait()

	if len(primes) == numPrimes {
		Logger.Debugf("found %d primes of %d bits in %v", numPrimes, bitLen, time.Since(start))
		return primes, nil
	}
	// the parent context ending is a timeout; a worker error (e.g. a failing reader) is returned as is
	if ctx.Err() != nil {
		return nil, errors.Wrapf(ErrPrimeGenTimeout, "after %v", time.Since(start))
	}
	return nil, werr
}

func runGenPrimeRoutine(ctx context.Context, primeCh chan<- *big.Int, rand io.Reader, bitLen, rounds int) error {
	for {
		p, err := getRandomProbablePrime(ctx, rand, bitLen, rounds)
		if err != nil {
			return err
		}
		select {
		case primeCh <- p:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
