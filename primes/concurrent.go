package primes

import (
	"crypto/rand"
	"math/big"
	"runtime"
)

// GenerateConcurrent searches for a prime of exactly bitsize bits on every
// available CPU core at once, returning the first one any worker finds and
// telling the rest to stop. Used by the legacy-key generator to produce
// each of the two factors without serializing on a single core's
// Miller-Rabin throughput.
func GenerateConcurrent(bitsize int, stop chan struct{}) (<-chan *big.Int, <-chan error) {
	count := runtime.GOMAXPROCS(0)
	ints := make(chan *big.Int, count)
	errCh := make(chan error, count)

	stopped := make(chan struct{})
	go func() {
		select {
		case <-stop:
			close(stopped)
		case <-stopped:
		}
	}()

	for i := 0; i < count; i++ {
		go func() {
			for {
				x, err := Generate(bitsize, stopped)
				if err != nil {
					errCh <- err
					close(stopped)
					return
				}
				if x == nil {
					return
				}
				select {
				case <-stopped:
					return
				default:
					ints <- x
				}
			}
		}()
	}

	return ints, errCh
}

// Generate searches for a single prime of exactly bitsize bits, checking the
// stop channel every 1000 draws so a concurrent search elsewhere can cancel
// it. Passing a nil stop channel disables cancellation.
func Generate(bitsize int, stop chan struct{}) (*big.Int, error) {
	max := new(big.Int).Lsh(big.NewInt(1), uint(bitsize))
	min := new(big.Int).Lsh(big.NewInt(1), uint(bitsize-1))

	i := 0
	for {
		i++
		if stop != nil && i%1000 == 0 {
			select {
			case <-stop:
				return nil, nil
			default:
			}
		}

		cand, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		cand.Add(cand, min)
		cand.SetBit(cand, 0, 1)

		if cand.BitLen() != bitsize {
			continue
		}
		if (StdPrimality{}).IsPrime(cand, nil) {
			return cand, nil
		}
	}
}
