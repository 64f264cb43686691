// Package primes supplies the small-prime tables and primality testing the
// rest of this module treats as an external collaborator, cited only
// through the Prover interface (IsPrime/NextPrime). The signer and
// verifier only ever hold a Prover value, never this package's concrete
// type, so swapping in a different primality oracle (e.g. one backed by a
// remote attestation service) never touches the core's
// correctness-critical arithmetic.
package primes

import "math/big"

// SievePrimes rapidly excludes some fraction of composite candidates before
// the expensive Miller-Rabin pass. Truncated at the point where
// SievePrimesProduct exceeds a uint64.
var SievePrimes = []uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// SievePrimesProduct is the product of SievePrimes.
var SievePrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// SmallPrimes is the fixed table of small primes the signer iterates over
// while searching for a t with a square root modulo both of a legacy
// modulus's prime factors, sieved up to 1000 - comfortably wide enough that
// the search essentially never exhausts it for random RSA primes.
var SmallPrimes = sieveUpTo(1000)

func sieveUpTo(n int) []uint32 {
	composite := make([]bool, n+1)
	var out []uint32
	for i := 2; i <= n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, uint32(i))
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return out
}

// Prover is the primality oracle the signer and verifier depend on.
type Prover interface {
	// IsPrime reports whether x is (probably) prime. key is available to
	// implementations that want to derive any tie-breaking randomness
	// deterministically from the Fiat-Shamir transcript key, but the
	// standard implementation below ignores it: primality of a concrete
	// x is not a matter of opinion.
	IsPrime(x *big.Int, key []byte) bool

	// NextPrime returns the smallest prime in [x, x+maxGap], and false if
	// none exists in that range.
	NextPrime(x *big.Int, key []byte, maxGap uint) (*big.Int, bool)
}

// StdPrimality is the default Prover, backed by math/big's ProbablyPrime
// behind a cheap sieve pre-filter that avoids running the expensive test on
// candidates that are obviously composite.
type StdPrimality struct{}

var _ Prover = StdPrimality{}

func (StdPrimality) IsPrime(x *big.Int, _ []byte) bool {
	if x.Sign() <= 0 {
		return false
	}
	if x.Cmp(big.NewInt(2)) == 0 {
		return true
	}
	if x.Bit(0) == 0 {
		return false
	}
	if x.Cmp(SievePrimesProduct) > 0 {
		mod := new(big.Int).Mod(x, SievePrimesProduct).Uint64()
		for _, p := range SievePrimes {
			if mod%uint64(p) == 0 {
				return false
			}
		}
	}
	return x.ProbablyPrime(20)
}

func (s StdPrimality) NextPrime(x *big.Int, key []byte, maxGap uint) (*big.Int, bool) {
	cand := new(big.Int).Set(x)
	if cand.Sign() < 0 {
		cand.SetInt64(0)
	}
	one := big.NewInt(1)
	for i := uint(0); i <= maxGap; i++ {
		if s.IsPrime(cand, key) {
			return new(big.Int).Set(cand), true
		}
		cand.Add(cand, one)
	}
	return nil, false
}
