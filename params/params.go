// Package params holds the public, process-wide constants of the Goo
// signature scheme. These are not tuning knobs: every prover and verifier
// must agree on them bit for bit, so they live here as plain Go consts
// rather than in a config file, kept as package-level tables instead of
// being read from the environment.
package params

const (
	// ChalBits is the width in bits of the Fiat-Shamir challenge "chal"
	// and of the seed "ell_r" drawn from the transcript PRNG.
	ChalBits = 128

	// ExponentSize is the width in bits of the random scalars (s, s1, s2,
	// and the first-move randomizers) drawn by the signer.
	ExponentSize = 2048

	// ElldiffMax bounds the gap between ell_r and the prime ell chosen
	// above it.
	ElldiffMax = 512

	// WindowSize is the window width used by the wNAF exponentiation
	// engine.
	WindowSize = 6

	// MinRSABits and MaxRSABits bound the bit length of the RSA modulus
	// n = p*q that a signer may prove knowledge of the factorization of.
	MinRSABits = 1024
	MaxRSABits = 4096

	// MaxCombSize caps the number of group elements a fixed-base comb
	// table may precompute and store.
	MaxCombSize = 512
)

// HashPrefix is the 32-byte domain-separation string absorbed first into
// every Fiat-Shamir transcript. It is a fixed public parameter, not a
// secret: changing it changes every challenge derived from then on, which
// is exactly how domain separation is supposed to work.
var HashPrefix = [32]byte{
	'G', 'o', 'o', 's', 'i', 'g', ' ', 'v', '1', ' ',
	'z', 'e', 'r', 'o', '-', 'k', 'n', 'o', 'w', 'l',
	'e', 'd', 'g', 'e', ' ', 'f', 'a', 'c', 't', 'o', 'r', 0,
}

// ExponentSizeBytes is ceil(ExponentSize/8), the width at which the
// first-move integer E is absorbed into the Fiat-Shamir transcript. The wire
// width of Eq (wire.Sizes) is ceil((ExponentSize+1)/8).
const ExponentSizeBytes = (ExponentSize + 7) / 8
