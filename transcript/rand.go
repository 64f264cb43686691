package transcript

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Reader is the entropy source new key material and first-move randomness
// are drawn from. It is simply crypto/rand.Reader: unlike the original
// goosig implementation's goo_poll/goo_random OS-entropy-polling loop, Go's
// crypto/rand.Reader already blocks internally until the OS CSPRNG is
// seeded, so no polling discipline needs to be reimplemented here.
var Reader io.Reader = rand.Reader

// RandomBigInt returns a uniform value in [0, limit) read from r.
func RandomBigInt(r io.Reader, limit *big.Int) (*big.Int, error) {
	return rand.Int(r, limit)
}

// ExpandSeed deterministically expands a 32-byte seed into a uniform
// integer in [0, 2^bits) via the same AES-CTR CPRNG used for Fiat-Shamir
// challenge derivation, implementing expand_sprime: a claimant's published
// commitment and every signature it later produces are both derived from
// this one seed, so anyone holding it can reproduce the same scalar.
func ExpandSeed(seed [32]byte, bits int) (*big.Int, error) {
	prng, err := NewCPRNG(seed)
	if err != nil {
		return nil, err
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return RandomBigInt(prng, limit)
}
