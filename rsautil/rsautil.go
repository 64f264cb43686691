// Package rsautil provides the small set of RSA-specific helpers the Goo
// scheme needs but treats as an external collaborator rather than core
// logic: a sanity check on a claimed legacy RSA modulus before it is
// accepted into a claim flow, and an OAEP-sealed "recovery blob" envelope used by
// the claim flow to let a user re-encrypt a short secret to their own legacy
// public key as an out-of-band backup. This is the one place in this module
// built directly on the standard library's crypto/rsa rather than a
// third-party library, since OAEP sealing is already exactly what the
// standard library provides.
package rsautil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/params"
	"github.com/hdks-crypto/goosig/primes"
)

// SanityCheckKey rejects moduli that are obviously unfit to be a legacy RSA
// modulus before any expensive proof machinery runs: out-of-range bit
// length, an even modulus, or one divisible by a small prime (a legitimate
// RSA modulus N = p*q for large secret primes p, q is vanishingly unlikely
// to have a small factor; finding one means N was not honestly generated).
func SanityCheckKey(n *big.Int) error {
	bits := n.BitLen()
	if bits < params.MinRSABits || bits > params.MaxRSABits {
		return errs.ErrDomain
	}
	if n.Bit(0) == 0 {
		return errs.ErrDomain
	}
	for _, p := range primes.SievePrimes {
		if new(big.Int).Mod(n, big.NewInt(int64(p))).Sign() == 0 {
			return errs.ErrDomain
		}
	}
	return nil
}

// SealRecoveryBlob RSA-OAEP encrypts secret under pub, using SHA-256 as the
// OAEP hash. The recovery blob lets a claimant re-encrypt their Goo witness
// material to the same legacy RSA public key they're proving knowledge of,
// so that losing the plaintext secret after a successful claim doesn't
// strand any downstream key material derived from it.
func SealRecoveryBlob(pub *rsa.PublicKey, secret []byte, label []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, secret, label)
}

// OpenRecoveryBlob is the inverse of SealRecoveryBlob.
func OpenRecoveryBlob(priv *rsa.PrivateKey, blob []byte, label []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, blob, label)
}

// SealRecoveryBlobWithRand is SealRecoveryBlob with an explicit entropy
// source, used by tests that need a deterministic rand.Reader.
func SealRecoveryBlobWithRand(r io.Reader, pub *rsa.PublicKey, secret []byte, label []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), r, pub, secret, label)
}
