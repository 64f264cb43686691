package goo

import (
	"math/big"

	"github.com/hdks-crypto/goosig/primes"
	"github.com/hdks-crypto/goosig/rsautil"
	"github.com/hdks-crypto/goosig/transcript"
	"github.com/hdks-crypto/goosig/wire"
)

// Goo bundles a Signer and a Verifier built over the same public GUO
// parameters, for callers that play both roles (a full claim-processing
// service, as opposed to a pure verifier gateway).
type Goo struct {
	*Signer
	verifier *Verifier
	guoBits  int
}

// New builds a Goo instance over the GUO (guoN, g, h), ready to sign and
// verify proofs about legacy RSA moduli up to maxLegacyBits wide.
func New(guoN *big.Int, g, h int64, maxLegacyBits int) (*Goo, error) {
	signer, err := NewSigner(guoN, g, h, maxLegacyBits)
	if err != nil {
		return nil, err
	}
	verifier, err := NewVerifier(guoN, g, h)
	if err != nil {
		return nil, err
	}
	return &Goo{Signer: signer, verifier: verifier, guoBits: guoN.BitLen()}, nil
}

// GenerateSeed produces a fresh random 32-byte seed s' for use with
// Challenge, Validate and Sign. Every signature a claimant ever produces
// under a given commitment is derived from this one seed, so it must be
// kept as secret as the legacy private key itself.
func GenerateSeed() ([32]byte, error) {
	var seed [32]byte
	if _, err := transcript.Reader.Read(seed[:]); err != nil {
		return seed, err
	}
	return seed, nil
}

// Challenge computes the wire-encoded commitment C1 a claimant publishes
// before it can produce any signature over the legacy modulus n.
func (gg *Goo) Challenge(sPrime [32]byte, n *big.Int) ([]byte, error) {
	c1, err := gg.Signer.Challenge(sPrime, n)
	if err != nil {
		return nil, err
	}
	return wire.EncodeElement(c1, gg.guoBits), nil
}

// Validate reports whether sPrime and the factorization (p, q) reproduce
// the wire-encoded commitment c1Bytes a prior Challenge call produced.
func (gg *Goo) Validate(sPrime [32]byte, c1Bytes []byte, p, q *big.Int) bool {
	c1 := wire.DecodeElement(c1Bytes)
	return gg.Signer.Validate(sPrime, c1, p, q)
}

// Sign produces a wire-encoded Goo signature proving knowledge of the
// factorization (p, q) of the legacy modulus implicitly committed to by
// sPrime, bound to msg.
func (gg *Goo) Sign(msg []byte, sPrime [32]byte, p, q *big.Int) ([]byte, error) {
	sig, err := gg.Signer.Sign(msg, sPrime, p, q)
	if err != nil {
		return nil, err
	}
	return sig.Marshal(gg.guoBits), nil
}

// Verify reports whether sigBytes is a valid Goo signature over msg and the
// wire-encoded commitment c1Bytes a matching Challenge call once published.
// A malformed sigBytes is treated as rejection, not an error.
func (gg *Goo) Verify(msg, sigBytes, c1Bytes []byte) bool {
	sig, err := wire.Unmarshal(sigBytes, gg.guoBits)
	if err != nil {
		return false
	}
	c1 := wire.DecodeElement(c1Bytes)
	return gg.verifier.Verify(msg, sig, c1)
}

// CheckLegacyModulus sanity-checks a claimed legacy RSA modulus before it is
// accepted into a claim flow, rejecting moduli with an implausible bit
// length, an even value, or a small factor.
func CheckLegacyModulus(n *big.Int) error {
	return rsautil.SanityCheckKey(n)
}

// GenerateLegacyKey produces a toy legacy RSA keypair (p, q, n = p*q) for
// testing and demonstration, searching for each factor concurrently across
// every CPU core via primes.GenerateConcurrent. Key generation for the GUO
// modulus itself is out of this package's scope; this only generates the
// kind of legacy key a claimant would already hold.
func GenerateLegacyKey(bits int) (p, q, n *big.Int, err error) {
	half := bits / 2

	find := func() (*big.Int, error) {
		stop := make(chan struct{})
		defer close(stop)
		found, errCh := primes.GenerateConcurrent(half, stop)
		select {
		case x := <-found:
			return x, nil
		case err := <-errCh:
			return nil, err
		}
	}

	p, err = find()
	if err != nil {
		return nil, nil, nil, err
	}
	q, err = find()
	if err != nil {
		return nil, nil, nil, err
	}
	n = new(big.Int).Mul(p, q)
	return p, q, n, nil
}
