// Package transcript implements the Fiat-Shamir transformation that turns
// the Goo sigma-protocol into a non-interactive signature: a running SHA-256
// hash absorbs the group parameters and the prover's commitments and
// first-move messages in a fixed order and fixed widths, and the resulting
// 32-byte key seeds a deterministic AES-CTR stream (CPRNG) from which the
// challenge and the ell seed are both drawn.
package transcript

import (
	"crypto/sha256"
	"math/big"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/group"
	"github.com/hdks-crypto/goosig/params"
	"github.com/hdks-crypto/goosig/primes"
)

// transcript accumulates the byte-level record fs_chal hashes. Absorb order
// and widths matter: the signer and verifier must lay out the same fields
// identically for the derived challenge to match.
type transcript struct {
	h []byte
}

func newTranscript() *transcript {
	t := &transcript{}
	t.h = append(t.h, params.HashPrefix[:]...)
	return t
}

func (t *transcript) writeRaw(b []byte) {
	t.h = append(t.h, b...)
}

// writeFixed absorbs x as a big-endian integer left-padded with zeros to
// exactly n bytes.
func (t *transcript) writeFixed(x *big.Int, n int) {
	buf := make([]byte, n)
	b := x.Bytes()
	if len(b) > n {
		b = b[len(b)-n:]
	}
	copy(buf[n-len(b):], b)
	t.h = append(t.h, buf...)
}

// writeFixedBytes absorbs b left-padded with zeros to exactly n bytes,
// failing if b is already longer than n.
func (t *transcript) writeFixedBytes(b []byte, n int) error {
	if len(b) > n {
		return errs.ErrOverflow
	}
	buf := make([]byte, n)
	copy(buf[n-len(b):], b)
	t.h = append(t.h, buf...)
	return nil
}

func (t *transcript) sum() [32]byte {
	return sha256.Sum256(t.h)
}

// FSChal implements fs_chal: the transcript hash and challenge/ell
// derivation shared by the signer and the verifier. It absorbs, in order,
// the scheme's domain-separation prefix, the GUO modulus N and its two
// generators g, h (4 bytes each), the seven group elements c1, c2, c3, a, b,
// c, d (each left-padded to the GUO's own byte width), the small prime t (4
// bytes), the first-move integer e (ExponentSize bits), and msg (left-padded
// to 64 bytes). The resulting digest is the derivation key; a PRNG seeded by
// it yields a ChalBits-wide chal followed by a ChalBits-wide ell_r.
//
// verify selects which of the two paths in the spec's fs_chal to take: the
// prover path (verify=false) expands ell_r into the nearest prime via
// prover.NextPrime, bounded by params.ElldiffMax; the verifier path
// (verify=true) returns ell_r itself, letting the caller compare it against
// the signature's own ell within that same gap.
func FSChal(
	grp *group.Group,
	c1, c2, c3, t *big.Int,
	a, b, c, d *big.Int,
	e *big.Int,
	msg []byte,
	verify bool,
	prover primes.Prover,
) (chal, ell *big.Int, key [32]byte, err error) {
	for _, x := range []*big.Int{c1, c2, c3, t, a, b, c, d, e} {
		if x == nil || x.Sign() < 0 {
			return nil, nil, key, errs.ErrDomain
		}
	}

	tr := newTranscript()
	tr.writeRaw(grp.N.Bytes())
	tr.writeFixed(grp.G, 4)
	tr.writeFixed(grp.H, 4)
	for _, elem := range []*big.Int{c1, c2, c3, a, b, c, d} {
		tr.writeFixed(elem, grp.Size)
	}
	tr.writeFixed(t, 4)
	tr.writeFixed(e, (params.ExponentSize+7)/8)
	if werr := tr.writeFixedBytes(msg, 64); werr != nil {
		return nil, nil, key, werr
	}

	key = tr.sum()
	prng, err := NewCPRNG(key)
	if err != nil {
		return nil, nil, key, err
	}

	chalLimit := new(big.Int).Lsh(big.NewInt(1), uint(params.ChalBits))
	chal, err = RandomBigInt(prng, chalLimit)
	if err != nil {
		return nil, nil, key, err
	}
	ellR, err := RandomBigInt(prng, chalLimit)
	if err != nil {
		return nil, nil, key, err
	}

	if verify {
		return chal, ellR, key, nil
	}

	ell, ok := prover.NextPrime(ellR, key[:], params.ElldiffMax)
	if !ok {
		return nil, nil, key, errs.ErrNoPrimeInRange
	}
	return chal, ell, key, nil
}
