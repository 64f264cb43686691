package goo

import (
	"math/big"
	"sort"

	"github.com/hdks-crypto/goosig/group"
	"github.com/hdks-crypto/goosig/params"
	"github.com/hdks-crypto/goosig/primes"
	"github.com/hdks-crypto/goosig/transcript"
	"github.com/hdks-crypto/goosig/wire"
)

// Verifier checks Goo signatures against a GUO modulus. Unlike a Signer, a
// Verifier's own exponents during verification are the z' responses, each
// already reduced modulo a ChalBits-wide prime, so it never needs more than
// the tiny comb New builds for a zero-value Config.
type Verifier struct {
	grp         *group.Group
	primality   primes.Prover
	fingerprint string
}

// NewVerifier builds a Verifier for signatures produced against guoN, g, h.
func NewVerifier(guoN *big.Int, g, h int64) (*Verifier, error) {
	grp, err := group.New(guoN, g, h, group.Config{})
	if err != nil {
		return nil, err
	}
	fp, err := transcript.Fingerprint(guoN, big.NewInt(g), big.NewInt(h))
	if err == nil {
		Logger.WithField("fingerprint", fp).Debug("goo: verifier constructed")
	}
	return &Verifier{grp: grp, primality: primes.StdPrimality{}, fingerprint: fp}, nil
}

// Verify reports whether sig is a valid Goo signature, bound to msg, over
// the commitment c1 a matching Signer.Challenge call once published. Any
// malformed or out-of-range field, or any predicate mismatch, is treated as
// rejection - Verify never panics and never returns an error, only a
// boolean. Errors are reserved for exceptional internal conditions; "the
// signature doesn't check out" is an ordinary, expected outcome.
func (v *Verifier) Verify(msg []byte, sig *wire.Signature, c1 *big.Int) bool {
	ok, err := v.verify(msg, sig, c1)
	if err != nil {
		Logger.WithError(err).
			WithField("fingerprint", v.fingerprint).
			Debug("goo: signature verification error")
		return false
	}
	if !ok {
		Logger.WithField("fingerprint", v.fingerprint).
			Debug("goo: signature rejected")
	}
	return ok
}

func (v *Verifier) verify(msg []byte, sig *wire.Signature, c1 *big.Int) (bool, error) {
	grp := v.grp
	if sig == nil || c1 == nil {
		return false, nil
	}

	for _, elem := range []*big.Int{c1, sig.C2, sig.C3, sig.Aq, sig.Bq, sig.Cq, sig.Dq} {
		if !grp.IsReduced(elem) {
			return false, nil
		}
	}
	if sig.Chal.Sign() < 0 || sig.Chal.BitLen() > params.ChalBits {
		return false, nil
	}
	if sig.Ell.Sign() <= 0 || sig.Ell.BitLen() != params.ChalBits {
		return false, nil
	}
	for _, z := range []*big.Int{
		sig.Zw, sig.Zw2, sig.Zs1, sig.Za, sig.Zan, sig.Zs1w, sig.Zsa, sig.Zs2,
	} {
		if z.Sign() < 0 || z.Cmp(sig.Ell) >= 0 {
			return false, nil
		}
	}
	if sig.Eq.Sign() < 0 || sig.Eq.BitLen() > params.ExponentSize {
		return false, nil
	}
	if sig.T.Sign() <= 0 || sig.T.BitLen() > 32 {
		return false, nil
	}
	if !isSmallPrime(sig.T) {
		return false, nil
	}
	if !v.primality.IsPrime(sig.Ell, nil) {
		return false, nil
	}

	c1Inv, c2Inv, c3Inv, aqInv, bqInv, cqInv, dqInv, err :=
		grp.Inv7(c1, sig.C2, sig.C3, sig.Aq, sig.Bq, sig.Cq, sig.Dq)
	if err != nil {
		return false, err
	}

	a, err := grp.Pow2Inv(sig.Aq, aqInv, sig.Ell, c2Inv, sig.C2, sig.Chal)
	if err != nil {
		return false, err
	}
	aGh, err := grp.PowGH(sig.Zw, sig.Zs1)
	if err != nil {
		return false, err
	}
	a = grp.Reduce(grp.Mul(a, aGh))

	b, err := grp.Pow2Inv(sig.Bq, bqInv, sig.Ell, c3Inv, sig.C3, sig.Chal)
	if err != nil {
		return false, err
	}
	bGh, err := grp.PowGH(sig.Za, sig.Zs2)
	if err != nil {
		return false, err
	}
	b = grp.Reduce(grp.Mul(b, bGh))

	c, err := grp.Pow2Inv(sig.Cq, cqInv, sig.Ell, c2Inv, sig.C2, sig.Zw)
	if err != nil {
		return false, err
	}
	cGh, err := grp.PowGH(sig.Zw2, sig.Zs1w)
	if err != nil {
		return false, err
	}
	c = grp.Reduce(grp.Mul(c, cGh))

	d, err := grp.Pow2Inv(sig.Dq, dqInv, sig.Ell, c1Inv, c1, sig.Za)
	if err != nil {
		return false, err
	}
	dGh, err := grp.PowGH(sig.Zan, sig.Zsa)
	if err != nil {
		return false, err
	}
	d = grp.Reduce(grp.Mul(d, dGh))

	// z_w2 and z_an are each already reduced modulo ell, so their
	// difference can go negative even though the underlying unreduced
	// integers the signer actually summed never would; add ell back once
	// to recover the floor-division remainder that was in play at sign
	// time before comparing against Eq.
	delta := new(big.Int).Sub(sig.Zw2, sig.Zan)
	if delta.Sign() < 0 {
		delta.Add(delta, sig.Ell)
	}
	e := new(big.Int).Mul(sig.Eq, sig.Ell)
	e.Add(e, delta)
	e.Sub(e, new(big.Int).Mul(sig.T, sig.Chal))
	if e.Sign() < 0 {
		return false, nil
	}

	chal, ellR, _, err := transcript.FSChal(
		grp, c1, sig.C2, sig.C3, sig.T, a, b, c, d, e, msg, true, v.primality)
	if err != nil {
		return false, err
	}

	if chal.Cmp(sig.Chal) != 0 {
		return false, nil
	}

	gap := new(big.Int).Sub(sig.Ell, ellR)
	if gap.Sign() < 0 || gap.Cmp(big.NewInt(int64(params.ElldiffMax))) > 0 {
		return false, nil
	}

	return true, nil
}

// isSmallPrime reports whether t is a member of primes.SmallPrimes, the
// fixed table findRootOfSmallPrime searches - a prerequisite the signer
// always satisfies by construction, but one a tampered or forged signature
// could otherwise dodge by substituting an arbitrary 32-bit value for t.
func isSmallPrime(t *big.Int) bool {
	if !t.IsUint64() {
		return false
	}
	v := uint32(t.Uint64())
	table := primes.SmallPrimes
	idx := sort.Search(len(table), func(i int) bool { return table[i] >= v })
	return idx < len(table) && table[idx] == v
}
