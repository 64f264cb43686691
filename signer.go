package goo

import (
	"math/big"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/gbig"
	"github.com/hdks-crypto/goosig/group"
	"github.com/hdks-crypto/goosig/params"
	"github.com/hdks-crypto/goosig/primes"
	"github.com/hdks-crypto/goosig/transcript"
	"github.com/hdks-crypto/goosig/wire"
)

// Signer holds the state needed to produce Goo signatures: the public GUO
// parameters, sized for a maximum legacy modulus width, and a primality
// oracle for the ell-search.
type Signer struct {
	grp       *group.Group
	primality primes.Prover
}

// NewSigner builds a Signer whose comb tables are sized to cover proofs
// about legacy RSA moduli up to maxLegacyBits wide.
func NewSigner(guoN *big.Int, g, h int64, maxLegacyBits int) (*Signer, error) {
	grp, err := group.New(guoN, g, h, group.Config{LegacyBits: maxLegacyBits})
	if err != nil {
		return nil, err
	}
	if fp, err := transcript.Fingerprint(guoN, big.NewInt(g), big.NewInt(h)); err == nil {
		Logger.WithField("fingerprint", fp).Debug("goo: signer constructed")
	}
	return &Signer{grp: grp, primality: primes.StdPrimality{}}, nil
}

// Challenge computes C1 = reduce(g^n * h^s), where s is the deterministic
// expansion of the 32-byte seed sPrime and n is the legacy RSA modulus a
// claimant will later prove knowledge of the factorization of. This is the
// commitment a claimant publishes before producing any signature.
func (s *Signer) Challenge(sPrime [32]byte, n *big.Int) (*big.Int, error) {
	sVal, err := transcript.ExpandSeed(sPrime, params.ExponentSize)
	if err != nil {
		return nil, err
	}
	c1, err := s.grp.PowGH(n, sVal)
	if err != nil {
		return nil, err
	}
	return s.grp.Reduce(c1), nil
}

// Validate reports whether sPrime together with the factorization (p, q)
// reproduces the commitment c1 published via a prior Challenge call.
func (s *Signer) Validate(sPrime [32]byte, c1 *big.Int, p, q *big.Int) bool {
	n := new(big.Int).Mul(p, q)
	got, err := s.Challenge(sPrime, n)
	if err != nil {
		return false
	}
	return got.Cmp(c1) == 0
}

// findRootOfSmallPrime runs the signer's t-search: the smallest prime in
// primes.SmallPrimes that is a quadratic residue modulo both of a legacy
// modulus's prime factors p and q, together with a square root w of it
// modulo n = p*q recovered via CRT. Only the factorer of n can produce this
// pair efficiently, which is the crux of the proof's soundness.
func findRootOfSmallPrime(p, q *big.Int) (t, w *big.Int, err error) {
	for _, tc := range primes.SmallPrimes {
		tb := new(big.Int).SetUint64(uint64(tc))
		jp, err := gbig.Jacobi(tb, p)
		if err != nil || jp != 1 {
			continue
		}
		jq, err := gbig.Jacobi(tb, q)
		if err != nil || jq != 1 {
			continue
		}
		root, err := gbig.ModSqrtCRT(tb, p, q)
		if err != nil {
			continue
		}
		return tb, root, nil
	}
	return nil, nil, errs.ErrNoQR
}

// maxEllRetries bounds both the inner retry loop (re-rolling r_s1 and A
// until bit_length(ell) == ChalBits) and the outer retry loop (re-rolling
// all first-move randomness after the inner loop is exhausted), per the
// scheme's documented policy that either strategy is acceptable as long as
// termination is guaranteed.
const maxEllRetries = 64

// Sign produces a Goo signature proving knowledge of p and q such that
// p*q matches the legacy modulus implicitly committed to by a prior
// Challenge call with the same sPrime, bound to msg via the Fiat-Shamir
// transcript. p and q must be prime; Sign does not itself attempt to verify
// primality, since a caller that already holds the factorization is
// trusted to have supplied it correctly.
func (s *Signer) Sign(msg []byte, sPrime [32]byte, p, q *big.Int) (*wire.Signature, error) {
	grp := s.grp
	n := new(big.Int).Mul(p, q)

	sVal, err := transcript.ExpandSeed(sPrime, params.ExponentSize)
	if err != nil {
		return nil, err
	}
	c1Raw, err := grp.PowGH(n, sVal)
	if err != nil {
		return nil, err
	}
	c1 := grp.Reduce(c1Raw)

	t, w, err := findRootOfSmallPrime(p, q)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	wSq := new(big.Int).Mul(w, w)
	aNum := new(big.Int).Sub(wSq, t)
	a, rem := gbig.FloorDivMod(aNum, n)
	if rem.Sign() != 0 {
		// w is a CRT-combined square root of t modulo n = p*q, so w^2 - t
		// is divisible by n exactly; a non-zero remainder means the witness
		// search above produced a root that doesn't actually satisfy that
		// relation, which should never happen.
		return nil, errs.Wrap(errs.ErrDomain)
	}

	expLimit := new(big.Int).Lsh(big.NewInt(1), uint(params.ExponentSize))
	draw := func() (*big.Int, error) {
		return transcript.RandomBigInt(transcript.Reader, expLimit)
	}

	s1, err := draw()
	if err != nil {
		return nil, err
	}
	s2, err := draw()
	if err != nil {
		return nil, err
	}

	c2Raw, err := grp.PowGH(w, s1)
	if err != nil {
		return nil, err
	}
	c2 := grp.Reduce(c2Raw)
	c3Raw, err := grp.PowGH(a, s2)
	if err != nil {
		return nil, err
	}
	c3 := grp.Reduce(c3Raw)

	c1Inv, c2Inv, err := grp.Inv2(c1, c2)
	if err != nil {
		return nil, err
	}

	for outer := 0; ; outer++ {
		if outer >= maxEllRetries {
			return nil, errs.Wrap(errs.ErrOverflow)
		}

		rw, err := draw()
		if err != nil {
			return nil, err
		}
		rw2, err := draw()
		if err != nil {
			return nil, err
		}
		ra, err := draw()
		if err != nil {
			return nil, err
		}
		ran, err := draw()
		if err != nil {
			return nil, err
		}
		rs1w, err := draw()
		if err != nil {
			return nil, err
		}
		rsa, err := draw()
		if err != nil {
			return nil, err
		}
		rs2, err := draw()
		if err != nil {
			return nil, err
		}

		// E = r_w2 - r_an must be non-negative; swapping the two masks
		// whenever it isn't preserves their distributions (both are drawn
		// uniformly from the same range) while guaranteeing the invariant.
		if rw2.Cmp(ran) < 0 {
			rw2, ran = ran, rw2
		}
		e := new(big.Int).Sub(rw2, ran)

		bRaw, err := grp.PowGH(ra, rs2)
		if err != nil {
			return nil, err
		}
		bCommit := grp.Reduce(bRaw)

		cTerm, err := grp.Pow(c2Inv, rw)
		if err != nil {
			return nil, err
		}
		cGh, err := grp.PowGH(rw2, rs1w)
		if err != nil {
			return nil, err
		}
		cCommit := grp.Reduce(grp.Mul(cTerm, cGh))

		dTerm, err := grp.Pow(c1Inv, ra)
		if err != nil {
			return nil, err
		}
		dGh, err := grp.PowGH(ran, rsa)
		if err != nil {
			return nil, err
		}
		dCommit := grp.Reduce(grp.Mul(dTerm, dGh))

		for inner := 0; inner < maxEllRetries; inner++ {
			rs1, err := draw()
			if err != nil {
				return nil, err
			}
			aRaw, err := grp.PowGH(rw, rs1)
			if err != nil {
				return nil, err
			}
			aCommit := grp.Reduce(aRaw)

			chal, ell, _, err := transcript.FSChal(
				grp, c1, c2, c3, t, aCommit, bCommit, cCommit, dCommit, e, msg, false, s.primality)
			if err != nil {
				return nil, err
			}
			if ell.BitLen() != params.ChalBits {
				continue
			}

			sig, err := s.finishSignature(
				grp, c1Inv, c2Inv, n, t, w, wSq, a, sVal, s1, s2,
				rw, rw2, ra, ran, rs1w, rsa, rs2, rs1,
				chal, ell, c2, c3)
			if err != nil {
				return nil, err
			}
			return sig, nil
		}
	}
}

// finishSignature computes the eight integer responses, compresses each
// into a quotient and a remainder by dividing by ell, re-exponentiates the
// quotients into the Aq/Bq/Cq/Dq commitments, and assembles the resulting
// Signature. It is a continuation of Sign's inner retry loop, separated out
// because Go has no loop-local function literals capturing this many
// variables without becoming harder to read than a named helper.
func (s *Signer) finishSignature(
	grp *group.Group,
	c1Inv, c2Inv *big.Int,
	n, t, w, wSq, a, sVal, s1, s2 *big.Int,
	rw, rw2, ra, ran, rs1w, rsa, rs2, rs1 *big.Int,
	chal, ell *big.Int,
	c2, c3 *big.Int,
) (*wire.Signature, error) {
	an := new(big.Int).Mul(a, n)
	s1w := new(big.Int).Mul(s1, w)
	sa := new(big.Int).Mul(sVal, a)

	zw := new(big.Int).Add(new(big.Int).Mul(chal, w), rw)
	zw2 := new(big.Int).Add(new(big.Int).Mul(chal, wSq), rw2)
	zs1 := new(big.Int).Add(new(big.Int).Mul(chal, s1), rs1)
	za := new(big.Int).Add(new(big.Int).Mul(chal, a), ra)
	zan := new(big.Int).Add(new(big.Int).Mul(chal, an), ran)
	zs1w := new(big.Int).Add(new(big.Int).Mul(chal, s1w), rs1w)
	zsa := new(big.Int).Add(new(big.Int).Mul(chal, sa), rsa)
	zs2 := new(big.Int).Add(new(big.Int).Mul(chal, s2), rs2)

	qw, remW := gbig.FloorDivMod(zw, ell)
	qs1, remS1 := gbig.FloorDivMod(zs1, ell)
	qa, remA := gbig.FloorDivMod(za, ell)
	qs2, remS2 := gbig.FloorDivMod(zs2, ell)
	qw2, remW2 := gbig.FloorDivMod(zw2, ell)
	qs1w, remS1w := gbig.FloorDivMod(zs1w, ell)
	qan, remAn := gbig.FloorDivMod(zan, ell)
	qsa, remSa := gbig.FloorDivMod(zsa, ell)

	aqRaw, err := grp.PowGH(qw, qs1)
	if err != nil {
		return nil, err
	}
	aq := grp.Reduce(aqRaw)

	bqRaw, err := grp.PowGH(qa, qs2)
	if err != nil {
		return nil, err
	}
	bq := grp.Reduce(bqRaw)

	cqTerm, err := grp.Pow(c2Inv, qw)
	if err != nil {
		return nil, err
	}
	cqGh, err := grp.PowGH(qw2, qs1w)
	if err != nil {
		return nil, err
	}
	cq := grp.Reduce(grp.Mul(cqTerm, cqGh))

	dqTerm, err := grp.Pow(c1Inv, qa)
	if err != nil {
		return nil, err
	}
	dqGh, err := grp.PowGH(qan, qsa)
	if err != nil {
		return nil, err
	}
	dq := grp.Reduce(grp.Mul(dqTerm, dqGh))

	eqNum := new(big.Int).Sub(zw2, zan)
	eq, _ := gbig.FloorDivMod(eqNum, ell)
	if eq.Sign() < 0 || eq.BitLen() > params.ExponentSize {
		return nil, errs.Wrap(errs.ErrOverflow)
	}

	return &wire.Signature{
		C2: c2, C3: c3, T: t, Chal: chal, Ell: ell,
		Aq: aq, Bq: bq, Cq: cq, Dq: dq, Eq: eq,
		Zw: remW, Zw2: remW2, Zs1: remS1, Za: remA,
		Zan: remAn, Zs1w: remS1w, Zsa: remSa, Zs2: remS2,
	}, nil
}
