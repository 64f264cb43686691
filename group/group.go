// Package group implements the group-arithmetic engine of the Goo scheme: a
// group of unknown order, the quotient of (Z/NZ)* by {±1}. It provides the
// canonical-representative reduction, batched inversion, windowed NAF
// exponentiation and the fixed-base comb used for simultaneous
// exponentiation on the two public generators g and h.
//
// A fast fixed-base exponentiation table library such as
// github.com/bwesterb/go-exptable only supports groups of known order,
// which this scheme cannot assume (the whole point of proving knowledge of
// the factorization of N is that the order of (Z/NZ)* is unknown), so the
// comb and wNAF engines below are hand-rolled instead of delegated to one.
package group

import (
	"math/big"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/params"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// Group holds the immutable public parameters of a Goo instance: the RSA
// modulus N, the two fixed generators g and h, and the precomputed tables
// derived from them. A Group is built once (via New) and never mutated
// afterwards. Every exponentiation builds its own wNAF tables and comb
// windows per call, so a Group holds no shared scratch state and is safe
// for concurrent read-only use by multiple goroutines.
type Group struct {
	N  *big.Int
	G  *big.Int
	H  *big.Int
	Nh *big.Int // N >> 1

	Bits     int // ceil(log2 N)
	Size     int // ceil(bits/8)
	RandBits int // bits - 1

	combs []*CombTable // ascending by .Bits
}

// Config controls how large a Group's comb tables must be.
type Config struct {
	// LegacyBits, if non-zero, is the bit length of the legacy RSA moduli
	// this Group's signer will produce proofs about. It sizes a small comb
	// (covering the rand_bits-wide commitment exponents n, w, a, s, s1, s2)
	// and a large comb (covering the quotient-response exponents, per
	// legacyWorstCaseBits below). Leave zero for a verifier-only Group,
	// which only ever needs a single tiny comb: its g,h exponents are the
	// z' fields of a signature, each already reduced modulo a prime
	// ell < 2^ChalBits.
	LegacyBits int
}

// New constructs a Group from an RSA modulus and two small generators,
// building whichever comb tables Config calls for. The generators are
// caller-supplied public parameters, not derived or validated as
// generators of any particular subgroup - the proof protocol only relies
// on g and h being fixed elements of (Z/NZ)*/{±1} known to both parties.
func New(n *big.Int, g, h int64, cfg Config) (*Group, error) {
	if n.Sign() <= 0 {
		return nil, errs.ErrDomain
	}
	grp := &Group{
		N:  new(big.Int).Set(n),
		G:  big.NewInt(g),
		H:  big.NewInt(h),
		Nh: new(big.Int).Rsh(n, 1),
	}
	grp.Bits = n.BitLen()
	grp.Size = (grp.Bits + 7) / 8
	grp.RandBits = grp.Bits - 1

	var err error
	if cfg.LegacyBits > 0 {
		largeBits := legacyWorstCaseBits(cfg.LegacyBits, grp.RandBits)
		grp.combs, err = buildCombPair(grp.RandBits, largeBits)
	} else {
		grp.combs, err = buildCombPair(0, params.ChalBits)
	}
	if err != nil {
		return nil, err
	}

	for _, ct := range grp.combs {
		if err := ct.fill(grp, grp.G, grp.H); err != nil {
			return nil, err
		}
	}

	return grp, nil
}

// legacyWorstCaseBits bounds the largest exponent the signer will ever feed
// to PowGH when proving knowledge of a legacyBits-wide legacy modulus's
// factorization: the squared-witness quotient terms (z_w2/ell, z_an/ell)
// run up to roughly 2*legacyBits, and the cross-term quotients (z_s1w/ell,
// z_sa/ell) run up to roughly legacyBits+randBits, each before the
// CHAL_BITS-plus-one bit of headroom the challenge and sign bit add on top.
func legacyWorstCaseBits(legacyBits, randBits int) int {
	need := 2 * legacyBits
	if alt := legacyBits + randBits; alt > need {
		need = alt
	}
	return need + params.ChalBits + 1
}

// Reduce returns the canonical representative min(b, N-b).
func (g *Group) Reduce(b *big.Int) *big.Int {
	b = new(big.Int).Mod(b, g.N)
	alt := new(big.Int).Sub(g.N, b)
	if alt.Cmp(b) < 0 {
		return alt
	}
	return b
}

// IsReduced reports whether b is already the canonical representative of
// its class, i.e. b <= N/2.
func (g *Group) IsReduced(b *big.Int) bool {
	return b.Sign() >= 0 && b.Cmp(g.Nh) <= 0
}

// Mul returns a*b mod N.
func (g *Group) Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), g.N)
}

// Sqr returns a*a mod N.
func (g *Group) Sqr(a *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, a), g.N)
}

// Inv returns the inverse of b modulo N, failing with errs.ErrNotInvertible
// if gcd(b, N) != 1.
func (g *Group) Inv(b *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(b, g.N)
	if inv == nil {
		return nil, errs.ErrNotInvertible
	}
	return inv, nil
}

// Inv2 inverts a*b once and recovers a^-1 = b*(ab)^-1, b^-1 = a*(ab)^-1.
func (g *Group) Inv2(a, b *big.Int) (aInv, bInv *big.Int, err error) {
	ab := g.Mul(a, b)
	abInv, err := g.Inv(ab)
	if err != nil {
		return nil, nil, err
	}
	aInv = g.Mul(b, abInv)
	bInv = g.Mul(a, abInv)
	return aInv, bInv, nil
}

// Inv7 inverts seven elements using a single costly modular inverse on the
// product tree {b12, b34, b56, b1234, b123456, b1234567}, peeling the
// individual inverses back out from the top.
func (g *Group) Inv7(b1, b2, b3, b4, b5, b6, b7 *big.Int) (r1, r2, r3, r4, r5, r6, r7 *big.Int, err error) {
	b12 := g.Mul(b1, b2)
	b34 := g.Mul(b3, b4)
	b56 := g.Mul(b5, b6)
	b1234 := g.Mul(b12, b34)
	b123456 := g.Mul(b1234, b56)
	b1234567 := g.Mul(b123456, b7)

	top, err := g.Inv(b1234567)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}

	b123456Inv := g.Mul(top, b7)
	b7Inv := g.Mul(top, b123456)

	b1234Inv := g.Mul(b123456Inv, b56)
	b56Inv := g.Mul(b123456Inv, b1234)

	b12Inv := g.Mul(b1234Inv, b34)
	b34Inv := g.Mul(b1234Inv, b12)

	b1Inv := g.Mul(b12Inv, b2)
	b2Inv := g.Mul(b12Inv, b1)
	b3Inv := g.Mul(b34Inv, b4)
	b4Inv := g.Mul(b34Inv, b3)
	b5Inv := g.Mul(b56Inv, b6)
	b6Inv := g.Mul(b56Inv, b5)

	return b1Inv, b2Inv, b3Inv, b4Inv, b5Inv, b6Inv, b7Inv, nil
}
