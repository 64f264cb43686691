package group

import (
	"math/big"

	"github.com/hdks-crypto/goosig/params"
)

// wnafTable holds the precomputed odd multiples b^1, b^3, b^5, ..., b^(2^w-1)
// and optionally their inverses, used by Pow/Pow2 to look up a digit's base
// power without recomputing it.
type wnafTable struct {
	w      uint
	odds   []*big.Int // odds[i] = b^(2i+1)
	oddInv []*big.Int // oddInv[i] = (b^(2i+1))^-1
	eager  bool       // true if oddInv was fully precomputed from a known inverse
}

// buildWnafTable precomputes the odd powers of b up to 2^w-1 by repeated
// multiplication by b^2. If bInv is non-nil - the caller already knows the
// inverse of b, typically because b is itself the inverse of some other
// value already on hand - the table eagerly precomputes the matching odd
// powers of bInv too, so at() never needs a fresh grp.Inv call for a
// negative wNAF digit. If bInv is nil, inverses are computed lazily, on the
// first negative digit that needs one, and cached.
func (grp *Group) buildWnafTable(b, bInv *big.Int, w uint) *wnafTable {
	n := 1 << (w - 1)
	odds := make([]*big.Int, n)
	odds[0] = new(big.Int).Mod(b, grp.N)
	bsq := grp.Sqr(b)
	for i := 1; i < n; i++ {
		odds[i] = grp.Mul(odds[i-1], bsq)
	}

	oddInv := make([]*big.Int, n)
	eager := bInv != nil
	if eager {
		oddInv[0] = new(big.Int).Mod(bInv, grp.N)
		bInvSq := grp.Sqr(bInv)
		for i := 1; i < n; i++ {
			oddInv[i] = grp.Mul(oddInv[i-1], bInvSq)
		}
	}
	return &wnafTable{w: w, odds: odds, oddInv: oddInv, eager: eager}
}

// at returns b^d for an odd digit d (d may be negative), computing and
// caching the inverse of the corresponding positive power the first time a
// negative digit of that magnitude is seen, unless it was already
// precomputed eagerly.
func (t *wnafTable) at(grp *Group, d int) (*big.Int, error) {
	neg := d < 0
	ad := d
	if neg {
		ad = -d
	}
	idx := (ad - 1) / 2
	if !neg {
		return t.odds[idx], nil
	}
	if t.oddInv[idx] == nil {
		inv, err := grp.Inv(t.odds[idx])
		if err != nil {
			return nil, err
		}
		t.oddInv[idx] = inv
	}
	return t.oddInv[idx], nil
}

// wnaf computes the width-w non-adjacent form of e, returning the digits
// MSB-first (index 0 is the highest-order digit). Each digit is 0 or an odd
// integer in [-(2^(w-1)-1), 2^(w-1)-1]. The digits are produced by the
// standard right-to-left wNAF expansion, scanned low-to-high and then
// reversed.
func wnaf(e *big.Int, w uint) []int {
	if e.Sign() == 0 {
		return []int{0}
	}
	c := new(big.Int).Set(e)
	mod := int64(1) << w
	half := mod >> 1
	var digitsLSB []int

	for c.Sign() != 0 {
		if c.Bit(0) == 1 {
			z := new(big.Int).And(c, big.NewInt(mod-1)).Int64()
			if z >= half {
				z -= mod
			}
			digitsLSB = append(digitsLSB, int(z))
			c.Sub(c, big.NewInt(z))
		} else {
			digitsLSB = append(digitsLSB, 0)
		}
		c.Rsh(c, 1)
	}

	out := make([]int, len(digitsLSB))
	for i, d := range digitsLSB {
		out[len(digitsLSB)-1-i] = d
	}
	return out
}

// Pow computes b^e mod N via windowed-NAF square-and-multiply, for e >= 0.
func (grp *Group) Pow(b, e *big.Int) (*big.Int, error) {
	return grp.powWindowed(b, nil, e)
}

// PowInv is Pow, but using a caller-supplied inverse of b in place of a
// lazily computed one.
func (grp *Group) PowInv(b, bInv, e *big.Int) (*big.Int, error) {
	return grp.powWindowed(b, bInv, e)
}

func (grp *Group) powWindowed(b, bInv, e *big.Int) (*big.Int, error) {
	const w = uint(params.WindowSize)
	table := grp.buildWnafTable(b, bInv, w)
	digits := wnaf(e, w)

	ret := big.NewInt(1)
	for _, d := range digits {
		ret = grp.Sqr(ret)
		if d != 0 {
			v, err := table.at(grp, d)
			if err != nil {
				return nil, err
			}
			ret = grp.Mul(ret, v)
		}
	}
	return ret, nil
}

// Pow2 computes b1^e1 * b2^e2 mod N, sharing one squaring chain between the
// two independent wNAF digit streams (Shamir's trick), padding the shorter
// stream with leading zero digits so both are stepped in lockstep.
func (grp *Group) Pow2(b1, e1, b2, e2 *big.Int) (*big.Int, error) {
	return grp.pow2Windowed(b1, nil, e1, b2, nil, e2)
}

// Pow2Inv is Pow2, but using caller-supplied inverses of b1 and b2 in place
// of lazily computed ones.
func (grp *Group) Pow2Inv(b1, b1Inv, e1, b2, b2Inv, e2 *big.Int) (*big.Int, error) {
	return grp.pow2Windowed(b1, b1Inv, e1, b2, b2Inv, e2)
}

func (grp *Group) pow2Windowed(b1, b1Inv, e1, b2, b2Inv, e2 *big.Int) (*big.Int, error) {
	const w = uint(params.WindowSize)
	t1 := grp.buildWnafTable(b1, b1Inv, w)
	t2 := grp.buildWnafTable(b2, b2Inv, w)
	d1 := wnaf(e1, w)
	d2 := wnaf(e2, w)

	for len(d1) < len(d2) {
		d1 = append([]int{0}, d1...)
	}
	for len(d2) < len(d1) {
		d2 = append([]int{0}, d2...)
	}

	ret := big.NewInt(1)
	for i := range d1 {
		ret = grp.Sqr(ret)
		if d1[i] != 0 {
			v, err := t1.at(grp, d1[i])
			if err != nil {
				return nil, err
			}
			ret = grp.Mul(ret, v)
		}
		if d2[i] != 0 {
			v, err := t2.at(grp, d2[i])
			if err != nil {
				return nil, err
			}
			ret = grp.Mul(ret, v)
		}
	}
	return ret, nil
}
