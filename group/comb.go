package group

import (
	"math/big"
	"sort"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/params"
)

// CombSpec is the fixed 6-tuple describing a comb table's shape, chosen by
// generateCombSpec to minimize the operation count subject to a storage cap.
type CombSpec struct {
	PPA    int // points-per-add: bases multiplied per add step
	APS    int // adds-per-shift: adds between successive squarings
	Shifts int // number of squaring rounds
	BPW    int // bits-per-window = Shifts * APS
	Bits   int // BPW * PPA: the largest exponent bit-length this comb supports
	Items  int // (2^PPA - 1) * APS: precomputed group elements per base
}

// CombTable holds the precomputed powers of g and h for one CombSpec.
type CombTable struct {
	Spec   CombSpec
	GItems []*big.Int
	HItems []*big.Int
}

// generateCombSpec picks the comb shape: for ppa in [2,17],
// bpw = ceil(bits/ppa); enumerate aps in [1, floor(sqrt(bpw))+1] with
// aps | bpw, shifts = bpw/aps; consider both orientations (shifts, aps) and
// (aps, shifts). Cost ops = shifts*(aps+1)-1, storage size = (2^ppa-1)*aps.
// Retain, per ops, the entry with minimum size; then return the first
// ops-ascending candidate whose size fits maxSize and strictly improves on
// every previously retained size.
func generateCombSpec(bits, maxSize int) (CombSpec, error) {
	type candidate struct {
		spec CombSpec
		ops  int
	}
	bestByOps := map[int]candidate{}

	consider := func(ppa, shifts, aps int) {
		bpw := shifts * aps
		if bpw*ppa < bits {
			return
		}
		size := (1<<uint(ppa) - 1) * aps
		ops := shifts*(aps+1) - 1
		spec := CombSpec{PPA: ppa, APS: aps, Shifts: shifts, BPW: bpw, Bits: bpw * ppa, Items: size}
		if cur, ok := bestByOps[ops]; !ok || size < cur.spec.Items {
			bestByOps[ops] = candidate{spec: spec, ops: ops}
		}
	}

	for ppa := 2; ppa <= 17; ppa++ {
		bpw := (bits + ppa - 1) / ppa
		if bpw == 0 {
			bpw = 1
		}
		limit := isqrtInt(bpw) + 1
		for aps := 1; aps <= limit; aps++ {
			if bpw%aps != 0 {
				continue
			}
			shifts := bpw / aps
			consider(ppa, shifts, aps)
			consider(ppa, aps, shifts)
		}
	}

	var cands []candidate
	for _, c := range bestByOps {
		cands = append(cands, c)
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].ops < cands[j].ops })

	minSizeSoFar := -1
	for _, c := range cands {
		if c.spec.Items > params.MaxCombSize || c.spec.Items > maxSize {
			continue
		}
		if minSizeSoFar == -1 || c.spec.Items < minSizeSoFar {
			minSizeSoFar = c.spec.Items
			return c.spec, nil
		}
	}
	return CombSpec{}, errs.ErrOverflow
}

func isqrtInt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// buildCombPair builds the comb tables a Group needs: if smallBits > 0, a
// small comb sized for it and a large comb sized for largeBits; otherwise a
// single comb sized for largeBits.
func buildCombPair(smallBits, largeBits int) ([]*CombTable, error) {
	var sizes []int
	if smallBits > 0 {
		sizes = append(sizes, smallBits)
	}
	sizes = append(sizes, largeBits)

	var out []*CombTable
	for _, bits := range sizes {
		spec, err := generateCombSpec(bits, params.MaxCombSize)
		if err != nil {
			return nil, err
		}
		out = append(out, &CombTable{Spec: spec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Spec.Bits < out[j].Spec.Bits })
	return out, nil
}

// fill precomputes GItems and HItems for ct.Spec against bases g and h.
func (ct *CombTable) fill(grp *Group, g, h *big.Int) error {
	var err error
	ct.GItems, err = precomputeComb(grp, g, ct.Spec)
	if err != nil {
		return err
	}
	ct.HItems, err = precomputeComb(grp, h, ct.Spec)
	if err != nil {
		return err
	}
	return nil
}

// precomputeComb fills items[0..size) for base in three steps: the base
// itself, the bottom row of shifted-window combinations, and aps-1 shifted
// copies of that bottom row.
func precomputeComb(grp *Group, base *big.Int, spec CombSpec) ([]*big.Int, error) {
	items := make([]*big.Int, spec.Items)
	nskip := (1 << uint(spec.PPA)) - 1 // items per "row" (bottom row width)

	// Step 1.
	items[0] = new(big.Int).Mod(base, grp.N)

	// Step 2: bottom row, the (2^ppa - 1) shifted-window combinations.
	two := big.NewInt(2)
	for i := 1; i < spec.PPA; i++ {
		shiftExp := new(big.Int).Exp(two, big.NewInt(int64(spec.BPW)), nil)
		prev := items[(1<<uint(i-1))-1]
		items[(1<<uint(i))-1] = new(big.Int).Exp(prev, shiftExp, grp.N)

		lo := (1 << uint(i)) + 1
		hi := (1 << uint(i+1)) - 1
		for j := lo; j <= hi; j++ {
			items[j-1] = grp.Mul(items[j-(1<<uint(i))-1], items[(1<<uint(i))-1])
		}
	}

	// Step 3: aps-1 shifted copies of the bottom row.
	shiftsExp := new(big.Int).Exp(two, big.NewInt(int64(spec.Shifts)), nil)
	for i := 1; i < spec.APS; i++ {
		for j := 0; j < nskip; j++ {
			prev := items[(i-1)*nskip+j]
			items[i*nskip+j] = new(big.Int).Exp(prev, shiftsExp, grp.N)
		}
	}

	return items, nil
}

// toCombExp encodes e into wins[shifts][aps] via a bit-selection
// formula: bit b of the selector at position (j, aps-1-i) is bit
// (bits-1) - ((i+k*aps)*shifts + j) of e, for k = 0..ppa-1, MSB-first.
// Column aps-1-i is the one PowGH pairs with precomputed row aps-1-i.
func toCombExp(e *big.Int, spec CombSpec) ([][]int, error) {
	if e.BitLen() > spec.Bits {
		return nil, errs.ErrOverflow
	}
	wins := make([][]int, spec.Shifts)
	for j := 0; j < spec.Shifts; j++ {
		wins[j] = make([]int, spec.APS)
		for i := 0; i < spec.APS; i++ {
			sel := 0
			for k := 0; k < spec.PPA; k++ {
				bitpos := spec.Bits - 1 - ((spec.APS-1-i+k*spec.APS)*spec.Shifts + j)
				bit := 0
				if bitpos >= 0 {
					bit = int(e.Bit(bitpos))
				}
				sel = sel<<1 | bit
			}
			wins[j][i] = sel
		}
	}
	return wins, nil
}

// PowGH computes g^e1 * h^e2 mod N using the smallest comb whose Bits is
// large enough for both exponents.
func (grp *Group) PowGH(e1, e2 *big.Int) (*big.Int, error) {
	need := e1.BitLen()
	if e2.BitLen() > need {
		need = e2.BitLen()
	}

	var ct *CombTable
	for _, c := range grp.combs {
		if c.Spec.Bits >= need {
			ct = c
			break
		}
	}
	if ct == nil {
		return nil, errs.ErrOverflow
	}

	gwins, err := toCombExp(e1, ct.Spec)
	if err != nil {
		return nil, err
	}
	hwins, err := toCombExp(e2, ct.Spec)
	if err != nil {
		return nil, err
	}

	nskip := (1 << uint(ct.Spec.PPA)) - 1
	ret := big.NewInt(1)
	for j := 0; j < ct.Spec.Shifts; j++ {
		if ret.Cmp(bigOne) != 0 {
			ret = grp.Sqr(ret)
		}
		for i := 0; i < ct.Spec.APS; i++ {
			if sel := gwins[j][i]; sel != 0 {
				ret = grp.Mul(ret, ct.GItems[i*nskip+sel-1])
			}
			if sel := hwins[j][i]; sel != 0 {
				ret = grp.Mul(ret, ct.HItems[i*nskip+sel-1])
			}
		}
	}
	return ret, nil
}
