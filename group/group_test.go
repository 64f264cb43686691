package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGroup builds a small Group suitable for fast test exponentiation
// without needing the full-size combs a real signer would use.
func testGroup(t *testing.T, signerExpBits int) *Group {
	// A 257-bit modulus (2^256 + 1), product of two probable primes, large enough that
	// Mod-based arithmetic exercises real multi-word big.Int paths.
	n := new(big.Int)
	n.SetString("115792089237316195423570985008687907853269984665640564039457584007913129639937", 10)
	grp, err := New(n, 2, 3, Config{LegacyBits: signerExpBits})
	require.NoError(t, err)
	return grp
}

func TestReduceIsCanonical(t *testing.T) {
	grp := testGroup(t, 0)
	b := new(big.Int).Sub(grp.N, big.NewInt(5))
	r := grp.Reduce(b)
	assert.True(t, grp.IsReduced(r))
	assert.Equal(t, 0, r.Cmp(big.NewInt(5)))
}

func TestMulSqrConsistentWithBigInt(t *testing.T) {
	grp := testGroup(t, 0)
	a := big.NewInt(123456789)
	b := big.NewInt(987654321)

	got := grp.Mul(a, b)
	want := new(big.Int).Mod(new(big.Int).Mul(a, b), grp.N)
	assert.Equal(t, 0, got.Cmp(want))

	gotSq := grp.Sqr(a)
	wantSq := new(big.Int).Mod(new(big.Int).Mul(a, a), grp.N)
	assert.Equal(t, 0, gotSq.Cmp(wantSq))
}

func TestInv2AndInv7RoundTrip(t *testing.T) {
	grp := testGroup(t, 0)
	vals := []*big.Int{
		big.NewInt(11), big.NewInt(13), big.NewInt(17), big.NewInt(19),
		big.NewInt(23), big.NewInt(29), big.NewInt(31),
	}

	a1, a2, err := grp.Inv2(vals[0], vals[1])
	require.NoError(t, err)

	r1, r2, r3, r4, r5, r6, r7, err := grp.Inv7(
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6])
	require.NoError(t, err)
	inverses := []*big.Int{r1, r2, r3, r4, r5, r6, r7}
	for i, v := range vals {
		prod := grp.Mul(v, inverses[i])
		assert.Equal(t, 0, prod.Cmp(big.NewInt(1)), "val %d did not invert", i)
	}

	prod12 := grp.Mul(a1, vals[0])
	assert.Equal(t, 0, prod12.Cmp(big.NewInt(1)))
	prod22 := grp.Mul(a2, vals[1])
	assert.Equal(t, 0, prod22.Cmp(big.NewInt(1)))
}

func TestPowMatchesBigIntExp(t *testing.T) {
	grp := testGroup(t, 0)
	b := big.NewInt(1234567)
	e := big.NewInt(987654321)

	got, err := grp.Pow(b, e)
	require.NoError(t, err)
	want := new(big.Int).Exp(b, e, grp.N)
	assert.Equal(t, 0, got.Cmp(want))
}

func TestPow2MatchesBigIntExp(t *testing.T) {
	grp := testGroup(t, 0)
	b1, e1 := big.NewInt(12345), big.NewInt(555555)
	b2, e2 := big.NewInt(67890), big.NewInt(777)

	got, err := grp.Pow2(b1, e1, b2, e2)
	require.NoError(t, err)

	want := grp.Mul(new(big.Int).Exp(b1, e1, grp.N), new(big.Int).Exp(b2, e2, grp.N))
	assert.Equal(t, 0, got.Cmp(want))
}

func TestPowGHMatchesDirectExponentiation(t *testing.T) {
	grp := testGroup(t, 300)
	e1 := big.NewInt(123456789)
	e2 := big.NewInt(987654321)

	got, err := grp.PowGH(e1, e2)
	require.NoError(t, err)

	want := grp.Mul(new(big.Int).Exp(grp.G, e1, grp.N), new(big.Int).Exp(grp.H, e2, grp.N))
	assert.Equal(t, 0, got.Cmp(want))
}

func TestPowGHRejectsOversizedExponent(t *testing.T) {
	grp := testGroup(t, 0) // only the verifier-only ChalBits-sized comb
	huge := new(big.Int).Lsh(big.NewInt(1), 4096)
	_, err := grp.PowGH(huge, big.NewInt(1))
	assert.Error(t, err)
}
