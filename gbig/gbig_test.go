package gbig

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(s string) *big.Int {
	x, _ := new(big.Int).SetString(s, 10)
	return x
}

func TestFloorDivModMatchesPythonSemantics(t *testing.T) {
	cases := []struct{ x, y, q, r int64 }{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		q, r := FloorDivMod(big.NewInt(c.x), big.NewInt(c.y))
		assert.Equal(t, c.q, q.Int64(), "q for %d/%d", c.x, c.y)
		assert.Equal(t, c.r, r.Int64(), "r for %d/%d", c.x, c.y)
	}
}

func TestInverseRoundTrips(t *testing.T) {
	n := big.NewInt(2 * 3 * 5 * 7 * 11 * 13 * 17 + 1)
	a := big.NewInt(12345)
	inv, err := Inverse(a, n)
	require.NoError(t, err)
	got := new(big.Int).Mod(new(big.Int).Mul(a, inv), n)
	assert.Equal(t, int64(1), got.Int64())
}

func TestInverseRejectsNonCoprime(t *testing.T) {
	_, err := Inverse(big.NewInt(4), big.NewInt(8))
	assert.Error(t, err)
}

func TestJacobiKnownValues(t *testing.T) {
	j, err := Jacobi(big.NewInt(1001), big.NewInt(9907))
	require.NoError(t, err)
	assert.Equal(t, -1, j)

	j, err = Jacobi(big.NewInt(19), big.NewInt(45))
	require.NoError(t, err)
	assert.Equal(t, 1, j)
}

func TestJacobiRejectsEvenModulus(t *testing.T) {
	_, err := Jacobi(big.NewInt(3), big.NewInt(4))
	assert.Error(t, err)
}

func TestSqrtFloorsExactAndInexact(t *testing.T) {
	assert.Equal(t, int64(3), Sqrt(big.NewInt(9)).Int64())
	assert.Equal(t, int64(3), Sqrt(big.NewInt(15)).Int64())
	assert.Equal(t, int64(0), Sqrt(big.NewInt(0)).Int64())
}

func TestModSqrtRoundTrips(t *testing.T) {
	p := bi("1000000000000000000000000000057")
	require.True(t, p.ProbablyPrime(20), "fixture must be prime")
	x := big.NewInt(25)
	r, err := ModSqrt(x, p)
	require.NoError(t, err)
	sq := new(big.Int).Mod(new(big.Int).Mul(r, r), p)
	assert.Equal(t, 0, sq.Cmp(new(big.Int).Mod(x, p)))
}

func TestModSqrtRejectsNonResidue(t *testing.T) {
	p := big.NewInt(7) // QRs mod 7: {1,2,4}
	_, err := ModSqrt(big.NewInt(3), p)
	assert.Error(t, err)
}

func TestModSqrtCRTRoundTrips(t *testing.T) {
	p := big.NewInt(10007)
	q := big.NewInt(10009)
	n := new(big.Int).Mul(p, q)
	x := big.NewInt(49)

	r, err := ModSqrtCRT(x, p, q)
	require.NoError(t, err)
	sq := new(big.Int).Mod(new(big.Int).Mul(r, r), n)
	assert.Equal(t, 0, sq.Cmp(new(big.Int).Mod(x, n)))
}

func TestModPowHandlesNegativeExponent(t *testing.T) {
	m := big.NewInt(97)
	x := big.NewInt(5)
	pos, err := ModPow(x, big.NewInt(3), m)
	require.NoError(t, err)
	neg, err := ModPow(x, big.NewInt(-3), m)
	require.NoError(t, err)
	prod := new(big.Int).Mod(new(big.Int).Mul(pos, neg), m)
	assert.Equal(t, int64(1), prod.Int64())
}

func TestCrtRecombines(t *testing.T) {
	x, err := Crt(big.NewInt(2), big.NewInt(3), big.NewInt(3), big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, int64(8), x.Int64())
}
