package transcript

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdks-crypto/goosig/group"
	"github.com/hdks-crypto/goosig/params"
	"github.com/hdks-crypto/goosig/primes"
)

func testGroup(t *testing.T) *group.Group {
	n := new(big.Int)
	n.SetString("115792089237316195423570985008687907853269984665640564039457584007913129639937", 10)
	grp, err := group.New(n, 2, 3, group.Config{})
	require.NoError(t, err)
	return grp
}

func fsChalArgs(grp *group.Group) (c1, c2, c3, tt, a, b, c, d, e *big.Int, msg []byte) {
	c1 = grp.Reduce(big.NewInt(11))
	c2 = grp.Reduce(big.NewInt(13))
	c3 = grp.Reduce(big.NewInt(17))
	tt = big.NewInt(5)
	a = grp.Reduce(big.NewInt(19))
	b = grp.Reduce(big.NewInt(23))
	c = grp.Reduce(big.NewInt(29))
	d = grp.Reduce(big.NewInt(31))
	e = big.NewInt(123456789)
	msg = []byte("hello world")
	return
}

func TestFSChalIsDeterministic(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, tt, a, b, c, d, e, msg := fsChalArgs(grp)

	chal1, ell1, key1, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, msg, false, primes.StdPrimality{})
	require.NoError(t, err)
	chal2, ell2, key2, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, msg, false, primes.StdPrimality{})
	require.NoError(t, err)

	assert.Equal(t, 0, chal1.Cmp(chal2))
	assert.Equal(t, 0, ell1.Cmp(ell2))
	assert.Equal(t, key1, key2)
}

func TestFSChalDivergesOnDifferentMessage(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, tt, a, b, c, d, e, _ := fsChalArgs(grp)

	chal1, _, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, []byte("one"), false, primes.StdPrimality{})
	require.NoError(t, err)
	chal2, _, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, []byte("two"), false, primes.StdPrimality{})
	require.NoError(t, err)

	assert.NotEqual(t, 0, chal1.Cmp(chal2))
}

func TestFSChalProverEllIsPrime(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, tt, a, b, c, d, e, msg := fsChalArgs(grp)

	_, ell, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, msg, false, primes.StdPrimality{})
	require.NoError(t, err)
	assert.True(t, primes.StdPrimality{}.IsPrime(ell, nil))
}

func TestFSChalVerifyReturnsRawEllWithinGapOfProverEll(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, tt, a, b, c, d, e, msg := fsChalArgs(grp)

	chalP, ellP, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, msg, false, primes.StdPrimality{})
	require.NoError(t, err)
	chalV, ellV, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, msg, true, primes.StdPrimality{})
	require.NoError(t, err)

	assert.Equal(t, 0, chalP.Cmp(chalV))
	gap := new(big.Int).Sub(ellP, ellV)
	assert.True(t, gap.Sign() >= 0)
	assert.True(t, gap.Cmp(big.NewInt(int64(params.ElldiffMax))) <= 0)
}

func TestFSChalRejectsOversizedMessage(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, tt, a, b, c, d, e, _ := fsChalArgs(grp)

	_, _, _, err := FSChal(grp, c1, c2, c3, tt, a, b, c, d, e, make([]byte, 65), false, primes.StdPrimality{})
	assert.Error(t, err)
}

func TestFSChalRejectsNegativeField(t *testing.T) {
	grp := testGroup(t)
	c1, c2, c3, _, a, b, c, d, e, msg := fsChalArgs(grp)
	negT := big.NewInt(-5)

	_, _, _, err := FSChal(grp, c1, c2, c3, negT, a, b, c, d, e, msg, false, primes.StdPrimality{})
	assert.Error(t, err)
}

func TestExpandSeedIsDeterministicAndBounded(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("0123456789abcdef0123456789abcdef"))

	v1, err := ExpandSeed(seed, 256)
	require.NoError(t, err)
	v2, err := ExpandSeed(seed, 256)
	require.NoError(t, err)
	assert.Equal(t, 0, v1.Cmp(v2))

	limit := new(big.Int).Lsh(big.NewInt(1), 256)
	assert.True(t, v1.Cmp(limit) < 0)
}

func TestExpandSeedDivergesOnDifferentSeed(t *testing.T) {
	var seed1, seed2 [32]byte
	copy(seed1[:], []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	copy(seed2[:], []byte("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))

	v1, err := ExpandSeed(seed1, 256)
	require.NoError(t, err)
	v2, err := ExpandSeed(seed2, 256)
	require.NoError(t, err)
	assert.NotEqual(t, 0, v1.Cmp(v2))
}

func TestCPRNGIsDeterministicForSameSeed(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("0123456789abcdef0123456789abcdef"))

	p1, err := NewCPRNG(seed)
	require.NoError(t, err)
	p2, err := NewCPRNG(seed)
	require.NoError(t, err)

	buf1 := make([]byte, 100)
	buf2 := make([]byte, 100)
	_, err = p1.Read(buf1)
	require.NoError(t, err)
	_, err = p2.Read(buf2)
	require.NoError(t, err)
	assert.Equal(t, buf1, buf2)
}

func TestCPRNGAdvancesCounterAcrossReads(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("seedseedseedseedseedseedseedseed"))
	p, err := NewCPRNG(seed)
	require.NoError(t, err)

	first := make([]byte, 32)
	second := make([]byte, 32)
	_, _ = p.Read(first)
	_, _ = p.Read(second)
	assert.NotEqual(t, first, second)
}

func TestFingerprintIsStableAndSensitive(t *testing.T) {
	n, g, h := big.NewInt(97), big.NewInt(2), big.NewInt(3)
	f1, err := Fingerprint(n, g, h)
	require.NoError(t, err)
	f2, err := Fingerprint(n, g, h)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	f3, err := Fingerprint(big.NewInt(89), g, h)
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3)
}
