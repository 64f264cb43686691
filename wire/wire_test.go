package wire

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSignature() *Signature {
	b := func(x int64) *big.Int { return big.NewInt(x) }
	return &Signature{
		C2:   b(111111),
		C3:   b(222222),
		T:    b(97),
		Chal: new(big.Int).Lsh(big.NewInt(1), 127),
		Ell:  new(big.Int).Lsh(big.NewInt(1), 127),
		Aq:   b(333333),
		Bq:   b(444444),
		Cq:   b(555555),
		Dq:   b(666666),
		Eq:   b(777777),
		Zw:   b(1111),
		Zw2:  b(2222),
		Zs1:  b(3333),
		Za:   b(4444),
		Zan:  b(5555),
		Zs1w: b(6666),
		Zsa:  b(7777),
		Zs2:  b(8888),
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	const guoBits = 2048
	sig := sampleSignature()

	buf := sig.Marshal(guoBits)
	got, err := Unmarshal(buf, guoBits)
	require.NoError(t, err)

	for _, pair := range [][2]*big.Int{
		{sig.C2, got.C2}, {sig.C3, got.C3}, {sig.T, got.T},
		{sig.Chal, got.Chal}, {sig.Ell, got.Ell},
		{sig.Aq, got.Aq}, {sig.Bq, got.Bq}, {sig.Cq, got.Cq}, {sig.Dq, got.Dq},
		{sig.Eq, got.Eq},
		{sig.Zw, got.Zw}, {sig.Zw2, got.Zw2}, {sig.Zs1, got.Zs1}, {sig.Za, got.Za},
		{sig.Zan, got.Zan}, {sig.Zs1w, got.Zs1w}, {sig.Zsa, got.Zsa}, {sig.Zs2, got.Zs2},
	} {
		assert.Equal(t, 0, pair[0].Cmp(pair[1]))
	}
}

func TestUnmarshalRejectsWrongLength(t *testing.T) {
	const guoBits = 2048
	sig := sampleSignature()
	buf := sig.Marshal(guoBits)

	_, err := Unmarshal(buf[:len(buf)-1], guoBits)
	assert.Error(t, err)

	_, err = Unmarshal(append(buf, 0), guoBits)
	assert.Error(t, err)
}

func TestSizesScaleWithModulusWidth(t *testing.T) {
	small := Sizes(1024)
	large := Sizes(2048)
	assert.True(t, large.Guo > small.Guo)
	assert.Equal(t, small.Chal, large.Chal) // Chal width is fixed by ChalBits
	assert.Equal(t, small.T, large.T)       // T width is fixed at 4 bytes
	assert.Equal(t, small.Eq, large.Eq)     // Eq width is fixed by ExponentSize
}

func TestEncodeFixedPadsToWidth(t *testing.T) {
	out := encodeFixed(big.NewInt(5), 4)
	assert.Len(t, out, 4)
	assert.Equal(t, []byte{0, 0, 0, 5}, out)
}

func TestEncodeElementDecodeElementRoundTrip(t *testing.T) {
	c1 := big.NewInt(424242)
	buf := EncodeElement(c1, 2048)
	got := DecodeElement(buf)
	assert.Equal(t, 0, c1.Cmp(got))
}

func TestEncodeSignedRoundTripsNegativeAndPositive(t *testing.T) {
	for _, x := range []*big.Int{big.NewInt(0), big.NewInt(5), big.NewInt(-5), big.NewInt(-1)} {
		buf := encodeSigned(x, 8)
		got := decodeSigned(buf)
		assert.Equal(t, 0, x.Cmp(got), "round-trip failed for %s", x)
	}
}
