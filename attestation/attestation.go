// Package attestation lets a claim-processing relay countersign a verified
// Goo claim with its own ECDSA key, so a downstream consumer (e.g. the
// chain the claim is ultimately submitted to) can trust "this relay checked
// the proof" without re-running verification itself. The message-signature
// envelope uses a plain length-prefixed concatenation rather than a
// self-describing format, matching the fixed-field convention the rest of
// this module's wire encoding uses.
package attestation

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/binary"
	"encoding/pem"
	"math/big"

	"github.com/go-errors/errors"
)

// GenerateKey creates a new relay attestation key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

func MarshalPublicKey(pk *ecdsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pk)
}

func MarshalPemPublicKey(pk *ecdsa.PublicKey) ([]byte, error) {
	bts, err := MarshalPublicKey(pk)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to serialize public key", 0)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: bts}), nil
}

func UnmarshalPublicKey(bts []byte) (*ecdsa.PublicKey, error) {
	generic, err := x509.ParsePKIXPublicKey(bts)
	if err != nil {
		return nil, err
	}
	pk, ok := generic.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("not an ecdsa public key")
	}
	return pk, nil
}

func UnmarshalPemPublicKey(bts []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(bts)
	if block == nil {
		return nil, errors.New("not a PEM block")
	}
	return UnmarshalPublicKey(block.Bytes)
}

// Sign produces an ASN.1-encoded ECDSA signature over SHA-256(data).
func Sign(sk *ecdsa.PrivateKey, data []byte) ([]byte, error) {
	hash := sha256.Sum256(data)
	r, s, err := ecdsa.Sign(rand.Reader, sk, hash[:])
	if err != nil {
		return nil, err
	}
	return asn1.Marshal([]*big.Int{r, s})
}

// Verify checks an ASN.1-encoded ECDSA signature over SHA-256(data).
func Verify(pk *ecdsa.PublicKey, data, signature []byte) error {
	var ints []*big.Int
	if _, err := asn1.Unmarshal(signature, &ints); err != nil {
		return err
	}
	if len(ints) != 2 {
		return errors.New("malformed ecdsa signature")
	}
	hash := sha256.Sum256(data)
	if !ecdsa.Verify(pk, hash[:], ints[0], ints[1]) {
		return errors.New("ecdsa signature was invalid")
	}
	return nil
}

// Attest wraps payload (typically a marshaled Goo signature plus its
// public inputs) together with the relay's ECDSA signature over it, into a
// single length-prefixed envelope.
func Attest(sk *ecdsa.PrivateKey, payload []byte) ([]byte, error) {
	sig, err := Sign(sk, payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 8+len(payload)+len(sig))
	out = appendLenPrefixed(out, payload)
	out = appendLenPrefixed(out, sig)
	return out, nil
}

// Open verifies an Attest envelope against pk and returns the payload.
func Open(pk *ecdsa.PublicKey, envelope []byte) ([]byte, error) {
	payload, rest, err := readLenPrefixed(envelope)
	if err != nil {
		return nil, err
	}
	sig, _, err := readLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	if err := Verify(pk, payload, sig); err != nil {
		return nil, err
	}
	return payload, nil
}

func appendLenPrefixed(out, b []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	out = append(out, lenBuf[:]...)
	return append(out, b...)
}

func readLenPrefixed(b []byte) (field, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, errors.New("truncated length-prefixed field")
	}
	n := binary.BigEndian.Uint32(b[:4])
	if uint64(len(b)-4) < uint64(n) {
		return nil, nil, errors.New("truncated length-prefixed field")
	}
	return b[4 : 4+n], b[4+n:], nil
}
