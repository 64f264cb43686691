package attestation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	data := []byte("a verified claim payload")
	sig, err := Sign(sk, data)
	require.NoError(t, err)

	assert.NoError(t, Verify(&sk.PublicKey, data, sig))
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	sig, err := Sign(sk, []byte("original"))
	require.NoError(t, err)

	assert.Error(t, Verify(&sk.PublicKey, []byte("tampered"), sig))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	sk1, err := GenerateKey()
	require.NoError(t, err)
	sk2, err := GenerateKey()
	require.NoError(t, err)

	data := []byte("payload")
	sig, err := Sign(sk1, data)
	require.NoError(t, err)

	assert.Error(t, Verify(&sk2.PublicKey, data, sig))
}

func TestAttestOpenRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	payload := []byte("relay-countersigned claim")
	envelope, err := Attest(sk, payload)
	require.NoError(t, err)

	got, err := Open(&sk.PublicKey, envelope)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, got))
}

func TestOpenRejectsWrongKey(t *testing.T) {
	sk1, err := GenerateKey()
	require.NoError(t, err)
	sk2, err := GenerateKey()
	require.NoError(t, err)

	envelope, err := Attest(sk1, []byte("payload"))
	require.NoError(t, err)

	_, err = Open(&sk2.PublicKey, envelope)
	assert.Error(t, err)
}

func TestPublicKeyMarshalRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	der, err := MarshalPublicKey(&sk.PublicKey)
	require.NoError(t, err)
	got, err := UnmarshalPublicKey(der)
	require.NoError(t, err)
	assert.Equal(t, 0, sk.PublicKey.X.Cmp(got.X))
	assert.Equal(t, 0, sk.PublicKey.Y.Cmp(got.Y))

	pemBytes, err := MarshalPemPublicKey(&sk.PublicKey)
	require.NoError(t, err)
	got2, err := UnmarshalPemPublicKey(pemBytes)
	require.NoError(t, err)
	assert.Equal(t, 0, sk.PublicKey.X.Cmp(got2.X))
}
