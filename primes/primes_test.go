package primes

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallPrimesAreActuallyPrime(t *testing.T) {
	require.NotEmpty(t, SmallPrimes)
	for _, p := range SmallPrimes {
		assert.True(t, big.NewInt(int64(p)).ProbablyPrime(20), "%d not prime", p)
	}
}

func TestStdPrimalityIsPrime(t *testing.T) {
	sp := StdPrimality{}
	assert.True(t, sp.IsPrime(big.NewInt(2), nil))
	assert.True(t, sp.IsPrime(big.NewInt(97), nil))
	assert.False(t, sp.IsPrime(big.NewInt(1), nil))
	assert.False(t, sp.IsPrime(big.NewInt(0), nil))
	assert.False(t, sp.IsPrime(big.NewInt(-7), nil))
	assert.False(t, sp.IsPrime(big.NewInt(91), nil)) // 7*13
}

func TestStdPrimalityNextPrime(t *testing.T) {
	sp := StdPrimality{}
	got, ok := sp.NextPrime(big.NewInt(90), nil, 10)
	require.True(t, ok)
	assert.Equal(t, int64(97), got.Int64())

	_, ok = sp.NextPrime(big.NewInt(24), nil, 0)
	assert.False(t, ok)
}

func TestGenerateProducesPrimeOfExactWidth(t *testing.T) {
	const bits = 64
	p, err := Generate(bits, nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, bits, p.BitLen())
	assert.True(t, StdPrimality{}.IsPrime(p, nil))
}

func TestGenerateConcurrentFindsPrimeAndStops(t *testing.T) {
	const bits = 48
	stop := make(chan struct{})
	defer close(stop)

	found, errCh := GenerateConcurrent(bits, stop)
	select {
	case p := <-found:
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, StdPrimality{}.IsPrime(p, nil))
	case err := <-errCh:
		t.Fatalf("unexpected error: %v", err)
	}
}
