package transcript

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"sync/atomic"
)

// CPRNG is a cryptographically secure pseudo-random generator implemented as
// AES in counter mode keyed by a 32-byte seed, with an atomic counter so a
// single CPRNG may be shared across goroutines. The seed is an explicit
// argument rather than fresh entropy read at construction time: this
// scheme needs the seed to be the Fiat-Shamir transcript's derived key, so
// the prover and verifier expand the same challenge stream.
type CPRNG struct {
	block   cipher.Block
	counter uint64
}

// NewCPRNG builds a CPRNG keyed by seed. AES-256 is used unconditionally
// since seed is always a full 32 bytes.
func NewCPRNG(seed [32]byte) (*CPRNG, error) {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &CPRNG{block: block}, nil
}

// Read fills buf with the AES-CTR keystream, satisfying io.Reader so a CPRNG
// can be passed directly to crypto/rand-style helpers such as
// math/big.Int.Rand or rand.Int.
func (c *CPRNG) Read(buf []byte) (n int, err error) {
	var pt, ct [16]byte
	n = len(buf)
	if n == 0 {
		return
	}

	nBlocks := uint64(((len(buf) - 1) / 16) + 1)
	iv := atomic.AddUint64(&c.counter, nBlocks) - nBlocks
	for {
		binary.LittleEndian.PutUint64(pt[:], iv)
		iv++

		if len(buf) >= 16 {
			c.block.Encrypt(buf, pt[:])
			buf = buf[16:]
			continue
		}
		if len(buf) == 0 {
			break
		}
		c.block.Encrypt(ct[:], pt[:])
		copy(buf, ct[:len(buf)])
		break
	}
	return
}
