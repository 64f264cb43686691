package transcript

import (
	"crypto/sha256"
	"math/big"

	"github.com/multiformats/go-multihash"
)

// Fingerprint returns a self-describing multihash-encoded digest of a
// group's public parameters (N, g, h), suitable for embedding in log lines
// and error messages without dumping a 2048-bit modulus into the log
// stream. Two Groups with the same (N, g, h) always fingerprint identically.
func Fingerprint(n, g, h *big.Int) (string, error) {
	sum := sha256.New()
	sum.Write(n.Bytes())
	sum.Write(g.Bytes())
	sum.Write(h.Bytes())
	digest := sum.Sum(nil)

	mh, err := multihash.Encode(digest, multihash.SHA2_256)
	if err != nil {
		return "", err
	}
	return multihash.Multihash(mh).B58String(), nil
}
