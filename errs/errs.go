// Package errs defines the sentinel error kinds raised by the core
// arithmetic and proof engine: one package-level sentinel per failure mode
// rather than ad-hoc strings, built on top of github.com/go-errors/errors
// so that every failure carries a stack trace back to its origin.
package errs

import "github.com/go-errors/errors"

var (
	// ErrDomain is returned when an input violates an arithmetic
	// precondition: a negative value where non-negative is required, an
	// even or non-positive modulus passed to Jacobi, a zero modulus
	// passed to ModPow, and similar.
	ErrDomain = errors.New("goo: domain error")

	// ErrNotInvertible is returned by Inverse/Inv when gcd(a, n) > 1.
	ErrNotInvertible = errors.New("goo: not invertible")

	// ErrNotASquare is returned by ModSqrt when x is a quadratic
	// non-residue modulo p.
	ErrNotASquare = errors.New("goo: not a square")

	// ErrOverflow is returned when an exponent exceeds the largest
	// available comb, when Eq exceeds its bit budget, when a message is
	// wider than its fixed transcript field, or when the signer exhausts
	// its ell retries.
	ErrOverflow = errors.New("goo: overflow")

	// ErrNoQR is returned by the signer when no entry of the small-prime
	// table has a square root modulo N.
	ErrNoQR = errors.New("goo: no quadratic residue found")

	// ErrInvalidSignature is returned by wire.Unmarshal when an encoded
	// signature has the wrong length. The verifier reports failed
	// predicates and out-of-range fields as a plain false rather than as
	// this error, and the public Verify surface turns an Unmarshal error
	// into false as well.
	ErrInvalidSignature = errors.New("goo: invalid signature")

	// ErrNoPrimeInRange is returned when the ell-search (next_prime) finds
	// no prime within the allowed gap of its starting point.
	ErrNoPrimeInRange = errors.New("goo: no prime in range")
)

// Wrap attaches a stack trace to err if it doesn't already carry one.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 1)
}
