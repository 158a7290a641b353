package ecmap

import (
	"fmt"
	"math/big"

	"github.com/hashfree/go-ecmap/internal/crypto/field"
)

// FindNonSquare scans the canonical representatives of F_q in ascending order
// and returns the first quadratic non-residue. The scan is bounded by the
// field size and terminates quickly in practice, but it remains a bruteforce
// search: for cryptographically large fields the constant should be computed
// once offline and supplied through Config.Delta.
func FindNonSquare(modulus *big.Int) (*big.Int, error) {
	f, err := field.New(modulus)
	if err != nil {
		return nil, err
	}
	return f.FirstNonSquare()
}

// ValidateNonSquare checks that delta is a quadratic non-residue of F_q,
// returning ErrInvalidNonSquare otherwise.
func ValidateNonSquare(modulus, delta *big.Int) error {
	f, err := field.New(modulus)
	if err != nil {
		return err
	}
	if f.IsSquare(delta) {
		return fmt.Errorf("%w: got %s", ErrInvalidNonSquare, f.Norm(delta))
	}
	return nil
}
