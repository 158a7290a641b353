// Package field implements arbitrary-precision arithmetic over a prime field,
// together with the quadratic-residue test, the canonical square root and the
// sgn0 parity function used to break sign ambiguity.
package field

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidModulus is returned when the modulus is not an odd prime.
	ErrInvalidModulus = errors.New("field: modulus must be an odd prime")

	// ErrDivisionByZero is returned when inverting or dividing by zero.
	ErrDivisionByZero = errors.New("field: division by zero")

	// ErrNotASquare is returned by Sqrt for quadratic non-residues.
	ErrNotASquare = errors.New("field: element is not a square")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Field represents the prime field F_q. All methods return canonical
// representatives in [0, q). A Field is immutable and safe for concurrent use.
type Field struct {
	q *big.Int
}

// New constructs the field F_q. The modulus must be an odd prime: math/big has
// no extension-field representation, and the canonical square root relies on
// ModSqrt, which requires a prime modulus.
func New(q *big.Int) (*Field, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidModulus, q)
	}
	if q.Bit(0) == 0 || !q.ProbablyPrime(32) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidModulus, q)
	}
	return &Field{q: new(big.Int).Set(q)}, nil
}

// Modulus returns a copy of q.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.q)
}

// Norm reduces x to its canonical representative in [0, q).
func (f *Field) Norm(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.q)
}

// IsZero reports whether x reduces to zero.
func (f *Field) IsZero(x *big.Int) bool {
	return f.Norm(x).Sign() == 0
}

// AreEqual reports whether x and y represent the same field element.
func (f *Field) AreEqual(x, y *big.Int) bool {
	return f.Norm(x).Cmp(f.Norm(y)) == 0
}

// Add returns x + y.
func (f *Field) Add(x, y *big.Int) *big.Int {
	return f.Norm(new(big.Int).Add(x, y))
}

// Sub returns x - y.
func (f *Field) Sub(x, y *big.Int) *big.Int {
	return f.Norm(new(big.Int).Sub(x, y))
}

// Mul returns x * y.
func (f *Field) Mul(x, y *big.Int) *big.Int {
	return f.Norm(new(big.Int).Mul(x, y))
}

// Square returns x * x.
func (f *Field) Square(x *big.Int) *big.Int {
	return f.Mul(x, x)
}

// Neg returns -x.
func (f *Field) Neg(x *big.Int) *big.Int {
	return f.Norm(new(big.Int).Neg(f.Norm(x)))
}

// Inv returns x^-1. Fails with ErrDivisionByZero when x is zero.
func (f *Field) Inv(x *big.Int) (*big.Int, error) {
	x = f.Norm(x)
	if x.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Int).ModInverse(x, f.q), nil
}

// Div returns x / y. Fails with ErrDivisionByZero when y is zero.
func (f *Field) Div(x, y *big.Int) (*big.Int, error) {
	yi, err := f.Inv(y)
	if err != nil {
		return nil, err
	}
	return f.Mul(x, yi), nil
}

// Sgn0 assigns the sign bit of x: the parity of its canonical representative.
// Sgn0(0) = 0 and, for odd q, Sgn0(-x) = 1 - Sgn0(x) whenever x is non-zero.
func (f *Field) Sgn0(x *big.Int) int {
	return int(f.Norm(x).Bit(0))
}

// IsSquare reports whether x is a quadratic residue. Zero counts as a square.
func (f *Field) IsSquare(x *big.Int) bool {
	x = f.Norm(x)
	if x.Sign() == 0 {
		return true
	}
	return big.Jacobi(x, f.q) == 1
}

// Sqrt returns the canonical square root of x: the unique root r with
// Sgn0(r) = 0. Fails with ErrNotASquare for non-residues.
func (f *Field) Sqrt(x *big.Int) (*big.Int, error) {
	x = f.Norm(x)
	r := new(big.Int).ModSqrt(x, f.q)
	if r == nil {
		return nil, fmt.Errorf("%w: %s mod %s", ErrNotASquare, x, f.q)
	}
	if f.Sgn0(r) == 1 {
		r.Sub(f.q, r)
	}
	return r, nil
}

// Exp returns x^e for a non-negative exponent.
func (f *Field) Exp(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(f.Norm(x), e, f.q)
}

// FirstNonSquare scans canonical representatives in ascending order and
// returns the first quadratic non-residue. The scan is bounded by the field
// size and in practice terminates within a handful of candidates, but it is a
// bruteforce search: for cryptographically large fields a known non-square
// should be supplied by configuration instead.
func (f *Field) FirstNonSquare() (*big.Int, error) {
	for c := new(big.Int).Set(two); c.Cmp(f.q) < 0; c.Add(c, one) {
		if !f.IsSquare(c) {
			return new(big.Int).Set(c), nil
		}
	}
	return nil, fmt.Errorf("field: no non-square below %s", f.q)
}
