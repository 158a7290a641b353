// Package weier implements the group of points on a short Weierstrass curve
// y² = x³ + Ax + B over a prime field, with affine coordinates and the
// standard chord-and-tangent group law.
package weier

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashfree/go-ecmap/internal/crypto/field"
)

var (
	// ErrPointNotOnCurve is returned when supplied coordinates do not
	// satisfy the curve equation.
	ErrPointNotOnCurve = errors.New("weier: point is not on the curve")

	// ErrPointAtInfinity is returned when affine coordinates are requested
	// from the identity element.
	ErrPointAtInfinity = errors.New("weier: point at infinity has no affine coordinates")

	// ErrSingularCurve is returned when 4A³ + 27B² = 0.
	ErrSingularCurve = errors.New("weier: curve is singular")

	// ErrInvalidCofactor is returned for a non-positive cofactor.
	ErrInvalidCofactor = errors.New("weier: cofactor must be positive")
)

// Params describes a short Weierstrass curve over F_q. Params are immutable
// once constructed and safe for concurrent use.
//
// Zero coefficients are accepted here as long as the curve is non-singular;
// the mapping layer imposes its own stricter requirements.
type Params struct {
	f *field.Field
	a *big.Int
	b *big.Int
	h *big.Int
}

// NewParams constructs curve parameters over F_q. A nil cofactor defaults
// to one.
func NewParams(q, a, b, h *big.Int) (*Params, error) {
	f, err := field.New(q)
	if err != nil {
		return nil, err
	}
	a = f.Norm(a)
	b = f.Norm(b)

	// 4a³ + 27b² must not vanish.
	disc := f.Add(
		f.Mul(big.NewInt(4), f.Mul(a, f.Mul(a, a))),
		f.Mul(big.NewInt(27), f.Mul(b, b)),
	)
	if disc.Sign() == 0 {
		return nil, fmt.Errorf("%w: a=%s b=%s mod %s", ErrSingularCurve, a, b, q)
	}

	if h == nil {
		h = big.NewInt(1)
	}
	if h.Sign() <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidCofactor, h)
	}

	return &Params{f: f, a: a, b: b, h: new(big.Int).Set(h)}, nil
}

// Modulus returns the field modulus q.
func (c *Params) Modulus() *big.Int { return c.f.Modulus() }

// A returns the curve coefficient A.
func (c *Params) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns the curve coefficient B.
func (c *Params) B() *big.Int { return new(big.Int).Set(c.b) }

// Cofactor returns the cofactor h.
func (c *Params) Cofactor() *big.Int { return new(big.Int).Set(c.h) }

// RHS evaluates the curve polynomial x³ + Ax + B.
func (c *Params) RHS(x *big.Int) *big.Int {
	f := c.f
	x = f.Norm(x)
	return f.Add(f.Mul(x, f.Square(x)), f.Add(f.Mul(c.a, x), c.b))
}

// IsOnCurve reports whether (x, y) satisfies the curve equation.
func (c *Params) IsOnCurve(x, y *big.Int) bool {
	return c.f.AreEqual(c.f.Square(y), c.RHS(x))
}

// Point is a point on a specific curve: either an affine pair or the
// identity. The zero value is not valid; points are created through Params.
type Point struct {
	x, y *big.Int
	inf  bool
}

// Identity returns the neutral element.
func (c *Params) Identity() Point {
	return Point{inf: true}
}

// NewPoint validates (x, y) against the curve equation and returns the
// corresponding affine point. Fails with ErrPointNotOnCurve otherwise.
func (c *Params) NewPoint(x, y *big.Int) (Point, error) {
	x, y = c.f.Norm(x), c.f.Norm(y)
	if !c.IsOnCurve(x, y) {
		return Point{}, fmt.Errorf("%w: (%s, %s)", ErrPointNotOnCurve, x, y)
	}
	return Point{x: x, y: y}, nil
}

// LiftX returns the affine point at abscissa x whose ordinate is the
// canonical square root of the curve polynomial. Fails when x³ + Ax + B is a
// non-residue.
func (c *Params) LiftX(x *big.Int) (Point, error) {
	y, err := c.f.Sqrt(c.RHS(x))
	if err != nil {
		return Point{}, fmt.Errorf("%w: no point at x=%s", ErrPointNotOnCurve, c.f.Norm(x))
	}
	return Point{x: c.f.Norm(x), y: y}, nil
}

// IsIdentity reports whether p is the neutral element.
func (p Point) IsIdentity() bool { return p.inf }

// XY returns the affine coordinates. Fails with ErrPointAtInfinity on the
// identity.
func (p Point) XY() (x, y *big.Int, err error) {
	if p.inf {
		return nil, nil, ErrPointAtInfinity
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y), nil
}

// Equal reports coordinate-wise equality; the identity equals only itself.
func (p Point) Equal(q Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if p.inf {
		return "(infinity)"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// Neg returns -p: the identity for the identity, otherwise (x, -y).
func (c *Params) Neg(p Point) Point {
	if p.inf {
		return p
	}
	return Point{x: new(big.Int).Set(p.x), y: c.f.Neg(p.y)}
}

// Add returns p + q under the affine group law, covering the doubling case
// and opposite points summing to the identity.
func (c *Params) Add(p, q Point) Point {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	f := c.f

	var lam *big.Int
	if p.x.Cmp(q.x) == 0 {
		if f.AreEqual(p.y, f.Neg(q.y)) {
			// Covers y1 = y2 = 0 as well: a 2-torsion point doubles
			// to the identity.
			return c.Identity()
		}
		// Tangent slope (3x² + A) / 2y. The divisor cannot vanish here.
		num := f.Add(f.Mul(big.NewInt(3), f.Square(p.x)), c.a)
		lam, _ = f.Div(num, f.Mul(big.NewInt(2), p.y))
	} else {
		lam, _ = f.Div(f.Sub(q.y, p.y), f.Sub(q.x, p.x))
	}

	x3 := f.Sub(f.Sub(f.Square(lam), p.x), q.x)
	y3 := f.Sub(f.Mul(lam, f.Sub(p.x, x3)), p.y)
	return Point{x: x3, y: y3}
}

// Sub returns p - q.
func (c *Params) Sub(p, q Point) Point {
	return c.Add(p, c.Neg(q))
}
