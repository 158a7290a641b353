// Package ecmap deterministically encodes prime-field elements into points of
// a short Weierstrass curve group. The encodings land either in a high-order
// coset that avoids small subgroups (K4, K6) or, giving up that guarantee,
// nearly uniformly over the whole group (K5). Curves whose coefficients
// cannot both be non-zero are handled by running the pipeline on an isogenous
// curve and pushing results through an injected isogeny (IsogenyMap).
package ecmap

import (
	"fmt"
	"math/big"

	"github.com/hashfree/go-ecmap/internal/crypto/field"
	"github.com/hashfree/go-ecmap/pkg/weier"
)

// Config carries everything needed to build a Map for one curve. All values
// are arbitrary big integers; they are normalized to canonical field elements
// at construction, which is the only place raw integers are accepted.
type Config struct {
	// Modulus is the odd prime field modulus q.
	Modulus *big.Int

	// A and B are the curve coefficients; both must be non-zero.
	A, B *big.Int

	// Cofactor is the curve group cofactor h. Nil defaults to one. It is
	// configuration data carried for callers; no mapping step consumes it.
	Cofactor *big.Int

	// AnchorX is the abscissa of the anchor point P0. AnchorY is optional:
	// when nil the ordinate is derived as the canonical square root of the
	// curve polynomial at AnchorX.
	AnchorX, AnchorY *big.Int

	// Anchor1X/Anchor1Y and Anchor2X/Anchor2Y optionally override the
	// auxiliary anchors P1 and P2. Both default to P0. P1 is the image of
	// the zero input under K6; P2 plays the same role for the second
	// evaluation inside K5.
	Anchor1X, Anchor1Y *big.Int
	Anchor2X, Anchor2Y *big.Int

	// Delta is the fixed non-square constant. When nil it is found by
	// scanning canonical representatives in ascending order, which is only
	// acceptable for small fields; production configurations should always
	// supply it.
	Delta *big.Int
}

// PointEncoder is the operation set shared by Map and IsogenyMap.
type PointEncoder interface {
	K3(t *big.Int) (weier.Point, error)
	K4(t *big.Int, s int) (weier.Point, error)
	K6(u *big.Int, s int) (weier.Point, error)
	K5(u1 *big.Int, s1 int, u2 *big.Int, s2 int) (weier.Point, error)
}

// Map encodes field elements to points of one fixed curve. It is immutable
// after construction and safe for unrestricted concurrent use: every
// operation is a pure function of its arguments.
type Map struct {
	f     *field.Field
	curve *weier.Params

	p0, p1, p2 weier.Point
	delta      *big.Int

	minusOne *big.Int
}

var _ PointEncoder = (*Map)(nil)

// New builds a Map from cfg. Construction fails — and the curve therefore
// never becomes usable — on a bad modulus, a zero or singular coefficient
// pair, an anchor off the curve, or a delta that is actually a square.
func New(cfg Config) (*Map, error) {
	if cfg.Modulus == nil {
		return nil, ErrMissingModulus
	}
	f, err := field.New(cfg.Modulus)
	if err != nil {
		return nil, err
	}
	if f.IsZero(cfg.A) || f.IsZero(cfg.B) {
		return nil, fmt.Errorf("%w: A=%v B=%v", ErrZeroCoefficient, cfg.A, cfg.B)
	}
	curve, err := weier.NewParams(cfg.Modulus, cfg.A, cfg.B, cfg.Cofactor)
	if err != nil {
		return nil, err
	}

	p0, err := resolveAnchor(curve, cfg.AnchorX, cfg.AnchorY)
	if err != nil {
		return nil, fmt.Errorf("anchor P0: %w", err)
	}
	p1, p2 := p0, p0
	if cfg.Anchor1X != nil {
		if p1, err = resolveAnchor(curve, cfg.Anchor1X, cfg.Anchor1Y); err != nil {
			return nil, fmt.Errorf("anchor P1: %w", err)
		}
	}
	if cfg.Anchor2X != nil {
		if p2, err = resolveAnchor(curve, cfg.Anchor2X, cfg.Anchor2Y); err != nil {
			return nil, fmt.Errorf("anchor P2: %w", err)
		}
	}

	delta := cfg.Delta
	if delta == nil {
		if delta, err = f.FirstNonSquare(); err != nil {
			return nil, err
		}
	} else {
		delta = f.Norm(delta)
		if f.IsSquare(delta) {
			return nil, fmt.Errorf("%w: got %s", ErrInvalidNonSquare, delta)
		}
	}

	return &Map{
		f:        f,
		curve:    curve,
		p0:       p0,
		p1:       p1,
		p2:       p2,
		delta:    delta,
		minusOne: f.Neg(big.NewInt(1)),
	}, nil
}

func resolveAnchor(curve *weier.Params, x, y *big.Int) (weier.Point, error) {
	if x == nil {
		return weier.Point{}, ErrMissingAnchor
	}
	if y == nil {
		return curve.LiftX(x)
	}
	return curve.NewPoint(x, y)
}

// Curve returns the curve parameters the map encodes onto.
func (m *Map) Curve() *weier.Params { return m.curve }

// Anchor returns the anchor point P0.
func (m *Map) Anchor() weier.Point { return m.p0 }

// Delta returns the fixed non-square constant.
func (m *Map) Delta() *big.Int { return new(big.Int).Set(m.delta) }

// K3 is the base map: it sends a non-square t to a curve point. The input -1
// maps to the identity; any square input fails with ErrNonSquareRequired.
//
// For t outside {-1}, exactly one of x = -(B/A)(1 + 1/(t+t²)) and t·x has a
// square curve polynomial value, because f(t·x) = t³·f(x) and t is a
// non-square. The first case yields (x, √f(x)) with the canonical root, the
// second (t·x, -√f(t·x)).
func (m *Map) K3(t *big.Int) (weier.Point, error) {
	t = m.f.Norm(t)
	if m.f.IsSquare(t) {
		return weier.Point{}, fmt.Errorf("%w: got %s", ErrNonSquareRequired, t)
	}
	if t.Cmp(m.minusOne) == 0 {
		return m.curve.Identity(), nil
	}
	return m.baseMap(t)
}

// baseMap evaluates the general case of K3. The caller guarantees t is a
// non-square other than -1, so t + t² cannot vanish.
func (m *Map) baseMap(t *big.Int) (weier.Point, error) {
	f := m.f

	inv, err := f.Inv(f.Add(t, f.Square(t)))
	if err != nil {
		return weier.Point{}, err
	}
	boa, err := f.Div(m.curve.B(), m.curve.A())
	if err != nil {
		return weier.Point{}, err
	}
	x := f.Neg(f.Mul(boa, f.Add(big.NewInt(1), inv)))

	if fx := m.curve.RHS(x); f.IsSquare(fx) {
		y, err := f.Sqrt(fx)
		if err != nil {
			return weier.Point{}, err
		}
		return m.curve.NewPoint(x, y)
	}

	xp := f.Mul(t, x)
	yp, err := f.Sqrt(m.curve.RHS(xp))
	if err != nil {
		// Unreachable when the twist identity holds; surface it rather
		// than guessing.
		return weier.Point{}, err
	}
	return m.curve.NewPoint(xp, f.Neg(yp))
}

// K4 is the high-order map: it shifts the base map's output by the anchor P0
// so that, for a validly chosen anchor, the result never lies in a small
// subgroup. The sign bit s selects between P0 + K3(t) and P0 - K3(t) via the
// parity of P0.y · K3(t).y; the input -1 returns P0 for either s. No
// uniformity is claimed.
func (m *Map) K4(t *big.Int, s int) (weier.Point, error) {
	if err := checkSign(s); err != nil {
		return weier.Point{}, err
	}
	t = m.f.Norm(t)
	if m.f.IsSquare(t) {
		return weier.Point{}, fmt.Errorf("%w: got %s", ErrNonSquareRequired, t)
	}
	if t.Cmp(m.minusOne) == 0 {
		return m.p0, nil
	}

	pt, err := m.baseMap(t)
	if err != nil {
		return weier.Point{}, err
	}
	if pt.IsIdentity() {
		return weier.Point{}, fmt.Errorf("%w: t=%s", ErrIdentityImage, t)
	}

	_, pty, err := pt.XY()
	if err != nil {
		return weier.Point{}, err
	}
	_, p0y, err := m.p0.XY()
	if err != nil {
		return weier.Point{}, err
	}

	if m.f.Sgn0(m.f.Mul(p0y, pty)) == s {
		return m.curve.Add(m.p0, pt), nil
	}
	return m.curve.Sub(m.p0, pt), nil
}

// K6 extends K4 from non-squares to the whole field: zero maps to the fixed
// point P1, and any other u delegates to K4(delta·u², s), which satisfies
// K4's precondition since a square times a non-square is a non-square.
func (m *Map) K6(u *big.Int, s int) (weier.Point, error) {
	return m.extend(m.p1, u, s)
}

// K5 is the near-uniform combinator: K6(u1,s1) - K6(u2,s2). The difference is
// statistically close to uniform over the whole group, at the deliberate cost
// that it may land in a small subgroup — the high-order guarantee of K4 and
// K6 does not survive the subtraction.
func (m *Map) K5(u1 *big.Int, s1 int, u2 *big.Int, s2 int) (weier.Point, error) {
	a, err := m.extend(m.p1, u1, s1)
	if err != nil {
		return weier.Point{}, err
	}
	b, err := m.extend(m.p2, u2, s2)
	if err != nil {
		return weier.Point{}, err
	}
	return m.curve.Sub(a, b), nil
}

func (m *Map) extend(zero weier.Point, u *big.Int, s int) (weier.Point, error) {
	if err := checkSign(s); err != nil {
		return weier.Point{}, err
	}
	u = m.f.Norm(u)
	if u.Sign() == 0 {
		return zero, nil
	}
	return m.K4(m.f.Mul(m.delta, m.f.Square(u)), s)
}

func checkSign(s int) error {
	if s != 0 && s != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSignBit, s)
	}
	return nil
}
