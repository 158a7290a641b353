package ecmap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashfree/go-ecmap/internal/crypto/field"
	"github.com/hashfree/go-ecmap/pkg/weier"
)

// Isogeny is a structure-preserving map from the point group of one curve
// onto another. Implementations must carry the identity to the identity and
// commute with the group law; the adapter's guarantees only transfer when
// they do. Construction of production isogenies is outside this package —
// they are injected, with RationalMap covering the usual published form.
type Isogeny interface {
	// Push maps a point of the domain curve to the target curve.
	Push(p weier.Point) (weier.Point, error)
}

// RationalMap is an isogeny given by polynomial ratios, the form in which
// curve isogenies are published: x' = xNum(x)/xDen(x) and
// y' = y·yNum(x)/yDen(x), coefficients in ascending degree order. Points
// where a denominator vanishes form the kernel and map to the identity.
type RationalMap struct {
	target *weier.Params
	f      *field.Field

	xNum, xDen, yNum, yDen []*big.Int
}

// NewRationalMap builds an isogeny onto target from the four coefficient
// lists. Results of Push are validated against the target curve equation, so
// inconsistent coefficients surface as ErrPointNotOnCurve at use.
func NewRationalMap(target *weier.Params, xNum, xDen, yNum, yDen []*big.Int) (*RationalMap, error) {
	if target == nil {
		return nil, errors.New("ecmap: rational map needs target curve parameters")
	}
	f, err := field.New(target.Modulus())
	if err != nil {
		return nil, err
	}
	for _, cs := range [][]*big.Int{xNum, xDen, yNum, yDen} {
		if len(cs) == 0 {
			return nil, errors.New("ecmap: rational map coefficients must be non-empty")
		}
	}
	return &RationalMap{
		target: target,
		f:      f,
		xNum:   normAll(f, xNum),
		xDen:   normAll(f, xDen),
		yNum:   normAll(f, yNum),
		yDen:   normAll(f, yDen),
	}, nil
}

func normAll(f *field.Field, cs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(cs))
	for i, c := range cs {
		out[i] = f.Norm(c)
	}
	return out
}

// Target returns the codomain curve parameters.
func (r *RationalMap) Target() *weier.Params { return r.target }

// Push applies the rational map. The identity and kernel points map to the
// target identity.
func (r *RationalMap) Push(p weier.Point) (weier.Point, error) {
	if p.IsIdentity() {
		return r.target.Identity(), nil
	}
	x, y, err := p.XY()
	if err != nil {
		return weier.Point{}, err
	}

	xd := r.eval(r.xDen, x)
	yd := r.eval(r.yDen, x)
	if xd.Sign() == 0 || yd.Sign() == 0 {
		return r.target.Identity(), nil
	}

	xi, err := r.f.Div(r.eval(r.xNum, x), xd)
	if err != nil {
		return weier.Point{}, err
	}
	yi, err := r.f.Div(r.f.Mul(y, r.eval(r.yNum, x)), yd)
	if err != nil {
		return weier.Point{}, err
	}
	return r.target.NewPoint(xi, yi)
}

// eval evaluates the polynomial with the given ascending coefficients at x.
func (r *RationalMap) eval(cs []*big.Int, x *big.Int) *big.Int {
	acc := new(big.Int).Set(cs[len(cs)-1])
	for i := len(cs) - 2; i >= 0; i-- {
		acc = r.f.Add(r.f.Mul(acc, x), cs[i])
	}
	return acc
}

// NewTwoIsogeny builds the degree-2 isogeny with kernel {identity, (x0, 0)}
// from domain, using Vélu's formulas, along with the codomain parameters
// y² = x³ + (A-5t)x + (B-7tx0) where t = 3x0² + A. The abscissa x0 must be a
// root of the domain curve polynomial. Useful for exercising the adapter on
// small curves, including codomains with a zero coefficient.
func NewTwoIsogeny(domain *weier.Params, x0 *big.Int) (*RationalMap, error) {
	f, err := field.New(domain.Modulus())
	if err != nil {
		return nil, err
	}
	x0 = f.Norm(x0)
	if domain.RHS(x0).Sign() != 0 {
		return nil, fmt.Errorf("%w: (%s, 0) is not a 2-torsion point", weier.ErrPointNotOnCurve, x0)
	}

	t := f.Add(f.Mul(big.NewInt(3), f.Square(x0)), domain.A())
	w := f.Mul(x0, t)
	a2 := f.Sub(domain.A(), f.Mul(big.NewInt(5), t))
	b2 := f.Sub(domain.B(), f.Mul(big.NewInt(7), w))

	target, err := weier.NewParams(domain.Modulus(), a2, b2, domain.Cofactor())
	if err != nil {
		return nil, err
	}

	// x' = (x² - x0·x + t)/(x - x0), y' = y·((x-x0)² - t)/(x-x0)².
	negX0 := f.Neg(x0)
	return NewRationalMap(target,
		[]*big.Int{t, negX0, big.NewInt(1)},
		[]*big.Int{negX0, big.NewInt(1)},
		[]*big.Int{f.Sub(f.Square(x0), t), f.Mul(big.NewInt(2), negX0), big.NewInt(1)},
		[]*big.Int{f.Square(x0), f.Mul(big.NewInt(2), negX0), big.NewInt(1)},
	)
}

// IsogenyMap runs the whole pipeline on an isogenous curve whose coefficients
// are both non-zero and pushes every result through the injected isogeny onto
// the real target curve, whose A or B may be zero. It implements the same
// operation set as Map.
type IsogenyMap struct {
	inner *Map
	phi   Isogeny
}

var _ PointEncoder = (*IsogenyMap)(nil)

// NewIsogenyMap builds the adapter from the isogenous curve's own parameter
// set and the isogeny onto the target curve.
func NewIsogenyMap(cfg Config, phi Isogeny) (*IsogenyMap, error) {
	if phi == nil {
		return nil, ErrNilIsogeny
	}
	inner, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &IsogenyMap{inner: inner, phi: phi}, nil
}

// Domain returns the isogenous curve the pipeline actually runs on.
func (im *IsogenyMap) Domain() *weier.Params { return im.inner.Curve() }

// K3 evaluates the base map on the isogenous curve and pushes the result.
func (im *IsogenyMap) K3(t *big.Int) (weier.Point, error) {
	p, err := im.inner.K3(t)
	if err != nil {
		return weier.Point{}, err
	}
	return im.phi.Push(p)
}

// K4 evaluates the high-order map on the isogenous curve and pushes the
// result.
func (im *IsogenyMap) K4(t *big.Int, s int) (weier.Point, error) {
	p, err := im.inner.K4(t, s)
	if err != nil {
		return weier.Point{}, err
	}
	return im.phi.Push(p)
}

// K6 evaluates the domain extension on the isogenous curve and pushes the
// result.
func (im *IsogenyMap) K6(u *big.Int, s int) (weier.Point, error) {
	p, err := im.inner.K6(u, s)
	if err != nil {
		return weier.Point{}, err
	}
	return im.phi.Push(p)
}

// K5 evaluates the near-uniform combinator on the isogenous curve and pushes
// the result; the difference is taken before the push, which is equivalent
// for a structure-preserving map.
func (im *IsogenyMap) K5(u1 *big.Int, s1 int, u2 *big.Int, s2 int) (weier.Point, error) {
	p, err := im.inner.K5(u1, s1, u2, s2)
	if err != nil {
		return weier.Point{}, err
	}
	return im.phi.Push(p)
}
