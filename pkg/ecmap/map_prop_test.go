package ecmap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hashfree/go-ecmap/pkg/weier"
)

// propModuli mixes both square-root branches: 23 ≡ 3 mod 4 and 1009 ≡ 1 mod 4.
var propModuli = []int64{23, 1009}

// propMap builds y² = x³ + x + 1 over F_q with the anchor at the smallest
// abscissa that lifts. Delta is discovered by the ascending scan.
func propMap(t *rapid.T, q int64) *Map {
	curve, err := weier.NewParams(big.NewInt(q), big.NewInt(1), big.NewInt(1), nil)
	require.NoError(t, err)

	var anchorX *big.Int
	for x := int64(0); x < q; x++ {
		if _, err := curve.LiftX(big.NewInt(x)); err == nil {
			anchorX = big.NewInt(x)
			break
		}
	}
	require.NotNil(t, anchorX)

	m, err := New(Config{
		Modulus: big.NewInt(q),
		A:       big.NewInt(1),
		B:       big.NewInt(1),
		AnchorX: anchorX,
	})
	require.NoError(t, err)
	return m
}

func TestPropertyEncodingsLandOnCurve(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		q := rapid.SampledFrom(propModuli).Draw(tt, "modulus")
		m := propMap(tt, q)
		c := m.Curve()

		u := rapid.Int64Range(0, q-1).Draw(tt, "u")
		s := rapid.IntRange(0, 1).Draw(tt, "s")

		p, err := m.K6(big.NewInt(u), s)
		require.NoError(tt, err)
		if !p.IsIdentity() {
			x, y, err := p.XY()
			require.NoError(tt, err)
			require.True(tt, c.IsOnCurve(x, y), "K6(%d, %d) off curve mod %d", u, s, q)
		}
	})
}

func TestPropertyNearUniformIsExactDifference(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		q := rapid.SampledFrom(propModuli).Draw(tt, "modulus")
		m := propMap(tt, q)
		c := m.Curve()

		u1 := rapid.Int64Range(0, q-1).Draw(tt, "u1")
		s1 := rapid.IntRange(0, 1).Draw(tt, "s1")
		u2 := rapid.Int64Range(0, q-1).Draw(tt, "u2")
		s2 := rapid.IntRange(0, 1).Draw(tt, "s2")

		a, err := m.K6(big.NewInt(u1), s1)
		require.NoError(tt, err)
		b, err := m.K6(big.NewInt(u2), s2)
		require.NoError(tt, err)
		got, err := m.K5(big.NewInt(u1), s1, big.NewInt(u2), s2)
		require.NoError(tt, err)
		require.True(tt, got.Equal(c.Sub(a, b)))
	})
}

func TestPropertyBaseMapRejectsSquares(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		q := rapid.SampledFrom(propModuli).Draw(tt, "modulus")
		m := propMap(tt, q)

		v := rapid.Int64Range(0, q-1).Draw(tt, "v")
		square := big.NewInt(v * v % q)

		_, err := m.K3(square)
		require.ErrorIs(tt, err, ErrNonSquareRequired)
	})
}

func TestPropertyHighOrderMapPicksAnchorShift(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		q := rapid.SampledFrom(propModuli).Draw(tt, "modulus")
		m := propMap(tt, q)
		c := m.Curve()

		// delta·u² ranges over the non-squares as u ranges over the
		// non-zero elements.
		u := rapid.Int64Range(1, q-1).Draw(tt, "u")
		tv := new(big.Int).Mod(new(big.Int).Mul(m.Delta(), big.NewInt(u*u%q)), big.NewInt(q))

		pt, err := m.K3(tv)
		require.NoError(tt, err)
		if pt.IsIdentity() {
			// tv = -1: both signs return the anchor.
			for _, s := range []int{0, 1} {
				p, err := m.K4(tv, s)
				require.NoError(tt, err)
				require.True(tt, p.Equal(m.Anchor()))
			}
			return
		}
		for _, s := range []int{0, 1} {
			p, err := m.K4(tv, s)
			require.NoError(tt, err)
			ok := p.Equal(c.Add(m.Anchor(), pt)) || p.Equal(c.Sub(m.Anchor(), pt))
			require.True(tt, ok)
		}
	})
}
