package e2e

import (
	"crypto/elliptic"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashfree/go-ecmap/pkg/ecmap"
	"github.com/hashfree/go-ecmap/pkg/registry"
)

// randomInput draws a uniform field element below q.
func randomInput(t *testing.T, q *big.Int) *big.Int {
	t.Helper()
	u, err := rand.Int(rand.Reader, q)
	require.NoError(t, err)
	return u
}

func TestP256Encoding(t *testing.T) {
	reg, err := registry.Builtin()
	require.NoError(t, err)
	enc, err := reg.Lookup("p256")
	require.NoError(t, err)

	curve := elliptic.P256()
	q := curve.Params().P

	for i := 0; i < 32; i++ {
		u := randomInput(t, q)
		for _, s := range []int{0, 1} {
			p, err := enc.K6(u, s)
			require.NoError(t, err)
			if p.IsIdentity() {
				continue
			}
			x, y, err := p.XY()
			require.NoError(t, err)
			assert.True(t, curve.IsOnCurve(x, y), "K6(%s, %d) off P-256", u, s)
		}
	}

	t.Run("zero input hits the anchor", func(t *testing.T) {
		p, err := enc.K6(big.NewInt(0), 0)
		require.NoError(t, err)
		x, _, err := p.XY()
		require.NoError(t, err)
		assert.Equal(t, 0, x.Cmp(curve.Params().Gx))
	})

	t.Run("sign bits pick distinct points", func(t *testing.T) {
		u := big.NewInt(7)
		p0, err := enc.K6(u, 0)
		require.NoError(t, err)
		p1, err := enc.K6(u, 1)
		require.NoError(t, err)
		assert.False(t, p0.Equal(p1))
	})
}

func TestP384Encoding(t *testing.T) {
	reg, err := registry.Builtin()
	require.NoError(t, err)
	enc, err := reg.Lookup("p384")
	require.NoError(t, err)

	curve := elliptic.P384()
	q := curve.Params().P

	for i := 0; i < 8; i++ {
		u := randomInput(t, q)
		p, err := enc.K6(u, i%2)
		require.NoError(t, err)
		if p.IsIdentity() {
			continue
		}
		x, y, err := p.XY()
		require.NoError(t, err)
		assert.True(t, curve.IsOnCurve(x, y), "K6(%s) off P-384", u)
	}
}

func TestSecp256k1Encoding(t *testing.T) {
	reg, err := registry.Builtin()
	require.NoError(t, err)
	enc, err := reg.Lookup("secp256k1")
	require.NoError(t, err)

	curve := secp256k1.S256()
	q := curve.P

	for i := 0; i < 32; i++ {
		u := randomInput(t, q)
		for _, s := range []int{0, 1} {
			p, err := enc.K6(u, s)
			require.NoError(t, err)
			if p.IsIdentity() {
				continue
			}
			x, y, err := p.XY()
			require.NoError(t, err)
			assert.True(t, curve.IsOnCurve(x, y), "K6(%s, %d) off secp256k1", u, s)
		}
	}

	t.Run("base map identity input", func(t *testing.T) {
		minusOne := new(big.Int).Sub(q, big.NewInt(1))
		p, err := enc.K3(minusOne)
		require.NoError(t, err)
		assert.True(t, p.IsIdentity())
	})

	t.Run("base map rejects squares", func(t *testing.T) {
		_, err := enc.K3(big.NewInt(4))
		assert.ErrorIs(t, err, ecmap.ErrNonSquareRequired)
	})
}

// The near-uniform output is the exact difference of two K6 evaluations. For
// the direct curves the relation can be checked against the group law.
func TestK5Relation(t *testing.T) {
	reg, err := registry.Builtin()
	require.NoError(t, err)
	enc, err := reg.Lookup("p256")
	require.NoError(t, err)

	m, ok := enc.(*ecmap.Map)
	require.True(t, ok)

	q := elliptic.P256().Params().P
	for i := 0; i < 16; i++ {
		u1, u2 := randomInput(t, q), randomInput(t, q)
		s1, s2 := i%2, (i/2)%2

		got, err := m.K5(u1, s1, u2, s2)
		require.NoError(t, err)

		a, err := m.K6(u1, s1)
		require.NoError(t, err)
		b, err := m.K6(u2, s2)
		require.NoError(t, err)
		assert.True(t, got.Equal(m.Curve().Sub(a, b)))
	}

	t.Run("self-difference cancels", func(t *testing.T) {
		u := randomInput(t, q)
		p, err := m.K5(u, 1, u, 1)
		require.NoError(t, err)
		assert.True(t, p.IsIdentity())
	})
}

func TestLoadedCurveAlongsideBuiltins(t *testing.T) {
	reg := registry.New()
	require.NoError(t, registry.AddBuiltins(reg))
	require.NoError(t, reg.LoadYAML([]byte(`
curves:
  - name: toy23
    modulus: "23"
    a: "1"
    b: "1"
    cofactor: "4"
    anchor_x: "0"
    delta: "5"
`)))
	reg.Seal()

	assert.Equal(t, []string{"p256", "p384", "secp256k1", "toy23"}, reg.Names())

	enc, err := reg.Lookup("toy23")
	require.NoError(t, err)
	p, err := enc.K6(big.NewInt(1), 0)
	require.NoError(t, err)
	x, y, err := p.XY()
	require.NoError(t, err)
	assert.Equal(t, int64(1), x.Int64())
	assert.Equal(t, int64(7), y.Int64())
}
