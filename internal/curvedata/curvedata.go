// Package curvedata holds the per-curve constant tables behind the built-in
// registry entries. Parameters of the named NIST curves come from
// crypto/elliptic and the secp256k1 modulus from the decred implementation;
// the isogenous-curve coefficients for secp256k1 are the published constants
// of its degree-3 isogeny.
package curvedata

import (
	"crypto/elliptic"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/hashfree/go-ecmap/pkg/ecmap"
	"github.com/hashfree/go-ecmap/pkg/weier"
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curvedata: bad constant " + s)
	}
	return v
}

// nistConfig derives a mapping config from a NIST curve: A = -3, anchor at
// the generator abscissa with the ordinate recomputed canonically, and
// delta = p-1, which is a non-residue because all supported moduli are
// congruent to 3 mod 4.
func nistConfig(params *elliptic.CurveParams) ecmap.Config {
	p := params.P
	return ecmap.Config{
		Modulus:  p,
		A:        new(big.Int).Sub(p, big.NewInt(3)),
		B:        params.B,
		Cofactor: big.NewInt(1),
		AnchorX:  params.Gx,
		Delta:    new(big.Int).Sub(p, big.NewInt(1)),
	}
}

// P256 returns the mapping config for NIST P-256.
func P256() ecmap.Config {
	return nistConfig(elliptic.P256().Params())
}

// P384 returns the mapping config for NIST P-384.
func P384() ecmap.Config {
	return nistConfig(elliptic.P384().Params())
}

// secp256k1 has A = 0, so the pipeline cannot run on it directly. It runs on
// the 3-isogenous curve E': y² = x³ + A'x + B' instead, and results are
// pushed down through the isogeny given by the rational-map coefficients
// below (ascending degree; the leading xDen and yDen coefficients are one).
const (
	secpIsoA = "3f8731abdd661adca08a5558f0f5d272e953d363cb6f0e5d405447c01a444533"
	secpIsoB = "6eb" // 1771
)

var (
	secpXNum = []string{
		"8e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38daaaaa8c7",
		"7d3d4c80bc321d5b9f315cea7fd44c5d595d2fc0bf63b92dfff1044f17c6581",
		"534c328d23f234e6e2a413deca25caece4506144037c40314ecbd0b53d9dd262",
		"8e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38daaaaa88c",
	}
	secpXDen = []string{
		"d35771193d94918a9ca34ccbb7b640dd86cd409542f8487d9fe6b745781eb49b",
		"edadc6f64383dc1df7c4b2d51b54225406d36b641f5e41bbc52a56612a8c6d14",
		"1",
	}
	secpYNum = []string{
		"4bda12f684bda12f684bda12f684bda12f684bda12f684bda12f684b8e38e23c",
		"c75e0c32d5cb7c0fa9d0a54b12a0a6d5647ab046d686da6fdffc90fc201d71a3",
		"29a6194691f91a73715209ef6512e576722830a201be2018a765e85a9ecee931",
		"2f684bda12f684bda12f684bda12f684bda12f684bda12f684bda12f38e38d84",
	}
	secpYDen = []string{
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffff93b",
		"7a06534bb8bdb49fd5e9e6632722c2989467c1bfc8e8d978dfb425d2685c2573",
		"6484aa716545ca2cf3a70c3fa8fe337e0a3d21162f0d6299a7bf8192bfd2a76f",
		"1",
	}
)

func hexAll(ss []string) []*big.Int {
	out := make([]*big.Int, len(ss))
	for i, s := range ss {
		out[i] = mustHex(s)
	}
	return out
}

// Secp256k1 returns the isogenous-curve mapping config for secp256k1 and the
// isogeny onto y² = x³ + 7. The anchor abscissa 1 lies on the isogenous
// curve; delta = p-1 since p ≡ 3 mod 4.
func Secp256k1() (ecmap.Config, ecmap.Isogeny, error) {
	p := secp256k1.S256().Params().P

	cfg := ecmap.Config{
		Modulus:  p,
		A:        mustHex(secpIsoA),
		B:        mustHex(secpIsoB),
		Cofactor: big.NewInt(1),
		AnchorX:  big.NewInt(1),
		Delta:    new(big.Int).Sub(p, big.NewInt(1)),
	}

	target, err := weier.NewParams(p, big.NewInt(0), big.NewInt(7), big.NewInt(1))
	if err != nil {
		return ecmap.Config{}, nil, err
	}
	phi, err := ecmap.NewRationalMap(target,
		hexAll(secpXNum), hexAll(secpXDen), hexAll(secpYNum), hexAll(secpYDen))
	if err != nil {
		return ecmap.Config{}, nil, err
	}
	return cfg, phi, nil
}
