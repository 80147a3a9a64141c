// Package algebra wraps the BLS12-381 group and pairing arithmetic used by the
// commitment scheme. It fixes the curve for the whole library and narrows the
// gnark-crypto surface to the operations the scheme actually needs: scalar
// multiplication, multi-scalar multiplication and the pairing product check.
package algebra

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of the BLS12-381 scalar field.
type Scalar = fr.Element

// G1Point and G2Point are the two source groups of the pairing.
type G1Point = bls12381.G1Affine
type G2Point = bls12381.G2Affine

// CurveID identifies the curve all parameters in this library are bound to.
const CurveID = ecc.BLS12_381

// G1Generator returns the canonical G1 generator.
func G1Generator() G1Point {
	_, _, g1, _ := bls12381.Generators()
	return g1
}

// G2Generator returns the canonical G2 generator.
func G2Generator() G2Point {
	_, _, _, g2 := bls12381.Generators()
	return g2
}

// ScalarMulG1 returns k*p.
func ScalarMulG1(p *G1Point, k *Scalar) G1Point {
	var res G1Point
	res.ScalarMultiplication(p, k.BigInt(new(big.Int)))
	return res
}

// ScalarMulG2 returns k*p.
func ScalarMulG2(p *G2Point, k *Scalar) G2Point {
	var res G2Point
	res.ScalarMultiplication(p, k.BigInt(new(big.Int)))
	return res
}

// BatchPowersG1 returns base multiplied by every scalar in scalars, computed
// with the batch-affine algorithm. Used to expand the SRS powers in one shot.
func BatchPowersG1(base *G1Point, scalars []Scalar) []G1Point {
	return bls12381.BatchScalarMultiplicationG1(base, scalars)
}

// MultiScalarMul computes sum_i scalars[i]*points[i]. The terms are independent
// and gnark-crypto's MultiExp splits them across NbTasks workers with a final
// reduction, so callers get the data-parallel evaluation for free.
func MultiScalarMul(points []G1Point, scalars []Scalar) (G1Point, error) {
	var res G1Point
	if len(points) != len(scalars) {
		return res, fmt.Errorf("algebra: msm length mismatch: %d points, %d scalars", len(points), len(scalars))
	}
	if len(points) == 0 {
		// An empty sum is the identity, which is the zero value of G1Point.
		return res, nil
	}
	if _, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{NbTasks: runtime.NumCPU()}); err != nil {
		return res, fmt.Errorf("algebra: msm failed: %w", err)
	}
	return res, nil
}

// PairingEqual reports whether e(a1, a2) == e(b1, b2), evaluated as the single
// product e(a1, a2) * e(-b1, b2) == 1.
func PairingEqual(a1 *G1Point, a2 *G2Point, b1 *G1Point, b2 *G2Point) (bool, error) {
	var negB1 G1Point
	negB1.Neg(b1)
	ok, err := bls12381.PairingCheck(
		[]G1Point{*a1, negB1},
		[]G2Point{*a2, *b2},
	)
	if err != nil {
		return false, fmt.Errorf("algebra: pairing check failed: %w", err)
	}
	return ok, nil
}

// InG1Subgroup reports whether p is a valid element of the G1 prime-order
// subgroup. The point at infinity is accepted.
func InG1Subgroup(p *G1Point) bool {
	if p.IsInfinity() {
		return true
	}
	return p.IsOnCurve() && p.IsInSubGroup()
}
