// kzg.go - KZG10 commit / open / verify over BLS12-381.
//
// A commitment is the multi-scalar multiplication of the polynomial
// coefficients against the SRS power table. An opening proof for point x is
// the commitment to the quotient (P(X) - P(x)) / (X - x). Verification is a
// single pairing equality computed entirely from public SRS elements.

package pcs

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/polynomial"

	"github.com/findora-crypto/zei/algebra"
)

// Polynomial is an ordered coefficient sequence [a0, a1, ..., ad] for
// sum_i ai*X^i, lowest degree first.
type Polynomial = polynomial.Polynomial

// Commitment is the image of a polynomial under the SRS.
type Commitment = algebra.G1Point

// OpeningProof is the commitment to the quotient polynomial.
type OpeningProof = algebra.G1Point

// Degree returns the index of the last non-zero coefficient, or -1 for the
// zero polynomial.
func Degree(p Polynomial) int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Commit commits to p against the SRS. Fails with ErrDegreeExceeded when
// deg(p) is larger than the SRS capacity. Pure function of its inputs: the
// same (srs, p) always yields the same commitment.
func Commit(srs *SRS, p Polynomial) (Commitment, error) {
	var c Commitment
	d := Degree(p)
	if d > srs.Capacity() {
		return c, fmt.Errorf("%w: degree %d, capacity %d", ErrDegreeExceeded, d, srs.Capacity())
	}
	if d < 0 {
		// Zero polynomial commits to the identity.
		return c, nil
	}
	return algebra.MultiScalarMul(srs.PowersG1[:d+1], p[:d+1])
}

// Open evaluates p at x and produces the opening proof. The quotient division
// is exact whenever y = p(x), so a non-zero remainder can only come from an
// arithmetic defect inside this package; it panics rather than returning an
// error a caller might swallow.
func Open(srs *SRS, p Polynomial, x fr.Element) (fr.Element, OpeningProof, error) {
	var proof OpeningProof
	if d := Degree(p); d > srs.Capacity() {
		return fr.Element{}, proof, fmt.Errorf("%w: degree %d, capacity %d", ErrDegreeExceeded, d, srs.Capacity())
	}
	if len(p) == 0 {
		// The zero polynomial evaluates to zero everywhere and its quotient
		// is zero; the identity proof verifies against the identity commitment.
		return fr.Element{}, proof, nil
	}

	y := p.Eval(&x)

	q, rem := divideByLinear(p, &x, &y)
	if !rem.IsZero() {
		panic(fmt.Sprintf("pcs: non-zero remainder opening at %s: %s", x.String(), rem.String()))
	}

	proof, err := Commit(srs, q)
	if err != nil {
		return fr.Element{}, proof, err
	}
	return y, proof, nil
}

// divideByLinear returns the quotient and remainder of (p - y) / (X - x) by
// synthetic division, highest coefficient first.
func divideByLinear(p Polynomial, x, y *fr.Element) (Polynomial, fr.Element) {
	var rem fr.Element
	if len(p) == 0 {
		rem.Neg(y)
		return nil, rem
	}
	q := make(Polynomial, len(p)-1)
	var acc fr.Element
	for i := len(p) - 1; i > 0; i-- {
		acc.Mul(&acc, x).Add(&acc, &p[i])
		q[i-1].Set(&acc)
	}
	acc.Mul(&acc, x).Add(&acc, &p[0])
	rem.Sub(&acc, y)
	return q, rem
}

// Verify checks the pairing equality
//
//	e(C - y*g1, g2) == e(proof, s*g2 - x*g2)
//
// A false result is the normal cryptographic-rejection outcome, not an error.
// The error channel is reserved for malformed inputs: commitment or proof
// outside the G1 subgroup.
func Verify(srs *SRS, c Commitment, x, y fr.Element, proof OpeningProof) (bool, error) {
	if !algebra.InG1Subgroup(&c) {
		return false, fmt.Errorf("%w: commitment", ErrNotInSubgroup)
	}
	if !algebra.InG1Subgroup(&proof) {
		return false, fmt.Errorf("%w: proof", ErrNotInSubgroup)
	}

	// lhs = C - y*g1
	yG1 := algebra.ScalarMulG1(&srs.PowersG1[0], &y)
	var lhs algebra.G1Point
	lhs.Sub(&c, &yG1)

	// rhs = s*g2 - x*g2, public SRS elements only.
	xG2 := algebra.ScalarMulG2(&srs.PowersG2[0], &x)
	var rhs algebra.G2Point
	rhs.Sub(&srs.PowersG2[1], &xG2)

	return algebra.PairingEqual(&lhs, &srs.PowersG2[0], &proof, &rhs)
}
