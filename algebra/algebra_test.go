package algebra

import (
	mrand "math/rand"
	"testing"
)

func randomScalars(r *mrand.Rand, n int) []Scalar {
	scalars := make([]Scalar, n)
	for i := range scalars {
		scalars[i].SetUint64(r.Uint64())
	}
	return scalars
}

func TestMultiScalarMulMatchesNaiveSum(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	g1 := G1Generator()

	bases := randomScalars(r, 8)
	points := BatchPowersG1(&g1, bases)
	scalars := randomScalars(r, 8)

	got, err := MultiScalarMul(points, scalars)
	if err != nil {
		t.Fatalf("MultiScalarMul failed: %v", err)
	}

	var want G1Point
	for i := range points {
		term := ScalarMulG1(&points[i], &scalars[i])
		want.Add(&want, &term)
	}
	if !got.Equal(&want) {
		t.Errorf("MSM result differs from the term-by-term sum")
	}
}

func TestMultiScalarMulLengthMismatch(t *testing.T) {
	g1 := G1Generator()
	if _, err := MultiScalarMul([]G1Point{g1}, nil); err == nil {
		t.Errorf("expected an error for mismatched lengths")
	}
}

func TestMultiScalarMulEmpty(t *testing.T) {
	res, err := MultiScalarMul(nil, nil)
	if err != nil {
		t.Fatalf("MultiScalarMul(nil, nil) failed: %v", err)
	}
	if !res.IsInfinity() {
		t.Errorf("empty MSM is not the identity point")
	}
}

func TestPairingEqualBilinearity(t *testing.T) {
	r := mrand.New(mrand.NewSource(2))
	g1 := G1Generator()
	g2 := G2Generator()

	var k Scalar
	k.SetUint64(r.Uint64())
	kG1 := ScalarMulG1(&g1, &k)
	kG2 := ScalarMulG2(&g2, &k)

	// e(k*g1, g2) == e(g1, k*g2)
	ok, err := PairingEqual(&kG1, &g2, &g1, &kG2)
	if err != nil {
		t.Fatalf("PairingEqual failed: %v", err)
	}
	if !ok {
		t.Errorf("bilinearity check failed")
	}

	// e(k*g1, g2) != e(g1, g2) for k != 1
	ok, err = PairingEqual(&kG1, &g2, &g1, &g2)
	if err != nil {
		t.Fatalf("PairingEqual failed: %v", err)
	}
	if ok {
		t.Errorf("unequal pairings reported equal")
	}
}

func TestBatchPowersG1MatchesScalarMul(t *testing.T) {
	r := mrand.New(mrand.NewSource(3))
	g1 := G1Generator()

	scalars := randomScalars(r, 5)
	batch := BatchPowersG1(&g1, scalars)
	if len(batch) != len(scalars) {
		t.Fatalf("batch returned %d points, want %d", len(batch), len(scalars))
	}
	for i := range scalars {
		want := ScalarMulG1(&g1, &scalars[i])
		if !batch[i].Equal(&want) {
			t.Errorf("batch point %d differs from direct scalar multiplication", i)
		}
	}
}

func TestInG1Subgroup(t *testing.T) {
	g1 := G1Generator()
	if !InG1Subgroup(&g1) {
		t.Errorf("generator rejected")
	}
	var inf G1Point
	if !InG1Subgroup(&inf) {
		t.Errorf("identity rejected")
	}
	bad := g1
	bad.X.SetOne()
	if InG1Subgroup(&bad) {
		t.Errorf("off-curve point accepted")
	}
}
