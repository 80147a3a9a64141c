// rangeproof.go - Parameters for the bulletproof range-proof subsystem
// bundled with every UserParams. Unlike the SRS these need no trusted setup:
// all generators are derived by hashing to the curve, so assembly stays
// deterministic for a fixed generator count.

package xfr

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/findora-crypto/zei/algebra"
)

const rangeProofDST = "ZEI-V1-CS01-with-BLS12381G1_XMD:SHA-256_SSWU_RO_RANGEPROOF"

// RangeProofParams holds the Pedersen base pair and the generator vectors the
// range prover aggregates bit commitments against. Gs and Hs are sized by the
// shape's auxiliary generator count.
type RangeProofParams struct {
	G  algebra.G1Point
	H  algebra.G1Point
	Gs []algebra.G1Point
	Hs []algebra.G1Point
}

// NewRangeProofParams derives count generator pairs plus the base pair.
func NewRangeProofParams(count int) (*RangeProofParams, error) {
	if count < 0 {
		return nil, fmt.Errorf("xfr: negative generator count %d", count)
	}

	p := &RangeProofParams{
		G:  algebra.G1Generator(),
		Gs: make([]algebra.G1Point, count),
		Hs: make([]algebra.G1Point, count),
	}

	h, err := bls12381.HashToG1([]byte("zei range proof base H"), []byte(rangeProofDST))
	if err != nil {
		return nil, fmt.Errorf("xfr: deriving base generator: %w", err)
	}
	p.H = h

	for i := 0; i < count; i++ {
		g, err := bls12381.HashToG1(fmt.Appendf(nil, "zei range proof G %d", i), []byte(rangeProofDST))
		if err != nil {
			return nil, fmt.Errorf("xfr: deriving generator %d: %w", i, err)
		}
		h, err := bls12381.HashToG1(fmt.Appendf(nil, "zei range proof H %d", i), []byte(rangeProofDST))
		if err != nil {
			return nil, fmt.Errorf("xfr: deriving generator %d: %w", i, err)
		}
		p.Gs[i] = g
		p.Hs[i] = h
	}
	return p, nil
}
