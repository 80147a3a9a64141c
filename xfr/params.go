// params.go - Parameter assembly: transaction shape in, reusable UserParams
// bundle out. Assembly is deterministic for a fixed shape once the SRS for
// the required capacity is cached; only the first-ever generation for a
// capacity draws randomness.

package xfr

import (
	"fmt"
	"io"

	"github.com/findora-crypto/zei/pcs"
	"github.com/findora-crypto/zei/setup"
)

// UserParams bundles everything a prover or verifier needs for one
// transaction shape: the preprocessed commitment-scheme keys, the circuit
// metadata, and the range-proof generators. Assembled once per shape and
// reused across all proofs for that shape.
type UserParams struct {
	Shape           CircuitShape
	ConstraintCount int
	Degree          int

	// Commitment scheme, preprocessed to capacity Degree.
	SRS *pcs.SRS
	Pk  *pcs.ProvingKey
	Vk  *pcs.VerifyingKey

	RangeProof *RangeProofParams
}

// SetupUserParams assembles the parameter bundle for shape: constraint count
// from the circuit, minimum power-of-two degree, SRS from the store (cache
// hit or fresh generation), prover/verifier key split, range-proof
// generators. A setup or cache failure aborts the whole assembly.
func SetupUserParams(shape CircuitShape, store *setup.Store, rng io.Reader) (*UserParams, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	nbConstraints, err := shape.ConstraintCount()
	if err != nil {
		return nil, err
	}
	degree := setup.DegreeForConstraints(nbConstraints)

	srs, err := store.LoadOrGenerate(degree, rng)
	if err != nil {
		return nil, fmt.Errorf("xfr: obtaining srs for degree %d: %w", degree, err)
	}

	pk, err := srs.ProvingKey(degree)
	if err != nil {
		return nil, err
	}

	rp, err := NewRangeProofParams(shape.AuxGenCount)
	if err != nil {
		return nil, err
	}

	return &UserParams{
		Shape:           shape,
		ConstraintCount: nbConstraints,
		Degree:          degree,
		SRS:             srs,
		Pk:              pk,
		Vk:              srs.VerifyingKey(),
		RangeProof:      rp,
	}, nil
}
