// circuit.go - Confidential transfer circuit, parameterized by transaction
// shape. The commitment scheme only consumes its constraint count: the shape
// fixes how many payers spend notes (each proving Merkle membership of depth
// TreeDepth), how many payees receive fresh notes, and the count drives the
// SRS capacity through the degree sizer.

package xfr

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/hash/mimc"
)

// CircuitShape describes one transaction shape. UserParams are assembled once
// per distinct shape and reused across all proofs for that shape.
type CircuitShape struct {
	NPayers     int `json:"n_payers"`
	NPayees     int `json:"n_payees"`
	TreeDepth   int `json:"tree_depth"`
	AuxGenCount int `json:"aux_gen_count"`
}

// Validate checks the shape is well formed.
func (s CircuitShape) Validate() error {
	if s.NPayers < 1 {
		return fmt.Errorf("xfr: shape needs at least one payer, got %d", s.NPayers)
	}
	if s.NPayees < 1 {
		return fmt.Errorf("xfr: shape needs at least one payee, got %d", s.NPayees)
	}
	if s.TreeDepth < 1 {
		return fmt.Errorf("xfr: tree depth must be positive, got %d", s.TreeDepth)
	}
	if s.AuxGenCount < 0 {
		return fmt.Errorf("xfr: negative auxiliary generator count %d", s.AuxGenCount)
	}
	return nil
}

// TransferCircuit proves a balanced confidential transfer: every payer note
// exists in the commitment tree and is consumed by publishing its serial
// number, every payee note commitment is well formed, and coins are conserved.
type TransferCircuit struct {
	// Public inputs
	MerkleRoot     frontend.Variable   `gnark:",public"`
	SerialNumbers  []frontend.Variable `gnark:",public"`
	NewCommitments []frontend.Variable `gnark:",public"`

	// Private inputs, per payer
	PayerSk    []frontend.Variable
	PayerRho   []frontend.Variable
	PayerRand  []frontend.Variable
	PayerCoins []frontend.Variable
	PathElems  [][]frontend.Variable // sibling hashes, leaf to root
	PathBits   [][]frontend.Variable // 0 = current node is the left child

	// Private inputs, per payee
	PayeePk    []frontend.Variable
	PayeeRho   []frontend.Variable
	PayeeRand  []frontend.Variable
	PayeeCoins []frontend.Variable
}

// NewTransferCircuit allocates a circuit sized to the shape, ready for
// compilation.
func NewTransferCircuit(shape CircuitShape) *TransferCircuit {
	c := &TransferCircuit{
		SerialNumbers:  make([]frontend.Variable, shape.NPayers),
		NewCommitments: make([]frontend.Variable, shape.NPayees),
		PayerSk:        make([]frontend.Variable, shape.NPayers),
		PayerRho:       make([]frontend.Variable, shape.NPayers),
		PayerRand:      make([]frontend.Variable, shape.NPayers),
		PayerCoins:     make([]frontend.Variable, shape.NPayers),
		PathElems:      make([][]frontend.Variable, shape.NPayers),
		PathBits:       make([][]frontend.Variable, shape.NPayers),
		PayeePk:        make([]frontend.Variable, shape.NPayees),
		PayeeRho:       make([]frontend.Variable, shape.NPayees),
		PayeeRand:      make([]frontend.Variable, shape.NPayees),
		PayeeCoins:     make([]frontend.Variable, shape.NPayees),
	}
	for i := range c.PathElems {
		c.PathElems[i] = make([]frontend.Variable, shape.TreeDepth)
		c.PathBits[i] = make([]frontend.Variable, shape.TreeDepth)
	}
	return c
}

func (c *TransferCircuit) Define(api frontend.API) error {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	sumIn := frontend.Variable(0)
	for i := range c.PayerSk {
		// pk = H(sk)
		hasher.Reset()
		hasher.Write(c.PayerSk[i])
		pk := hasher.Sum()

		// cm = Com(coins, pk, rho, rand)
		hasher.Reset()
		hasher.Write(c.PayerCoins[i], pk, c.PayerRho[i], c.PayerRand[i])
		cm := hasher.Sum()

		// sn = PRF(sk, rho), prevents double spending
		hasher.Reset()
		hasher.Write(c.PayerSk[i], c.PayerRho[i])
		api.AssertIsEqual(c.SerialNumbers[i], hasher.Sum())

		// Merkle membership of cm under the public root
		cur := cm
		for d := 0; d < len(c.PathElems[i]); d++ {
			bit := c.PathBits[i][d]
			api.AssertIsBoolean(bit)
			left := api.Select(bit, c.PathElems[i][d], cur)
			right := api.Select(bit, cur, c.PathElems[i][d])
			hasher.Reset()
			hasher.Write(left, right)
			cur = hasher.Sum()
		}
		api.AssertIsEqual(c.MerkleRoot, cur)

		sumIn = api.Add(sumIn, c.PayerCoins[i])
	}

	sumOut := frontend.Variable(0)
	for j := range c.PayeePk {
		hasher.Reset()
		hasher.Write(c.PayeeCoins[j], c.PayeePk[j], c.PayeeRho[j], c.PayeeRand[j])
		api.AssertIsEqual(c.NewCommitments[j], hasher.Sum())
		sumOut = api.Add(sumOut, c.PayeeCoins[j])
	}

	// Coin conservation
	api.AssertIsEqual(sumIn, sumOut)
	return nil
}

// ConstraintCount compiles the shape's circuit and returns the system size
// the commitment scheme must cover: constraints plus public variables.
func (s CircuitShape) ConstraintCount() (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, NewTransferCircuit(s))
	if err != nil {
		return 0, fmt.Errorf("xfr: circuit compilation failed: %w", err)
	}
	return ccs.GetNbConstraints() + ccs.GetNbPublicVariables(), nil
}
