// srs.go - Structured reference string lifecycle: trusted-setup generation,
// versioned binary serialization, and the prover/verifier key split.
//
// The trapdoor scalar s exists only inside GenerateSRS. Every copy of it
// (the big.Int draw, the field element, the running powers) is overwritten
// before the function returns, on success and on every error path.

package pcs

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/findora-crypto/zei/algebra"
)

// SRS is the public setup data of the commitment scheme:
//
//	PowersG1[i] = s^i * g1, i = 0..n
//	PowersG2    = [g2, s*g2]
//
// for a secret trapdoor s discarded at generation time. Capacity n bounds the
// degree of committable polynomials. An SRS is immutable once returned; it is
// shared read-only across commit/open/verify calls and parameter bundles.
type SRS struct {
	PowersG1 []algebra.G1Point
	PowersG2 [2]algebra.G2Point
}

// Capacity returns the largest polynomial degree the SRS supports.
func (s *SRS) Capacity() int {
	return len(s.PowersG1) - 1
}

// GenerateSRS runs the trusted setup for capacity n. The randomness source is
// injected so tests can supply a deterministic reader and production a
// cryptographically secure one; it is the only place the trapdoor ever lives.
func GenerateSRS(n int, rng io.Reader) (*SRS, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: srs capacity must be at least 1, got %d", ErrParameter, n)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil randomness source", ErrParameter)
	}

	sBig, err := rand.Int(rng, fr.Modulus())
	if err != nil {
		return nil, fmt.Errorf("pcs: drawing trapdoor failed: %w", err)
	}
	var s fr.Element
	s.SetBigInt(sBig)

	// s^1 .. s^n; every entry is trapdoor material and is wiped below.
	powers := make([]fr.Element, n)
	powers[0].Set(&s)
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], &s)
	}

	defer func() {
		sBig.SetInt64(0)
		s.SetZero()
		for i := range powers {
			powers[i].SetZero()
		}
	}()

	g1 := algebra.G1Generator()
	g2 := algebra.G2Generator()

	srs := &SRS{PowersG1: make([]algebra.G1Point, n+1)}
	srs.PowersG1[0] = g1
	copy(srs.PowersG1[1:], algebra.BatchPowersG1(&g1, powers))
	srs.PowersG2[0] = g2
	srs.PowersG2[1] = algebra.ScalarMulG2(&g2, &s)

	return srs, nil
}

// Truncate returns a view of the SRS restricted to capacity n. The returned
// SRS shares the backing power table; it must not be mutated.
func (s *SRS) Truncate(n int) (*SRS, error) {
	if n < 1 || n > s.Capacity() {
		return nil, fmt.Errorf("%w: cannot truncate capacity %d srs to %d", ErrParameter, s.Capacity(), n)
	}
	return &SRS{
		PowersG1: s.PowersG1[:n+1],
		PowersG2: s.PowersG2,
	}, nil
}

// Equal reports field-for-field equality of the two power tables.
func (s *SRS) Equal(o *SRS) bool {
	if len(s.PowersG1) != len(o.PowersG1) {
		return false
	}
	for i := range s.PowersG1 {
		if !s.PowersG1[i].Equal(&o.PowersG1[i]) {
			return false
		}
	}
	return s.PowersG2[0].Equal(&o.PowersG2[0]) && s.PowersG2[1].Equal(&o.PowersG2[1])
}

// Cache file layout: a fixed header followed by the curve-encoded points. The
// header records the capacity explicitly so a loader can validate the power
// table length before trusting the file.
const (
	srsMagic   = 0x5a535253 // "ZSRS"
	srsVersion = 1
)

type srsHeader struct {
	Magic    uint32
	Version  uint8
	Curve    uint16
	Capacity uint64
}

// WriteTo serializes the SRS in the versioned cache layout.
func (s *SRS) WriteTo(w io.Writer) (int64, error) {
	hdr := srsHeader{
		Magic:    srsMagic,
		Version:  srsVersion,
		Curve:    uint16(algebra.CurveID),
		Capacity: uint64(s.Capacity()),
	}
	if err := binary.Write(w, binary.BigEndian, hdr); err != nil {
		return 0, fmt.Errorf("%w: header: %v", ErrSerialization, err)
	}
	n := int64(binary.Size(hdr))

	enc := bls12381.NewEncoder(w)
	for _, v := range []interface{}{s.PowersG1, &s.PowersG2[0], &s.PowersG2[1]} {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	return n + enc.BytesWritten(), nil
}

// ReadFrom deserializes an SRS written by WriteTo. Point decoding includes
// curve and subgroup membership checks, so a structurally valid file always
// yields a usable SRS.
func (s *SRS) ReadFrom(r io.Reader) (int64, error) {
	var hdr srsHeader
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return 0, fmt.Errorf("%w: header: %v", ErrDeserialization, err)
	}
	n := int64(binary.Size(hdr))

	switch {
	case hdr.Magic != srsMagic:
		return n, fmt.Errorf("%w: bad magic 0x%x", ErrDeserialization, hdr.Magic)
	case hdr.Version != srsVersion:
		return n, fmt.Errorf("%w: unsupported version %d", ErrDeserialization, hdr.Version)
	case hdr.Curve != uint16(algebra.CurveID):
		return n, fmt.Errorf("%w: curve id %d, want %d", ErrDeserialization, hdr.Curve, uint16(algebra.CurveID))
	case hdr.Capacity < 1:
		return n, fmt.Errorf("%w: capacity %d", ErrDeserialization, hdr.Capacity)
	}

	dec := bls12381.NewDecoder(r)
	if err := dec.Decode(&s.PowersG1); err != nil {
		return n + dec.BytesRead(), fmt.Errorf("%w: g1 powers: %v", ErrDeserialization, err)
	}
	if uint64(len(s.PowersG1)) != hdr.Capacity+1 {
		return n + dec.BytesRead(), fmt.Errorf("%w: %d g1 powers for capacity %d",
			ErrDeserialization, len(s.PowersG1), hdr.Capacity)
	}
	for i := range s.PowersG2 {
		if err := dec.Decode(&s.PowersG2[i]); err != nil {
			return n + dec.BytesRead(), fmt.Errorf("%w: g2 powers: %v", ErrDeserialization, err)
		}
	}
	return n + dec.BytesRead(), nil
}

// ProvingKey is the prover-facing half of a preprocessed SRS: the G1 power
// table sized to the working degree.
type ProvingKey struct {
	G1 []algebra.G1Point
}

// VerifyingKey is the verifier-facing half: the two generators and s*g2,
// everything the pairing check needs. The verifier never needs s itself.
type VerifyingKey struct {
	GenG1 algebra.G1Point
	GenG2 algebra.G2Point
	SG2   algebra.G2Point
}

// ProvingKey extracts a proving key of capacity n from the SRS.
func (s *SRS) ProvingKey(n int) (*ProvingKey, error) {
	if n < 1 || n > s.Capacity() {
		return nil, fmt.Errorf("%w: proving key capacity %d from srs capacity %d", ErrParameter, n, s.Capacity())
	}
	return &ProvingKey{G1: s.PowersG1[:n+1]}, nil
}

// VerifyingKey extracts the verifier parameters from the SRS.
func (s *SRS) VerifyingKey() *VerifyingKey {
	return &VerifyingKey{
		GenG1: s.PowersG1[0],
		GenG2: s.PowersG2[0],
		SG2:   s.PowersG2[1],
	}
}
