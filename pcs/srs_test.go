package pcs

import (
	"bytes"
	"errors"
	mrand "math/rand"
	"testing"

	"github.com/findora-crypto/zei/algebra"
)

func TestGenerateSRSShape(t *testing.T) {
	const n = 8
	srs := testSRS(t, n)

	if got := len(srs.PowersG1); got != n+1 {
		t.Fatalf("len(PowersG1) = %d, want %d", got, n+1)
	}
	if srs.Capacity() != n {
		t.Errorf("Capacity() = %d, want %d", srs.Capacity(), n)
	}
	g1 := algebra.G1Generator()
	g2 := algebra.G2Generator()
	if !srs.PowersG1[0].Equal(&g1) {
		t.Errorf("PowersG1[0] is not the G1 generator")
	}
	if !srs.PowersG2[0].Equal(&g2) {
		t.Errorf("PowersG2[0] is not the G2 generator")
	}
}

func TestGenerateSRSConsistency(t *testing.T) {
	// Without knowing s, the power structure is still checkable through the
	// pairing: e(s^(i+1)*g1, g2) == e(s^i*g1, s*g2).
	srs := testSRS(t, 4)
	for i := 0; i+1 < len(srs.PowersG1); i++ {
		ok, err := algebra.PairingEqual(&srs.PowersG1[i+1], &srs.PowersG2[0], &srs.PowersG1[i], &srs.PowersG2[1])
		if err != nil {
			t.Fatalf("pairing check failed at power %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("power %d is inconsistent with the trapdoor", i+1)
		}
	}
}

func TestGenerateSRSRejectsBadInput(t *testing.T) {
	if _, err := GenerateSRS(0, mrand.New(mrand.NewSource(1))); !errors.Is(err, ErrParameter) {
		t.Errorf("GenerateSRS(0): err = %v, want ErrParameter", err)
	}
	if _, err := GenerateSRS(4, nil); !errors.Is(err, ErrParameter) {
		t.Errorf("GenerateSRS(nil rng): err = %v, want ErrParameter", err)
	}
}

func TestSRSSerializationRoundTrip(t *testing.T) {
	srs := testSRS(t, 8)

	var buf bytes.Buffer
	written, err := srs.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer holds %d", written, buf.Len())
	}

	var loaded SRS
	read, err := loaded.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if read != written {
		t.Errorf("ReadFrom consumed %d bytes, want %d", read, written)
	}
	if !srs.Equal(&loaded) {
		t.Errorf("round-tripped SRS differs field-for-field from the original")
	}
}

func TestSRSReadRejectsCorruptData(t *testing.T) {
	srs := testSRS(t, 4)
	var buf bytes.Buffer
	if _, err := srs.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	// Bad magic
	corrupt := append([]byte(nil), buf.Bytes()...)
	corrupt[0] ^= 0xff
	var s1 SRS
	if _, err := s1.ReadFrom(bytes.NewReader(corrupt)); !errors.Is(err, ErrDeserialization) {
		t.Errorf("bad magic: err = %v, want ErrDeserialization", err)
	}

	// Truncated point data
	var s2 SRS
	if _, err := s2.ReadFrom(bytes.NewReader(buf.Bytes()[:buf.Len()-10])); !errors.Is(err, ErrDeserialization) {
		t.Errorf("truncated file: err = %v, want ErrDeserialization", err)
	}
}

func TestSRSTruncate(t *testing.T) {
	srs := testSRS(t, 8)

	small, err := srs.Truncate(4)
	if err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}
	if small.Capacity() != 4 {
		t.Errorf("truncated capacity = %d, want 4", small.Capacity())
	}
	for i := range small.PowersG1 {
		if !small.PowersG1[i].Equal(&srs.PowersG1[i]) {
			t.Fatalf("truncated PowersG1[%d] differs from the original", i)
		}
	}

	if _, err := srs.Truncate(9); !errors.Is(err, ErrParameter) {
		t.Errorf("Truncate above capacity: err = %v, want ErrParameter", err)
	}
}

func TestSRSKeySplit(t *testing.T) {
	srs := testSRS(t, 8)

	pk, err := srs.ProvingKey(4)
	if err != nil {
		t.Fatalf("ProvingKey failed: %v", err)
	}
	if len(pk.G1) != 5 {
		t.Errorf("proving key holds %d powers, want 5", len(pk.G1))
	}

	vk := srs.VerifyingKey()
	if !vk.GenG1.Equal(&srs.PowersG1[0]) || !vk.GenG2.Equal(&srs.PowersG2[0]) || !vk.SG2.Equal(&srs.PowersG2[1]) {
		t.Errorf("verifying key does not match the SRS public elements")
	}
}
