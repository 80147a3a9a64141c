package setup

import "github.com/consensys/gnark-crypto/ecc"

// DegreeForConstraints converts a circuit constraint count into the SRS
// capacity the commitment scheme works at: the smallest power of two that
// fits the system. A count of zero sizes to 1 so that even a degenerate
// circuit gets a usable SRS.
func DegreeForConstraints(nbConstraints int) int {
	if nbConstraints <= 1 {
		return 1
	}
	return int(ecc.NextPowerOfTwo(uint64(nbConstraints)))
}
