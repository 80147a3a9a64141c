package pcs

import "errors"

var (
	// ErrDegreeExceeded is returned by Commit and Open when the polynomial
	// degree is larger than the SRS capacity. Recoverable by the caller.
	ErrDegreeExceeded = errors.New("pcs: polynomial degree exceeds srs capacity")

	// ErrParameter signals an unexpected parameter for a method or function.
	ErrParameter = errors.New("pcs: unexpected parameter")

	// ErrSerialization signals that an SRS could not be serialized.
	ErrSerialization = errors.New("pcs: could not serialize srs")

	// ErrDeserialization signals a structurally invalid SRS encoding. Callers
	// holding commitments issued against the cached SRS must treat this as
	// fatal rather than regenerate.
	ErrDeserialization = errors.New("pcs: could not deserialize srs")

	// ErrNotInSubgroup is returned by Verify when a commitment or proof is not
	// a valid G1 subgroup element. Distinct from a false verification result.
	ErrNotInSubgroup = errors.New("pcs: group element not in expected subgroup")
)
