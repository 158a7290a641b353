package ecmap

import "errors"

// Errors returned by map construction and the mapping operations. All are
// surfaced synchronously; the operations are pure, so none are retryable.
var (
	// ErrMissingModulus is returned when the config has no field modulus.
	ErrMissingModulus = errors.New("ecmap: field modulus is required")

	// ErrZeroCoefficient is returned when a curve coefficient is zero. The
	// base map divides by A and scales by B, so both must be non-zero;
	// curves that violate this are reached through the isogeny adapter.
	ErrZeroCoefficient = errors.New("ecmap: curve coefficients A and B must be non-zero")

	// ErrMissingAnchor is returned when no anchor abscissa is configured.
	ErrMissingAnchor = errors.New("ecmap: anchor x-coordinate is required")

	// ErrInvalidNonSquare is returned when the configured delta constant is
	// a quadratic residue.
	ErrInvalidNonSquare = errors.New("ecmap: delta must be a quadratic non-residue")

	// ErrNonSquareRequired is returned when a mapping input that must be a
	// non-square turns out to be square.
	ErrNonSquareRequired = errors.New("ecmap: input must be a quadratic non-residue")

	// ErrInvalidSignBit is returned for sign arguments outside {0, 1}.
	ErrInvalidSignBit = errors.New("ecmap: sign bit must be 0 or 1")

	// ErrIdentityImage is returned when the base map yields the identity
	// for an input other than -1. This cannot happen on a well-formed
	// curve; it signals a misconfiguration, not a bad runtime input.
	ErrIdentityImage = errors.New("ecmap: base map produced the identity unexpectedly")

	// ErrNilIsogeny is returned when the adapter is built without a map.
	ErrNilIsogeny = errors.New("ecmap: isogeny must not be nil")
)
