package hdkey

import "errors"

var (
	// ErrInvalidPoint is returned when key bytes do not decode to a
	// point on the secp256k1 curve.
	ErrInvalidPoint = errors.New("point is not on the secp256k1 curve")
	// ErrHardenedDerivation is returned when a child index in the
	// hardened range is requested. Hardened derivation needs the parent
	// private key, which a public-only node does not carry.
	ErrHardenedDerivation = errors.New("hardened derivation requires the private key")
	// ErrInvalidDerivation is returned on the astronomically rare child
	// indexes for which BIP32 defines no valid key. The failure is
	// deterministic: retrying the same index reproduces it, callers
	// should skip to the next index instead.
	ErrInvalidDerivation = errors.New("index has no valid child key")
	// ErrMalformedNode is returned when node fields fail validation at
	// construction time, before any derivation is attempted.
	ErrMalformedNode = errors.New("malformed key node")

	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
)
