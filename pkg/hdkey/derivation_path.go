package hdkey

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// DerivationPath is the internal representation of a key derivation
// path, one child index per tree level.
type DerivationPath []uint32

// ParseDerivationPath converts a derivation path string like "m/0/5" to
// the internal binary representation. A trailing apostrophe marks a
// hardened index; such paths parse fine but cannot be walked by the
// public-only engine.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if containsEmptyString(elems) {
		return nil, ErrMalformedDerivationPath
	}
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}
	if len(elems) == 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "'") {
			value = HardenedKeyStart
			elem = strings.TrimSpace(strings.TrimSuffix(elem, "'"))
		}

		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// String converts a binary derivation path to its canonical
// representation.
func (path DerivationPath) String() string {
	if len(path) == 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= HardenedKeyStart {
			component -= HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

// HasHardened reports whether any component of the path is in the
// hardened range.
func (path DerivationPath) HasHardened() bool {
	for _, component := range path {
		if component >= HardenedKeyStart {
			return true
		}
	}
	return false
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
