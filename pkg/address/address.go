// Package address maps HD key nodes to chain-specific address strings
// and models the vault's address record: either a derivable extended
// public key or an opaque, terminal address string.
package address

import (
	"errors"

	"github.com/hdvault/hdvault/pkg/hdkey"
)

var (
	// ErrUnspecifiedAddressType is returned when encoding a node whose
	// address type was never set.
	ErrUnspecifiedAddressType = errors.New("address type is unspecified")
	// ErrEmptyAddress is returned when decoding an address record that
	// carries neither a key node nor a plain address string.
	ErrEmptyAddress = errors.New("address carries no value")
)

// Address is a tagged union: an xpub-form address holding a derivable
// key node, or a plain address string with no derivation capability.
// Exactly one of the two cases is set.
type Address struct {
	node  *hdkey.Node
	plain string
}

// FromNode builds the derivable, xpub-form address case.
func FromNode(node hdkey.Node) Address {
	return Address{node: &node}
}

// FromPlain builds the opaque, terminal address case.
func FromPlain(addr string) Address {
	return Address{plain: addr}
}

// Node returns the key node case, if set.
func (a Address) Node() (hdkey.Node, bool) {
	if a.node == nil {
		return hdkey.Node{}, false
	}
	return *a.node, true
}

// Plain returns the plain string case, if set.
func (a Address) Plain() (string, bool) {
	if a.node != nil {
		return "", false
	}
	return a.plain, true
}

// Derivable reports whether the address can derive further children,
// i.e. whether it is the key node case.
func (a Address) Derivable() bool {
	return a.node != nil
}

// String renders the plain case directly and encodes the node case.
// An encoding failure renders as an empty string; callers that must
// distinguish use Encode directly.
func (a Address) String() string {
	if a.node != nil {
		encoded, err := Encode(*a.node)
		if err != nil {
			return ""
		}
		return encoded
	}
	return a.plain
}
