package vault

import (
	"fmt"

	"github.com/hdvault/hdvault/pkg/address"
	"github.com/hdvault/hdvault/pkg/hdkey"
)

// EncodeStep marks a ResolverError raised by the final address
// encoding rather than by a derivation step.
const EncodeStep = -1

// ResolverError reports which step of an address resolution failed.
// FailedAtIndex is the position of the failing path segment, or
// EncodeStep when every derivation succeeded and the address encoding
// failed instead.
type ResolverError struct {
	FailedAtIndex int
	Cause         error
}

func (e *ResolverError) Error() string {
	if e.FailedAtIndex == EncodeStep {
		return fmt.Sprintf("resolving address: encoding failed: %s", e.Cause)
	}
	return fmt.Sprintf("resolving address: path segment %d failed: %s",
		e.FailedAtIndex, e.Cause)
}

func (e *ResolverError) Unwrap() error {
	return e.Cause
}

// ResolveAddress walks the derivation path from the root node and
// encodes the final node, short-circuiting on the first failure.
// Stateless: concurrent calls with disjoint or shared inputs are safe.
func ResolveAddress(root hdkey.Node, path []uint32) (address.Address, error) {
	node, err := resolveNode(root, path)
	if err != nil {
		return address.Address{}, err
	}
	encoded, err := address.Encode(node)
	if err != nil {
		return address.Address{}, &ResolverError{FailedAtIndex: EncodeStep, Cause: err}
	}
	return address.FromPlain(encoded), nil
}

// ResolveNode walks the derivation path and returns the final node
// without encoding it, for callers that need the xpub form.
func ResolveNode(root hdkey.Node, path []uint32) (hdkey.Node, error) {
	return resolveNode(root, path)
}

func resolveNode(root hdkey.Node, path []uint32) (hdkey.Node, error) {
	node := root
	for i, index := range path {
		child, err := node.DeriveChild(index)
		if err != nil {
			return hdkey.Node{}, &ResolverError{FailedAtIndex: i, Cause: err}
		}
		node = child
	}
	return node, nil
}
