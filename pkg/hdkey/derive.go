package hdkey

import (
	"encoding/binary"
	"fmt"
)

// DeriveChild derives the non-hardened child node at the given index,
// following the BIP32 CKD-pub function. The child inherits the parent's
// address type and network: both are tree-wide properties fixed at
// the root.
//
// The derivation is deterministic, the same (parent, index) pair always
// yields the same child. Calls on the same parent are independent and
// safe to run concurrently.
func (n Node) DeriveChild(index uint32) (Node, error) {
	if index >= HardenedKeyStart {
		return Node{}, fmt.Errorf("%w: index %d is in the hardened range",
			ErrHardenedDerivation, index)
	}

	parent, err := n.PubKey()
	if err != nil {
		return Node{}, err
	}

	data := make([]byte, PointSize+4)
	copy(data, n.Point)
	binary.BigEndian.PutUint32(data[PointSize:], index)

	i := hmacSHA512(n.ChainCode, data)
	il, ir := i[:32], i[32:]

	point, err := childPoint(parent, il)
	if err != nil {
		return Node{}, fmt.Errorf("deriving child %d: %w", index, err)
	}

	return Node{
		Level:             n.Level + 1,
		ParentFingerprint: Fingerprint(n.Point),
		ChildNumber:       index,
		ChainCode:         ir,
		Point:             point,
		AddressType:       n.AddressType,
		Network:           n.Network,
	}, nil
}

// DerivePath folds DeriveChild over a sequence of child indexes.
func (n Node) DerivePath(path []uint32) (Node, error) {
	node := n
	var err error
	for _, index := range path {
		node, err = node.DeriveChild(index)
		if err != nil {
			return Node{}, err
		}
	}
	return node, nil
}
