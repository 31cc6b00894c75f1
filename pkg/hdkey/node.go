package hdkey

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/hdvault/hdvault/pkg/chain"
)

const (
	// ChainCodeSize is the size in bytes of a BIP32 chain code.
	ChainCodeSize = 32
	// PointSize is the size in bytes of a compressed secp256k1 point.
	PointSize = 33
	// HardenedKeyStart is the first child index in the hardened range.
	HardenedKeyStart uint32 = 0x80000000
)

// Node is one node of a hierarchical-deterministic public key tree: a
// compressed public key plus the chain code and path metadata needed to
// derive non-hardened children. A Node carries no private material.
//
// Nodes are immutable once built: DeriveChild returns a fresh Node and
// never touches its receiver, so a Node can be shared freely across
// goroutines.
type Node struct {
	Level             uint8
	ParentFingerprint uint32
	ChildNumber       uint32
	ChainCode         []byte
	Point             []byte
	AddressType       chain.AddressType
	Network           chain.BlockchainID
}

// NewNodeOpts is the struct given to the NewNode method.
type NewNodeOpts struct {
	Level             uint8
	ParentFingerprint uint32
	ChildNumber       uint32
	ChainCode         []byte
	Point             []byte
	AddressType       chain.AddressType
	Network           chain.BlockchainID
}

func (o NewNodeOpts) validate() error {
	if len(o.ChainCode) != ChainCodeSize {
		return fmt.Errorf("%w: chain code must be %d bytes, got %d",
			ErrMalformedNode, ChainCodeSize, len(o.ChainCode))
	}
	if len(o.Point) != PointSize {
		return fmt.Errorf("%w: point must be %d bytes, got %d",
			ErrMalformedNode, PointSize, len(o.Point))
	}
	if _, err := btcec.ParsePubKey(o.Point); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedNode, ErrInvalidPoint)
	}
	isRoot := o.ParentFingerprint == 0 && o.ChildNumber == 0
	if (o.Level == 0) != isRoot {
		return fmt.Errorf(
			"%w: a root node has level 0, parent fingerprint 0 and child number 0",
			ErrMalformedNode,
		)
	}
	if !o.AddressType.Compatible(o.Network) {
		return fmt.Errorf("%w: address type %s cannot be used on %s",
			ErrMalformedNode, o.AddressType, o.Network)
	}
	return nil
}

// NewNode validates the given fields and returns an immutable key node.
// The chain code and point bytes are copied, the caller keeps ownership
// of its slices.
func NewNode(opts NewNodeOpts) (Node, error) {
	if err := opts.validate(); err != nil {
		return Node{}, err
	}
	return Node{
		Level:             opts.Level,
		ParentFingerprint: opts.ParentFingerprint,
		ChildNumber:       opts.ChildNumber,
		ChainCode:         append([]byte(nil), opts.ChainCode...),
		Point:             append([]byte(nil), opts.Point...),
		AddressType:       opts.AddressType,
		Network:           opts.Network,
	}, nil
}

// IsRoot reports whether the node is the root of its derivation tree.
func (n Node) IsRoot() bool {
	return n.Level == 0
}

// Hardened reports whether the node itself was produced by a hardened
// derivation step. Such nodes are valid public data (the hardened step
// was performed by whoever held the private key) but deriving further
// hardened children from them is impossible here.
func (n Node) Hardened() bool {
	return n.ChildNumber >= HardenedKeyStart
}

// PubKey parses the node's compressed point.
func (n Node) PubKey() (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(n.Point)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPoint, err)
	}
	return pub, nil
}

// XPub serializes the node in the standard base58check extended-key
// format. Only meaningful for Bitcoin-family networks, which define the
// xpub/tpub version bytes.
func (n Node) XPub() (string, error) {
	params, err := n.Network.Params()
	if err != nil {
		return "", err
	}
	var parentFP [4]byte
	parentFP[0] = byte(n.ParentFingerprint >> 24)
	parentFP[1] = byte(n.ParentFingerprint >> 16)
	parentFP[2] = byte(n.ParentFingerprint >> 8)
	parentFP[3] = byte(n.ParentFingerprint)
	key := hdkeychain.NewExtendedKey(
		params.HDPublicKeyID[:], n.Point, n.ChainCode, parentFP[:],
		n.Level, n.ChildNumber, false,
	)
	return key.String(), nil
}
