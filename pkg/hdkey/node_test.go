package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdvault/hdvault/pkg/chain"
)

// master node of the BIP39 "abandon ... about" test seed
const (
	testPoint     = "03d902f35f560e0470c63313c7369168d9d7df2d49bf295fd9fb7cb109ccee0494"
	testChainCode = "7923408dadd3c7b56eed15567707ae5e5dca089de972e07f3b860450e2a3b70e"
)

// x=5 has no point on secp256k1
const offCurvePoint = "020000000000000000000000000000000000000000000000000000000000000005"

func newTestRoot(t *testing.T, addrType chain.AddressType, network chain.BlockchainID) Node {
	t.Helper()
	point, err := hex.DecodeString(testPoint)
	require.NoError(t, err)
	chainCode, err := hex.DecodeString(testChainCode)
	require.NoError(t, err)

	node, err := NewNode(NewNodeOpts{
		ChainCode:   chainCode,
		Point:       point,
		AddressType: addrType,
		Network:     network,
	})
	require.NoError(t, err)
	return node
}

func TestNewNode(t *testing.T) {
	node := newTestRoot(t, chain.AddressP2WPKH, chain.ChainBitcoin)

	assert.True(t, node.IsRoot())
	assert.False(t, node.Hardened())
	assert.Equal(t, uint8(0), node.Level)
	assert.Equal(t, uint32(0), node.ParentFingerprint)
	assert.Equal(t, uint32(0), node.ChildNumber)

	pub, err := node.PubKey()
	require.NoError(t, err)
	assert.Equal(t, node.Point, pub.SerializeCompressed())
}

func TestNewNodeCopiesBytes(t *testing.T) {
	point, _ := hex.DecodeString(testPoint)
	chainCode, _ := hex.DecodeString(testChainCode)

	node, err := NewNode(NewNodeOpts{
		ChainCode: chainCode,
		Point:     point,
	})
	require.NoError(t, err)

	chainCode[0] ^= 0xff
	point[1] ^= 0xff
	expectedCC, _ := hex.DecodeString(testChainCode)
	expectedPoint, _ := hex.DecodeString(testPoint)
	assert.Equal(t, expectedCC, node.ChainCode)
	assert.Equal(t, expectedPoint, node.Point)
}

func TestNewNodeRejectsMalformed(t *testing.T) {
	point, _ := hex.DecodeString(testPoint)
	chainCode, _ := hex.DecodeString(testChainCode)
	offCurve, _ := hex.DecodeString(offCurvePoint)

	tests := []struct {
		name string
		opts NewNodeOpts
	}{
		{
			name: "short chain code",
			opts: NewNodeOpts{ChainCode: chainCode[:31], Point: point},
		},
		{
			name: "short point",
			opts: NewNodeOpts{ChainCode: chainCode, Point: point[:32]},
		},
		{
			name: "off-curve point",
			opts: NewNodeOpts{ChainCode: chainCode, Point: offCurve},
		},
		{
			name: "root with parent fingerprint",
			opts: NewNodeOpts{ChainCode: chainCode, Point: point, ParentFingerprint: 1},
		},
		{
			name: "root with child number",
			opts: NewNodeOpts{ChainCode: chainCode, Point: point, ChildNumber: 5},
		},
		{
			name: "non-root without parent fingerprint",
			opts: NewNodeOpts{ChainCode: chainCode, Point: point, Level: 1},
		},
		{
			name: "ethereum address type on bitcoin",
			opts: NewNodeOpts{
				ChainCode: chainCode, Point: point,
				AddressType: chain.AddressEthereum, Network: chain.ChainBitcoin,
			},
		},
		{
			name: "bitcoin address type on ethereum",
			opts: NewNodeOpts{
				ChainCode: chainCode, Point: point,
				AddressType: chain.AddressP2WPKH, Network: chain.ChainEthereum,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNode(tt.opts)
			assert.ErrorIs(t, err, ErrMalformedNode)
		})
	}
}

func TestNewNodeAcceptsHardenedChildNumber(t *testing.T) {
	// account-level xpubs carry a hardened child number; they are valid
	// public data even though this engine could not have derived them
	point, _ := hex.DecodeString(testPoint)
	chainCode, _ := hex.DecodeString(testChainCode)

	node, err := NewNode(NewNodeOpts{
		Level:             3,
		ParentFingerprint: 0x5c1bd648,
		ChildNumber:       HardenedKeyStart,
		ChainCode:         chainCode,
		Point:             point,
	})
	require.NoError(t, err)
	assert.True(t, node.Hardened())
	assert.False(t, node.IsRoot())
}

func TestNewNodeAcceptsUnspecifiedPairs(t *testing.T) {
	// forward compat: records written for chains this build does not
	// know decode to unspecified and must still construct
	point, _ := hex.DecodeString(testPoint)
	chainCode, _ := hex.DecodeString(testChainCode)

	_, err := NewNode(NewNodeOpts{
		ChainCode:   chainCode,
		Point:       point,
		AddressType: chain.AddressP2WPKH,
		Network:     chain.ChainUnspecified,
	})
	assert.NoError(t, err)
}

func TestXPub(t *testing.T) {
	node := newTestRoot(t, chain.AddressP2PKH, chain.ChainBitcoin)
	xpub, err := node.XPub()
	require.NoError(t, err)
	assert.Equal(
		t,
		"xpub661MyMwAqRbcFkPHucMnrGNzDwb6teAX1RbKQmqtEF8kK3Z7LZ59qafCjB9eCRLiTVG3uxBxgKvRgbubRhqSKXnGGb1aoaqLrpMBDrVxga8",
		xpub,
	)

	testnet := newTestRoot(t, chain.AddressP2PKH, chain.ChainTestnetBitcoin)
	tpub, err := testnet.XPub()
	require.NoError(t, err)
	assert.Equal(
		t,
		"tpubD6NzVbkrYhZ4XYa9MoLt4BiMZ4gkt2faZ4BcmKu2a9te4LDpQmvEz2L2yDERivHxFPnxXXhqDRkUNnQCpZggCyEZLBktV7VaSmwayqMJy1s",
		tpub,
	)
}

func TestXPubUnsupportedNetwork(t *testing.T) {
	node := newTestRoot(t, chain.AddressEthereum, chain.ChainEthereum)
	_, err := node.XPub()
	assert.ErrorIs(t, err, chain.ErrUnsupportedNetwork)
}
