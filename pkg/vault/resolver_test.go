package vault

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdvault/hdvault/pkg/address"
	"github.com/hdvault/hdvault/pkg/chain"
	"github.com/hdvault/hdvault/pkg/hdkey"
)

// master node of the BIP39 "abandon ... about" test seed
const (
	testPoint     = "03d902f35f560e0470c63313c7369168d9d7df2d49bf295fd9fb7cb109ccee0494"
	testChainCode = "7923408dadd3c7b56eed15567707ae5e5dca089de972e07f3b860450e2a3b70e"
)

func newTestRoot(t *testing.T, addrType chain.AddressType, network chain.BlockchainID) hdkey.Node {
	t.Helper()
	point, err := hex.DecodeString(testPoint)
	require.NoError(t, err)
	chainCode, err := hex.DecodeString(testChainCode)
	require.NoError(t, err)

	node, err := hdkey.NewNode(hdkey.NewNodeOpts{
		ChainCode:   chainCode,
		Point:       point,
		AddressType: addrType,
		Network:     network,
	})
	require.NoError(t, err)
	return node
}

func TestResolveAddressTestnetVector(t *testing.T) {
	root := newTestRoot(t, chain.AddressP2WPKH, chain.ChainTestnetBitcoin)

	addr, err := ResolveAddress(root, []uint32{0, 5})
	require.NoError(t, err)

	plain, ok := addr.Plain()
	assert.True(t, ok)
	assert.False(t, addr.Derivable())
	assert.Equal(t, "tb1qelel4u973yc4yd54pe03lejlpk3plamq43056f", plain)
}

func TestResolveAddressMatchesManualDerivation(t *testing.T) {
	root := newTestRoot(t, chain.AddressP2WPKH, chain.ChainBitcoin)

	resolved, err := ResolveAddress(root, []uint32{0, 0})
	require.NoError(t, err)

	step, err := root.DeriveChild(0)
	require.NoError(t, err)
	leaf, err := step.DeriveChild(0)
	require.NoError(t, err)
	encoded, err := address.Encode(leaf)
	require.NoError(t, err)

	assert.Equal(t, encoded, resolved.String())
}

func TestResolveAddressEmptyPath(t *testing.T) {
	// an empty path encodes the root itself
	root := newTestRoot(t, chain.AddressP2WPKH, chain.ChainBitcoin)
	addr, err := ResolveAddress(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "bc1qw0za5zsr6tggqwmnruzzg2a5pnkjlzaus8upyg", addr.String())
}

func TestResolveAddressReportsFailingSegment(t *testing.T) {
	root := newTestRoot(t, chain.AddressP2WPKH, chain.ChainBitcoin)

	_, err := ResolveAddress(root, []uint32{0, hdkey.HardenedKeyStart + 44, 0})
	require.Error(t, err)

	var resolverErr *ResolverError
	require.ErrorAs(t, err, &resolverErr)
	assert.Equal(t, 1, resolverErr.FailedAtIndex)
	assert.ErrorIs(t, err, hdkey.ErrHardenedDerivation)
}

func TestResolveAddressReportsEncodeFailure(t *testing.T) {
	root := newTestRoot(t, chain.AddressUnspecified, chain.ChainBitcoin)

	_, err := ResolveAddress(root, []uint32{0, 0})
	require.Error(t, err)

	var resolverErr *ResolverError
	require.ErrorAs(t, err, &resolverErr)
	assert.Equal(t, EncodeStep, resolverErr.FailedAtIndex)
	assert.ErrorIs(t, err, address.ErrUnspecifiedAddressType)
}

func TestResolveNode(t *testing.T) {
	root := newTestRoot(t, chain.AddressP2WPKH, chain.ChainBitcoin)

	node, err := ResolveNode(root, []uint32{0, 5})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), node.Level)
	assert.Equal(
		t,
		"020feca84486dfc16d4cc8643e243cb50eb64d856a25c5caa14659d8e2784854f6",
		hex.EncodeToString(node.Point),
	)
}
