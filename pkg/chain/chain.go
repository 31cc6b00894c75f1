package chain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// BlockchainID identifies one of the blockchains supported by the vault.
// The numeric values are fixed by the wire format and must never be
// renumbered.
type BlockchainID int32

const (
	ChainUnspecified     BlockchainID = 0
	ChainBitcoin         BlockchainID = 1
	ChainGrin            BlockchainID = 2
	ChainEthereum        BlockchainID = 100
	ChainEthereumClassic BlockchainID = 101
	ChainLightning       BlockchainID = 1001
	ChainKovan           BlockchainID = 10002
	ChainTestnetBitcoin  BlockchainID = 10003
	ChainFloonet         BlockchainID = 10004
)

// ErrUnsupportedNetwork is returned when an operation is requested for a
// blockchain it cannot serve, e.g. a Bitcoin address encoding on Grin.
var ErrUnsupportedNetwork = fmt.Errorf("unsupported network")

var chainNames = map[BlockchainID]string{
	ChainUnspecified:     "unspecified",
	ChainBitcoin:         "bitcoin",
	ChainGrin:            "grin",
	ChainEthereum:        "ethereum",
	ChainEthereumClassic: "ethereum-classic",
	ChainLightning:       "lightning",
	ChainKovan:           "kovan",
	ChainTestnetBitcoin:  "testnet-bitcoin",
	ChainFloonet:         "floonet",
}

func (c BlockchainID) String() string {
	if name, ok := chainNames[c]; ok {
		return name
	}
	return fmt.Sprintf("blockchain(%d)", int32(c))
}

// IsValid reports whether c is one of the known blockchain values,
// including ChainUnspecified.
func (c BlockchainID) IsValid() bool {
	_, ok := chainNames[c]
	return ok
}

// IsBitcoin reports whether c belongs to the Bitcoin family of chains,
// those whose addresses are base58check or bech32 encoded.
func (c BlockchainID) IsBitcoin() bool {
	return c == ChainBitcoin || c == ChainTestnetBitcoin
}

// IsEthereum reports whether c belongs to the Ethereum family of chains,
// those whose addresses are EIP-55 encoded.
func (c BlockchainID) IsEthereum() bool {
	return c == ChainEthereum || c == ChainEthereumClassic || c == ChainKovan
}

// Params returns the chaincfg network parameters for a Bitcoin-family
// chain. Fails with ErrUnsupportedNetwork for every other chain.
func (c BlockchainID) Params() (*chaincfg.Params, error) {
	switch c {
	case ChainBitcoin:
		return &chaincfg.MainNetParams, nil
	case ChainTestnetBitcoin:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("%w: no bitcoin params for %s", ErrUnsupportedNetwork, c)
	}
}

// BlockchainFromWire maps a raw wire integer to a BlockchainID. Unknown
// values decode to ChainUnspecified so that vaults written by newer
// software with additional chains can still be read.
func BlockchainFromWire(v int32) BlockchainID {
	c := BlockchainID(v)
	if !c.IsValid() {
		return ChainUnspecified
	}
	return c
}
