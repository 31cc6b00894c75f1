package storage

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/hdvault/hdvault/pkg/chain"
	"github.com/hdvault/hdvault/pkg/hdkey"
)

// ErrInvalidMnemonic is returned when a mnemonic fails the BIP39
// wordlist/checksum validation.
var ErrInvalidMnemonic = fmt.Errorf("mnemonic is invalid")

// NewMnemonic generates a fresh mnemonic from the given entropy size in
// bits (a multiple of 32 in [128, 256]).
func NewMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

// SeedFromMnemonic derives the BIP39 seed of a mnemonic.
func SeedFromMnemonic(mnemonic []string, passphrase string) ([]byte, error) {
	m := strings.Join(mnemonic, " ")
	if !bip39.IsMnemonicValid(m) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(m, passphrase), nil
}

// NewRootFromSeed builds the root public node of a derivation tree from
// a BIP39 seed. The extended private key exists only inside this
// function; callers get public material only.
func NewRootFromSeed(
	seed []byte,
	addrType chain.AddressType, network chain.BlockchainID,
) (hdkey.Node, error) {
	// hdkeychain needs version bytes even though only the key material
	// matters here; non-bitcoin chains borrow the mainnet ones.
	params, err := network.Params()
	if err != nil {
		params = &chaincfg.MainNetParams
	}

	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return hdkey.Node{}, fmt.Errorf("creating master key: %w", err)
	}
	defer master.Zero()

	neutered, err := master.Neuter()
	if err != nil {
		return hdkey.Node{}, fmt.Errorf("neutering master key: %w", err)
	}
	pubKey, err := neutered.ECPubKey()
	if err != nil {
		return hdkey.Node{}, err
	}

	return hdkey.NewNode(hdkey.NewNodeOpts{
		Level:       0,
		ChainCode:   neutered.ChainCode(),
		Point:       pubKey.SerializeCompressed(),
		AddressType: addrType,
		Network:     network,
	})
}
