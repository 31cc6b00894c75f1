package address

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/hdvault/hdvault/pkg/chain"
	"github.com/hdvault/hdvault/pkg/hdkey"
)

// Encode produces the address string of a key node, dispatching on its
// (address type, network) pair. Pure function of its input.
func Encode(node hdkey.Node) (string, error) {
	switch node.AddressType {
	case chain.AddressUnspecified:
		return "", ErrUnspecifiedAddressType
	case chain.AddressEthereum:
		return encodeEthereum(node)
	default:
		return encodeBitcoin(node)
	}
}

func encodeEthereum(node hdkey.Node) (string, error) {
	if !node.Network.IsEthereum() {
		return "", fmt.Errorf("%w: ethereum address type on %s",
			chain.ErrUnsupportedNetwork, node.Network)
	}
	pub, err := node.PubKey()
	if err != nil {
		return "", err
	}
	// Keccak256 over the uncompressed key minus the 0x04 prefix, last
	// 20 bytes, EIP-55 mixed-case checksum.
	return ethcrypto.PubkeyToAddress(*pub.ToECDSA()).Hex(), nil
}

func encodeBitcoin(node hdkey.Node) (string, error) {
	params, err := node.Network.Params()
	if err != nil {
		return "", err
	}

	var addr btcutil.Address
	switch node.AddressType {
	case chain.AddressP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(node.Point), params)

	case chain.AddressP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(node.Point), params)

	case chain.AddressP2SH:
		var redeem []byte
		redeem, err = payToPubKeyScript(node.Point)
		if err == nil {
			addr, err = btcutil.NewAddressScriptHash(redeem, params)
		}

	case chain.AddressP2WSH:
		var program [sha256.Size]byte
		program, err = witnessProgramV0(node.Point)
		if err == nil {
			addr, err = btcutil.NewAddressWitnessScriptHash(program[:], params)
		}

	case chain.AddressP2WPKHInP2SH:
		var nested []byte
		nested, err = nestedWitnessScript(btcutil.Hash160(node.Point))
		if err == nil {
			addr, err = btcutil.NewAddressScriptHash(nested, params)
		}

	case chain.AddressP2WSHInP2SH:
		var program [sha256.Size]byte
		program, err = witnessProgramV0(node.Point)
		if err == nil {
			var nested []byte
			nested, err = nestedWitnessScript(program[:])
			if err == nil {
				addr, err = btcutil.NewAddressScriptHash(nested, params)
			}
		}

	default:
		return "", fmt.Errorf("%w: cannot encode %s on %s",
			chain.ErrUnsupportedNetwork, node.AddressType, node.Network)
	}

	if err != nil {
		return "", fmt.Errorf("encoding %s address: %w", node.AddressType, err)
	}
	return addr.EncodeAddress(), nil
}

// payToPubKeyScript is the single-key redeem/witness script
// "<pubkey> OP_CHECKSIG" used for script-hash encodings of one key.
func payToPubKeyScript(point []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(point).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// witnessProgramV0 is the sha256 of the single-key witness script, the
// 32-byte program of a version 0 P2WSH output.
func witnessProgramV0(point []byte) ([sha256.Size]byte, error) {
	script, err := payToPubKeyScript(point)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(script), nil
}

// nestedWitnessScript wraps a witness program in the version 0 script
// that gets hashed into a P2SH address.
func nestedWitnessScript(program []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(program).
		Script()
}
