package chain

import "fmt"

// AddressType selects the address encoding of a key node. Like
// BlockchainID, the numeric values are part of the wire format.
type AddressType int32

const (
	AddressUnspecified  AddressType = 0
	AddressP2WPKH       AddressType = 1
	AddressP2WSH        AddressType = 2
	AddressP2PKH        AddressType = 3
	AddressP2SH         AddressType = 4
	AddressP2WPKHInP2SH AddressType = 5
	AddressP2WSHInP2SH  AddressType = 6
	AddressEthereum     AddressType = 7
)

var addressTypeNames = map[AddressType]string{
	AddressUnspecified:  "unspecified",
	AddressP2WPKH:       "p2wpkh",
	AddressP2WSH:        "p2wsh",
	AddressP2PKH:        "p2pkh",
	AddressP2SH:         "p2sh",
	AddressP2WPKHInP2SH: "p2wpkh-in-p2sh",
	AddressP2WSHInP2SH:  "p2wsh-in-p2sh",
	AddressEthereum:     "ethereum",
}

func (t AddressType) String() string {
	if name, ok := addressTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("address-type(%d)", int32(t))
}

// IsValid reports whether t is one of the known address types,
// including AddressUnspecified.
func (t AddressType) IsValid() bool {
	_, ok := addressTypeNames[t]
	return ok
}

// Compatible reports whether an address type can be encoded for the
// given blockchain. AddressUnspecified and ChainUnspecified are
// considered compatible with anything: the mismatch only becomes an
// error once an actual encoding is requested.
func (t AddressType) Compatible(c BlockchainID) bool {
	if t == AddressUnspecified || c == ChainUnspecified {
		return true
	}
	if t == AddressEthereum {
		return c.IsEthereum()
	}
	return c.IsBitcoin()
}

// AddressTypeFromWire maps a raw wire integer to an AddressType.
// Unknown values decode to AddressUnspecified.
func AddressTypeFromWire(v int32) AddressType {
	t := AddressType(v)
	if !t.IsValid() {
		return AddressUnspecified
	}
	return t
}
