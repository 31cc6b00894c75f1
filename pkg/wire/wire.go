// Package wire is the binary codec for vault records. Messages use the
// protobuf wire format (varint tags, length-delimited bytes) via
// protowire, with the field numbers of the vault schema:
//
//	Bip32Public: 1 level, 2 parent_fingerprint, 3 child_number,
//	             4 chaincode, 5 point, 6 address_type, 7 network
//	Address:     oneof { 1 bip32 (Bip32Public), 2 plain (string) }
//	File:        1 file_type, 2 id (16 bytes)
//
// Unknown field numbers are skipped and unknown enum values decode to
// their unspecified variant, so records written by newer software stay
// readable.
package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/hdvault/hdvault/pkg/address"
	"github.com/hdvault/hdvault/pkg/chain"
	"github.com/hdvault/hdvault/pkg/hdkey"
	"github.com/hdvault/hdvault/pkg/vault"
)

// ErrMalformedMessage is returned when message bytes cannot be decoded
// into a structurally valid record.
var ErrMalformedMessage = errors.New("malformed wire message")

const (
	nodeFieldLevel             = 1
	nodeFieldParentFingerprint = 2
	nodeFieldChildNumber       = 3
	nodeFieldChainCode         = 4
	nodeFieldPoint             = 5
	nodeFieldAddressType       = 6
	nodeFieldNetwork           = 7

	addressFieldNode  = 1
	addressFieldPlain = 2

	fileFieldType = 1
	fileFieldID   = 2
)

// MarshalNode encodes a key node as a Bip32Public message.
func MarshalNode(n hdkey.Node) []byte {
	var b []byte
	if n.Level != 0 {
		b = protowire.AppendTag(b, nodeFieldLevel, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.Level))
	}
	if n.ParentFingerprint != 0 {
		b = protowire.AppendTag(b, nodeFieldParentFingerprint, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.ParentFingerprint))
	}
	if n.ChildNumber != 0 {
		b = protowire.AppendTag(b, nodeFieldChildNumber, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.ChildNumber))
	}
	b = protowire.AppendTag(b, nodeFieldChainCode, protowire.BytesType)
	b = protowire.AppendBytes(b, n.ChainCode)
	b = protowire.AppendTag(b, nodeFieldPoint, protowire.BytesType)
	b = protowire.AppendBytes(b, n.Point)
	if n.AddressType != chain.AddressUnspecified {
		b = protowire.AppendTag(b, nodeFieldAddressType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.AddressType))
	}
	if n.Network != chain.ChainUnspecified {
		b = protowire.AppendTag(b, nodeFieldNetwork, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.Network))
	}
	return b
}

// UnmarshalNode decodes a Bip32Public message and validates the result
// as a key node, so malformed records fail here, before any derivation
// is attempted.
func UnmarshalNode(b []byte) (hdkey.Node, error) {
	var opts hdkey.NewNodeOpts
	err := scanFields(b, func(num protowire.Number, b []byte) (int, error) {
		switch num {
		case nodeFieldLevel:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			if v > math.MaxUint8 {
				return 0, fmt.Errorf("level %d overflows", v)
			}
			opts.Level = uint8(v)
			return n, nil
		case nodeFieldParentFingerprint:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			if v > math.MaxUint32 {
				return 0, fmt.Errorf("parent fingerprint %d overflows", v)
			}
			opts.ParentFingerprint = uint32(v)
			return n, nil
		case nodeFieldChildNumber:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			if v > math.MaxUint32 {
				return 0, fmt.Errorf("child number %d overflows", v)
			}
			opts.ChildNumber = uint32(v)
			return n, nil
		case nodeFieldChainCode:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			opts.ChainCode = append([]byte(nil), v...)
			return n, nil
		case nodeFieldPoint:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			opts.Point = append([]byte(nil), v...)
			return n, nil
		case nodeFieldAddressType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			opts.AddressType = chain.AddressTypeFromWire(int32(v))
			return n, nil
		case nodeFieldNetwork:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			opts.Network = chain.BlockchainFromWire(int32(v))
			return n, nil
		default:
			return -1, nil // unknown field, skip
		}
	})
	if err != nil {
		return hdkey.Node{}, fmt.Errorf("%w: %s", hdkey.ErrMalformedNode, err)
	}
	return hdkey.NewNode(opts)
}

// MarshalAddress encodes the address union. Exactly one of the two
// oneof fields is written.
func MarshalAddress(a address.Address) ([]byte, error) {
	var b []byte
	if node, ok := a.Node(); ok {
		b = protowire.AppendTag(b, addressFieldNode, protowire.BytesType)
		b = protowire.AppendBytes(b, MarshalNode(node))
		return b, nil
	}
	plain, ok := a.Plain()
	if !ok || plain == "" {
		return nil, address.ErrEmptyAddress
	}
	b = protowire.AppendTag(b, addressFieldPlain, protowire.BytesType)
	b = protowire.AppendString(b, plain)
	return b, nil
}

// UnmarshalAddress decodes the address union. When both oneof fields
// appear the last one wins, matching protobuf semantics.
func UnmarshalAddress(b []byte) (address.Address, error) {
	var (
		nodeBytes []byte
		plain     string
		seen      bool
	)
	err := scanFields(b, func(num protowire.Number, b []byte) (int, error) {
		switch num {
		case addressFieldNode:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			nodeBytes = append([]byte(nil), v...)
			plain = ""
			seen = true
			return n, nil
		case addressFieldPlain:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			plain = v
			nodeBytes = nil
			seen = true
			return n, nil
		default:
			return -1, nil
		}
	})
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}
	if !seen {
		return address.Address{}, fmt.Errorf("%w: %s", ErrMalformedMessage, address.ErrEmptyAddress)
	}
	if nodeBytes != nil {
		node, err := UnmarshalNode(nodeBytes)
		if err != nil {
			return address.Address{}, err
		}
		return address.FromNode(node), nil
	}
	return address.FromPlain(plain), nil
}

// MarshalFile encodes a vault file reference.
func MarshalFile(f vault.File) []byte {
	var b []byte
	if f.Type != vault.FileUnknown {
		b = protowire.AppendTag(b, fileFieldType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Type))
	}
	b = protowire.AppendTag(b, fileFieldID, protowire.BytesType)
	b = protowire.AppendBytes(b, f.ID[:])
	return b
}

// UnmarshalFile decodes a vault file reference. The id must be exactly
// 16 bytes.
func UnmarshalFile(b []byte) (vault.File, error) {
	var f vault.File
	err := scanFields(b, func(num protowire.Number, b []byte) (int, error) {
		switch num {
		case fileFieldType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			f.Type = vault.FileTypeFromWire(int32(v))
			return n, nil
		case fileFieldID:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return 0, fmt.Errorf("file id: %s", err)
			}
			f.ID = id
			return n, nil
		default:
			return -1, nil
		}
	})
	if err != nil {
		return vault.File{}, fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}
	return f, nil
}

// scanFields walks the top-level fields of a message. The callback
// consumes known fields and returns -1 to have the raw field value
// skipped instead.
func scanFields(
	b []byte,
	consume func(num protowire.Number, b []byte) (int, error),
) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := consume(num, b)
		if err != nil {
			return fmt.Errorf("field %d: %s", num, err)
		}
		if n < 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}
