package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

// Fingerprint computes the BIP32 fingerprint of a serialized public
// key: the first four bytes of RIPEMD160(SHA256(point)), read as a
// big-endian uint32.
func Fingerprint(point []byte) uint32 {
	return binary.BigEndian.Uint32(btcutil.Hash160(point)[:4])
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// childPoint computes parent + il*G and returns it in compressed form.
// ErrInvalidDerivation is returned when il is zero, not below the curve
// order, or when the sum is the point at infinity.
func childPoint(parent *btcec.PublicKey, il []byte) ([]byte, error) {
	ilNum := new(big.Int).SetBytes(il)
	if ilNum.Sign() == 0 || ilNum.Cmp(btcec.S256().N) >= 0 {
		return nil, ErrInvalidDerivation
	}

	ilx, ily := btcec.S256().ScalarBaseMult(il)
	childX, childY := btcec.S256().Add(ilx, ily, parent.X(), parent.Y())
	if childX.Sign() == 0 && childY.Sign() == 0 {
		return nil, ErrInvalidDerivation
	}

	point := make([]byte, PointSize)
	point[0] = 0x02 + byte(childY.Bit(0))
	childX.FillBytes(point[1:])
	return point, nil
}
