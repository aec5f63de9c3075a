package nano

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// Addresses carry a 256-bit public key as 52 base32 characters (4 zero pad
// bits on top) followed by an 8 character checksum: blake2b-40 of the key,
// byte-reversed. Both current and legacy prefixes name the same key space.
const (
	AddressPrefix       = "nano_"
	AddressPrefixLegacy = "xrb_"

	encodedKeyLen   = 52
	encodedCheckLen = 8
)

const addrAlphabet = "13456789abcdefghijkmnopqrstuwxyz"

var addrAlphabetRev = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i, c := range addrAlphabet {
		rev[c] = int8(i)
	}
	return rev
}()

// EncodeAddress renders a 32-byte public key (hex) as a checksummed
// nano_ address.
func EncodeAddress(publicKey string) (string, error) {
	pub, err := hex.DecodeString(publicKey)
	if err != nil || len(pub) != 32 {
		return "", errors.Wrapf(ErrInvalidAddress, "bad public key %q", publicKey)
	}
	return AddressPrefix + encodeBase32(new(big.Int).SetBytes(pub), encodedKeyLen) +
		encodeBase32(new(big.Int).SetBytes(addressChecksum(pub)), encodedCheckLen), nil
}

// DecodeAddress validates the prefix, character set and checksum of an
// address and returns the underlying public key as uppercase hex.
func DecodeAddress(address string) (string, error) {
	var body string
	switch {
	case strings.HasPrefix(address, AddressPrefix):
		body = address[len(AddressPrefix):]
	case strings.HasPrefix(address, AddressPrefixLegacy):
		body = address[len(AddressPrefixLegacy):]
	default:
		return "", errors.Wrapf(ErrInvalidAddress, "unknown prefix in %q", address)
	}
	if len(body) != encodedKeyLen+encodedCheckLen {
		return "", errors.Wrapf(ErrInvalidAddress, "bad length %d", len(address))
	}
	keyPart, err := decodeBase32(body[:encodedKeyLen])
	if err != nil {
		return "", err
	}
	if keyPart.BitLen() > 256 {
		return "", errors.Wrapf(ErrInvalidAddress, "key part out of range")
	}
	checkPart, err := decodeBase32(body[encodedKeyLen:])
	if err != nil {
		return "", err
	}

	var pub [32]byte
	keyPart.FillBytes(pub[:])
	var want [5]byte
	new(big.Int).SetBytes(addressChecksum(pub[:])).FillBytes(want[:])
	var got [5]byte
	checkPart.FillBytes(got[:])
	if want != got {
		return "", errors.Wrapf(ErrInvalidAddress, "checksum mismatch in %q", address)
	}
	return strings.ToUpper(hex.EncodeToString(pub[:])), nil
}

// ValidAddress reports whether DecodeAddress would accept the input.
func ValidAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}

func addressChecksum(pub []byte) []byte {
	h, _ := blake2b.New(5, nil)
	h.Write(pub)
	sum := h.Sum(nil)
	for i, j := 0, len(sum)-1; i < j; i, j = i+1, j-1 {
		sum[i], sum[j] = sum[j], sum[i]
	}
	return sum
}

func encodeBase32(v *big.Int, width int) string {
	var b strings.Builder
	b.Grow(width)
	for i := width - 1; i >= 0; i-- {
		digit := new(big.Int).Rsh(v, uint(5*i))
		b.WriteByte(addrAlphabet[digit.Uint64()&31])
	}
	return b.String()
}

func decodeBase32(s string) (*big.Int, error) {
	v := new(big.Int)
	for _, c := range s {
		if c >= 128 || addrAlphabetRev[c] < 0 {
			return nil, errors.Wrapf(ErrInvalidAddress, "disallowed character %q", c)
		}
		v.Lsh(v, 5)
		v.Or(v, big.NewInt(int64(addrAlphabetRev[c])))
	}
	return v, nil
}
