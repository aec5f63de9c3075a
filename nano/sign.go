package nano

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// The ledger signs with the ed25519 construction but with blake2b-512 in
// place of sha-512, so stdlib crypto/ed25519 produces incompatible
// signatures and cannot be used here.

// PublicKeyFromSecret derives the account public key (uppercase hex) from
// a 32-byte secret key.
func PublicKeyFromSecret(secretKey string) (string, error) {
	_, _, pub, err := expandSecret(secretKey)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(pub.Bytes())), nil
}

// Sign produces the 64-byte signature (hex) of a block hash. Deterministic
// for a given (hash, key) pair; there is no randomness to mishandle.
func Sign(blockHash, secretKey string) (string, error) {
	msg, err := hex.DecodeString(blockHash)
	if err != nil || len(msg) != 32 {
		return "", errors.Errorf("block hash %q is not a 32 byte hex string", blockHash)
	}
	a, prefix, pub, err := expandSecret(secretKey)
	if err != nil {
		return "", err
	}

	rh, _ := blake2b.New512(nil)
	rh.Write(prefix)
	rh.Write(msg)
	r, err := new(edwards25519.Scalar).SetUniformBytes(rh.Sum(nil))
	if err != nil {
		return "", errors.Wrap(err, "reduce nonce scalar")
	}
	R := new(edwards25519.Point).ScalarBaseMult(r)

	kh, _ := blake2b.New512(nil)
	kh.Write(R.Bytes())
	kh.Write(pub.Bytes())
	kh.Write(msg)
	k, err := new(edwards25519.Scalar).SetUniformBytes(kh.Sum(nil))
	if err != nil {
		return "", errors.Wrap(err, "reduce challenge scalar")
	}

	s := new(edwards25519.Scalar).MultiplyAdd(k, a, r)
	sig := append(R.Bytes(), s.Bytes()...)
	return strings.ToUpper(hex.EncodeToString(sig)), nil
}

// Verify checks a block hash signature against a public key. Used by tests
// and by callers that want to sanity-check a signature before submission.
func Verify(blockHash, publicKey, signature string) bool {
	msg, err := hex.DecodeString(blockHash)
	if err != nil || len(msg) != 32 {
		return false
	}
	pub, err := hex.DecodeString(publicKey)
	if err != nil || len(pub) != 32 {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != 64 {
		return false
	}
	A, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return false
	}
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	kh, _ := blake2b.New512(nil)
	kh.Write(sig[:32])
	kh.Write(pub)
	kh.Write(msg)
	k, err := new(edwards25519.Scalar).SetUniformBytes(kh.Sum(nil))
	if err != nil {
		return false
	}
	minusA := new(edwards25519.Point).Negate(A)
	// R' = s*B - k*A must reproduce the R in the signature.
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, s)
	return subtle.ConstantTimeCompare(R.Bytes(), sig[:32]) == 1
}

func expandSecret(secretKey string) (*edwards25519.Scalar, []byte, *edwards25519.Point, error) {
	sk, err := hex.DecodeString(secretKey)
	if err != nil || len(sk) != 32 {
		return nil, nil, nil, errors.Wrap(ErrInvalidSecretKey, "want 64 hex characters")
	}
	h := blake2b.Sum512(sk)
	a, err := new(edwards25519.Scalar).SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, nil, nil, errors.Wrap(ErrInvalidSecretKey, err.Error())
	}
	pub := new(edwards25519.Point).ScalarBaseMult(a)
	return a, h[32:], pub, nil
}
