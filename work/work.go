// Package work acquires proof-of-work for block roots from a prioritized
// chain of remote providers.
package work

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// Network thresholds. Receives are accepted far below the send threshold;
// the opening threshold is configured per deployment.
const (
	DefaultSendDifficulty    uint64 = 0xfffffff800000000
	DefaultReceiveDifficulty uint64 = 0xfffffe0000000000
)

// ParseDifficulty reads a hex uint64, falling back to def for empty or
// malformed conf values.
func ParseDifficulty(s string, def uint64) uint64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return def
	}
	return v
}

func FormatDifficulty(d uint64) string {
	return strconv.FormatUint(d, 16)
}

// Value computes the work value of a nonce against a root: blake2b-8 over
// nonce (little-endian) then root, read back little-endian.
func Value(root string, work string) (uint64, error) {
	rootBytes, err := hex.DecodeString(root)
	if err != nil || len(rootBytes) != 32 {
		return 0, errInvalidRoot(root)
	}
	nonce, err := strconv.ParseUint(work, 16, 64)
	if err != nil {
		return 0, errInvalidWork(work)
	}
	var nonceLE [8]byte
	binary.LittleEndian.PutUint64(nonceLE[:], nonce)
	h, _ := blake2b.New(8, nil)
	h.Write(nonceLE[:])
	h.Write(rootBytes)
	return binary.LittleEndian.Uint64(h.Sum(nil)), nil
}

// Valid reports whether a work nonce meets the difficulty for a root.
func Valid(root, work string, difficulty uint64) bool {
	v, err := Value(root, work)
	return err == nil && v >= difficulty
}
