package nano

import (
	"encoding/hex"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// statePreamble distinguishes state block hashes from legacy block hashes.
var statePreamble = [32]byte{31: 0x06}

// Builder constructs unsigned state blocks from fresh account state.
// Representative is the default assigned to accounts opened by us.
type Builder struct {
	Representative string
}

func NewBuilder(representative string) Builder {
	return Builder{Representative: representative}
}

// BuildOpen makes the first block of an account's chain: previous is the
// zero hash and the balance is exactly the pending amount.
func (b Builder) BuildOpen(address string, p PendingBlock) (*StateBlock, error) {
	if _, err := DecodeAddress(address); err != nil {
		return nil, err
	}
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "pending %s has no amount", p.Hash)
	}
	return &StateBlock{
		Kind:           KindOpen,
		Type:           "state",
		Account:        address,
		Previous:       ZeroHash,
		Representative: b.Representative,
		Balance:        p.Amount.String(),
		Link:           strings.ToUpper(p.Hash),
	}, nil
}

// BuildReceive chains a pending amount onto an opened account.
func (b Builder) BuildReceive(acct Account, p PendingBlock) (*StateBlock, error) {
	if !acct.Opened() {
		return nil, errors.Errorf("account %s has no frontier, needs an open block", acct.Address)
	}
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "pending %s has no amount", p.Hash)
	}
	balance := new(big.Int).Add(acct.Balance, p.Amount)
	if balance.BitLen() > 128 {
		return nil, errors.Wrapf(ErrBalanceOverflow, "receive %s onto %s", p.Hash, acct.Address)
	}
	return &StateBlock{
		Kind:           KindReceive,
		Type:           "state",
		Account:        acct.Address,
		Previous:       strings.ToUpper(acct.Frontier),
		Representative: b.representativeFor(acct),
		Balance:        balance.String(),
		Link:           strings.ToUpper(p.Hash),
	}, nil
}

// BuildSend debits the account. The link field carries the destination's
// public key, the one place the raw key crosses the RPC boundary.
func (b Builder) BuildSend(acct Account, toAddress string, amount *big.Int) (*StateBlock, error) {
	toPub, err := DecodeAddress(toAddress)
	if err != nil {
		return nil, err
	}
	if !acct.Opened() {
		return nil, errors.Errorf("account %s has no frontier, nothing to send", acct.Address)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "send amount must be positive")
	}
	if amount.Cmp(acct.Balance) > 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "have %s raw, want %s raw", acct.Balance, amount)
	}
	return &StateBlock{
		Kind:           KindSend,
		Type:           "state",
		Account:        acct.Address,
		Previous:       strings.ToUpper(acct.Frontier),
		Representative: b.representativeFor(acct),
		Balance:        new(big.Int).Sub(acct.Balance, amount).String(),
		Link:           toPub,
	}, nil
}

func (b Builder) representativeFor(acct Account) string {
	if acct.Representative != "" {
		return acct.Representative
	}
	return b.Representative
}

// Hash computes the canonical block hash that gets signed and submitted:
// blake2b-256 over preamble, account key, previous, representative key,
// 128-bit balance and link.
func (blk *StateBlock) Hash() (string, error) {
	accountPub, err := DecodeAddress(blk.Account)
	if err != nil {
		return "", err
	}
	repPub, err := DecodeAddress(blk.Representative)
	if err != nil {
		return "", err
	}
	previous, err := hexField("previous", blk.Previous)
	if err != nil {
		return "", err
	}
	link, err := hexField("link", blk.Link)
	if err != nil {
		return "", err
	}
	balance, ok := new(big.Int).SetString(blk.Balance, 10)
	if !ok || balance.Sign() < 0 || balance.BitLen() > 128 {
		return "", errors.Wrapf(ErrInvalidAmount, "balance %q", blk.Balance)
	}
	var balanceBytes [16]byte
	balance.FillBytes(balanceBytes[:])

	h, _ := blake2b.New256(nil)
	h.Write(statePreamble[:])
	writeHex(h, accountPub)
	h.Write(previous)
	writeHex(h, repPub)
	h.Write(balanceBytes[:])
	h.Write(link)
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

// WorkRoot is what proof-of-work must be generated against: the previous
// hash for receive/send, the account's own public key for an opening
// block. The asymmetry is how the network ties the first work unit to the
// account instead of a block that does not exist yet.
func (blk *StateBlock) WorkRoot() (string, error) {
	if blk.Kind == KindOpen {
		return DecodeAddress(blk.Account)
	}
	return strings.ToUpper(blk.Previous), nil
}

func hexField(name, v string) ([]byte, error) {
	b, err := hex.DecodeString(v)
	if err != nil || len(b) != 32 {
		return nil, errors.Errorf("block %s field %q is not a 32 byte hex string", name, v)
	}
	return b, nil
}

func writeHex(h io.Writer, v string) {
	b, _ := hex.DecodeString(v)
	h.Write(b)
}
