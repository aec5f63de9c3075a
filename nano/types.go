package nano

import "math/big"

// ZeroHash is the previous hash of an opening block.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

type BlockKind string

const (
	KindOpen    BlockKind = "open"
	KindReceive BlockKind = "receive"
	KindSend    BlockKind = "send"
)

// Account is the on-chain state of an address, read fresh from the node
// before every mutating operation. Frontier is empty for a never-opened
// account.
type Account struct {
	Address        string
	Frontier       string
	Representative string
	Balance        *big.Int
}

// Opened reports whether the account exists on chain yet.
func (a Account) Opened() bool { return a.Frontier != "" && a.Frontier != ZeroHash }

// PendingBlock is an inbound transfer not yet incorporated into the
// recipient's chain.
type PendingBlock struct {
	Hash   string   // source block hash
	Amount *big.Int // raw
	Source string   // sender address
}

// StateBlock is the uniform block format for every ledger mutation.
// Link carries the source block hash for open/receive and the destination
// public key (not its address string) for send.
type StateBlock struct {
	Kind           BlockKind `json:"-"`
	Type           string    `json:"type"` // always "state"
	Account        string    `json:"account"`
	Previous       string    `json:"previous"`
	Representative string    `json:"representative"`
	Balance        string    `json:"balance"` // raw, decimal string
	Link           string    `json:"link"`    // hex
	Signature      string    `json:"signature,omitempty"`
	Work           string    `json:"work,omitempty"`
}
