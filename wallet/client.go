// Package wallet orchestrates ledger mutations: it reads fresh account
// state, builds and signs blocks, acquires proof-of-work and submits,
// serializing everything that touches one account.
package wallet

import (
	"context"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"shotrewards/infra"
	"shotrewards/nano"
	"shotrewards/node"
	"shotrewards/work"
)

// Node is the slice of the RPC client the wallet consumes.
type Node interface {
	AccountInfo(ctx context.Context, address string) (*node.AccountInfo, error)
	Pending(ctx context.Context, address string, count int) ([]nano.PendingBlock, error)
	Process(ctx context.Context, blk *nano.StateBlock) (string, error)
}

// WorkSource acquires proof-of-work for a block root.
type WorkSource interface {
	Generate(ctx context.Context, root string, difficulty uint64) (string, error)
}

// Recorder persists every submission attempt for manual reconciliation;
// submitted blocks cannot be rolled back.
type Recorder interface {
	RecordSubmission(s Submission) error
}

const (
	defaultReceiveRetries = 3
	defaultPendingCount   = 64
)

func NewClient(conf infra.Conf, n Node, w WorkSource, rec Recorder) *Client {
	retries := conf.ReceiveRetries
	if retries <= 0 {
		retries = defaultReceiveRetries
	}
	pendingCount := conf.PendingCount
	if pendingCount <= 0 {
		pendingCount = defaultPendingCount
	}
	sendDiff := work.ParseDifficulty(conf.SendDifficulty, work.DefaultSendDifficulty)
	receiveDiff := work.ParseDifficulty(conf.ReceiveDifficulty, work.DefaultReceiveDifficulty)
	return &Client{
		node:        n,
		work:        w,
		rec:         rec,
		builder:     nano.NewBuilder(conf.Representative),
		sendDiff:    sendDiff,
		receiveDiff: receiveDiff,
		openDiff:    work.ParseDifficulty(conf.OpenDifficulty, receiveDiff),
		retries:     retries,
		pendingCnt:  pendingCount,
		locks:       map[string]*sync.Mutex{},
	}
}

type Client struct {
	node    Node
	work    WorkSource
	rec     Recorder
	builder nano.Builder

	sendDiff    uint64
	receiveDiff uint64
	openDiff    uint64
	retries     int
	pendingCnt  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lockAccount serializes operations per address. Two writers on one
// account would both read the same frontier and one block would be
// rejected; cross-account operations stay concurrent. The map keeps one
// mutex per address seen and is never pruned; the service operates on a
// small fixed set of wallets.
func (c *Client) lockAccount(address string) func() {
	c.mu.Lock()
	l, ok := c.locks[address]
	if !ok {
		l = &sync.Mutex{}
		c.locks[address] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// BlockOutcome is the result of one pending block's receive attempt.
type BlockOutcome struct {
	Source string         `json:"source"` // pending source block hash
	Kind   nano.BlockKind `json:"kind,omitempty"`
	Hash   string         `json:"hash,omitempty"` // confirmed block hash
	Amount string         `json:"amount_raw,omitempty"`
	Err    string         `json:"error,omitempty"`
}

type ReceiveAllResult struct {
	Received int            `json:"received"`
	Failed   int            `json:"failed"`
	TotalRaw *big.Int       `json:"-"`
	Total    string         `json:"total"` // display units
	Outcomes []BlockOutcome `json:"outcomes"`
}

// ReceiveAllPending receives every pending block of the account, one at a
// time. Each block's previous must chain from the result of the prior
// one, so there is nothing to parallelize here. A block that still fails
// after the retry bound is recorded and the batch moves on; partial
// success is a normal outcome.
func (c *Client) ReceiveAllPending(ctx context.Context, address, secretKey string) (*ReceiveAllResult, error) {
	if _, err := nano.DecodeAddress(address); err != nil {
		return nil, err
	}
	if _, err := nano.PublicKeyFromSecret(secretKey); err != nil {
		return nil, err
	}
	unlock := c.lockAccount(address)
	defer unlock()

	pendings, err := c.node.Pending(ctx, address, c.pendingCnt)
	if err != nil {
		return nil, errors.Wrap(err, "list pending")
	}
	result := &ReceiveAllResult{TotalRaw: new(big.Int)}
	for i, p := range pendings {
		// a cancelled batch still reports every block, so callers can
		// tell a block that failed from one that was never attempted
		if err := ctx.Err(); err != nil {
			for _, rest := range pendings[i:] {
				result.Outcomes = append(result.Outcomes, BlockOutcome{
					Source: rest.Hash,
					Amount: rest.Amount.String(),
					Err:    err.Error(),
				})
				result.Failed++
			}
			break
		}
		outcome := c.receiveOne(ctx, address, secretKey, p)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Err == "" {
			result.Received++
			result.TotalRaw.Add(result.TotalRaw, p.Amount)
		} else {
			result.Failed++
		}
	}
	result.Total = nano.ToDisplay(result.TotalRaw)
	return result, nil
}

// receiveOne builds, works, signs and submits a single open/receive
// block, re-fetching account state before every attempt. After a
// rejection the difficulty is stepped up to the send threshold in case
// the node stopped honoring the lower receive threshold.
func (c *Client) receiveOne(ctx context.Context, address, secretKey string, p nano.PendingBlock) BlockOutcome {
	outcome := BlockOutcome{Source: p.Hash, Amount: p.Amount.String()}
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		blk, difficulty, err := c.buildReceiveBlock(ctx, address, p)
		if err != nil {
			lastErr = err
			if node.IsRetryable(err) {
				continue
			}
			break
		}
		if attempt > 0 && difficulty < c.sendDiff {
			difficulty = c.sendDiff
		}
		hash, err := c.completeAndSubmit(ctx, blk, secretKey, difficulty)
		if err != nil {
			lastErr = err
			if node.IsRetryable(err) {
				continue
			}
			break
		}
		outcome.Kind = blk.Kind
		outcome.Hash = hash
		return outcome
	}
	outcome.Err = lastErr.Error()
	return outcome
}

// buildReceiveBlock decides open-vs-receive from the account's current
// state: no frontier means the first block of the chain.
func (c *Client) buildReceiveBlock(ctx context.Context, address string, p nano.PendingBlock) (*nano.StateBlock, uint64, error) {
	acct, err := c.fetchAccount(ctx, address)
	if err != nil {
		if node.IsAccountNotFound(err) {
			blk, err := c.builder.BuildOpen(address, p)
			return blk, c.openDiff, err
		}
		return nil, 0, errors.Wrap(err, "fetch account state")
	}
	blk, err := c.builder.BuildReceive(*acct, p)
	return blk, c.receiveDiff, err
}

// Send validates, builds, works, signs and submits a send block, and
// returns the confirmed hash. A never-opened account has nothing to send.
func (c *Client) Send(ctx context.Context, fromAddress, secretKey, toAddress, amountDisplay string) (string, error) {
	if _, err := nano.DecodeAddress(fromAddress); err != nil {
		return "", err
	}
	if _, err := nano.DecodeAddress(toAddress); err != nil {
		return "", err
	}
	if _, err := nano.PublicKeyFromSecret(secretKey); err != nil {
		return "", err
	}
	amount, err := nano.ToRaw(amountDisplay)
	if err != nil {
		return "", err
	}
	unlock := c.lockAccount(fromAddress)
	defer unlock()

	acct, err := c.fetchAccount(ctx, fromAddress)
	if err != nil {
		return "", errors.Wrap(err, "fetch account state")
	}
	blk, err := c.builder.BuildSend(*acct, toAddress, amount)
	if err != nil {
		return "", err
	}
	return c.completeAndSubmit(ctx, blk, secretKey, c.sendDiff)
}

// completeAndSubmit runs the work -> sign -> process tail shared by every
// mutation, recording the attempt either way.
func (c *Client) completeAndSubmit(ctx context.Context, blk *nano.StateBlock, secretKey string, difficulty uint64) (string, error) {
	root, err := blk.WorkRoot()
	if err != nil {
		return "", err
	}
	nonce, err := c.work.Generate(ctx, root, difficulty)
	if err != nil {
		return "", errors.Wrap(err, "generate work")
	}
	blk.Work = nonce
	hash, err := blk.Hash()
	if err != nil {
		return "", err
	}
	blk.Signature, err = nano.Sign(hash, secretKey)
	if err != nil {
		return "", err
	}
	confirmed, err := c.node.Process(ctx, blk)
	c.record(blk, hash, err)
	if err != nil {
		return "", errors.Wrapf(err, "process block %s", hash)
	}
	return confirmed, nil
}

func (c *Client) record(blk *nano.StateBlock, hash string, submitErr error) {
	s := Submission{
		Time:      time.Now(),
		Account:   blk.Account,
		Kind:      string(blk.Kind),
		Hash:      hash,
		Previous:  blk.Previous,
		AmountRaw: blk.Balance,
		Source:    blk.Link,
		Ok:        submitErr == nil,
	}
	if submitErr != nil {
		s.RemoteErr = submitErr.Error()
	}
	if err := c.rec.RecordSubmission(s); err != nil {
		log.Println("[err] record block submission: ", err)
	}
}

func (c *Client) fetchAccount(ctx context.Context, address string) (*nano.Account, error) {
	info, err := c.node.AccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	return &nano.Account{
		Address:        address,
		Frontier:       info.Frontier,
		Representative: info.Representative,
		Balance:        info.Balance,
	}, nil
}

// BalanceInfo is the read-only view served to callers.
type BalanceInfo struct {
	Address      string `json:"address"`
	BalanceRaw   string `json:"balance_raw"`
	Balance      string `json:"balance"`
	Frontier     string `json:"frontier,omitempty"`
	PendingCount int    `json:"pending_count"`
}

func (c *Client) Balance(ctx context.Context, address string) (*BalanceInfo, error) {
	if _, err := nano.DecodeAddress(address); err != nil {
		return nil, err
	}
	info := &BalanceInfo{Address: address, BalanceRaw: "0", Balance: nano.ToDisplay(nil)}
	acct, err := c.fetchAccount(ctx, address)
	if err != nil && !node.IsAccountNotFound(err) {
		return nil, err
	}
	if err == nil {
		info.BalanceRaw = acct.Balance.String()
		info.Balance = nano.ToDisplay(acct.Balance)
		info.Frontier = acct.Frontier
	}
	pendings, err := c.node.Pending(ctx, address, c.pendingCnt)
	if err != nil {
		return nil, errors.Wrap(err, "list pending")
	}
	info.PendingCount = len(pendings)
	return info, nil
}
