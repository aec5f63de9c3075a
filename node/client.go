// Package node is the JSON-RPC client of the remote ledger service. Every
// call posts {"action": ...} and decodes either the result or the remote
// error string.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"shotrewards/infra"
	"shotrewards/nano"
)

func NewClient(conf infra.Conf) *Client {
	return &Client{
		url: conf.NodeURL,
		key: conf.NodeKey,
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{MaxConnsPerHost: 4},
		},
	}
}

type Client struct {
	url string
	key string
	hc  *http.Client
}

// AccountInfo is the fresh state of an opened account. Balance arrives as
// a raw-unit numeric string and never as floating point.
type AccountInfo struct {
	Frontier       string `json:"frontier"`
	Representative string `json:"representative"`
	Balance        *big.Int
}

func (c *Client) AccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	var resp struct {
		Frontier       string `json:"frontier"`
		Representative string `json:"representative"`
		Balance        string `json:"balance"`
	}
	err := c.call(ctx, "account_info", map[string]interface{}{
		"account":        address,
		"representative": "true",
	}, &resp)
	if err != nil {
		return nil, err
	}
	balance, ok := new(big.Int).SetString(resp.Balance, 10)
	if !ok {
		return nil, errors.Errorf("account_info: bad balance %q for %s", resp.Balance, address)
	}
	return &AccountInfo{
		Frontier:       resp.Frontier,
		Representative: resp.Representative,
		Balance:        balance,
	}, nil
}

// Pending lists inbound transfers not yet received, up to count.
func (c *Client) Pending(ctx context.Context, address string, count int) ([]nano.PendingBlock, error) {
	var resp struct {
		Blocks json.RawMessage `json:"blocks"`
	}
	err := c.call(ctx, "pending", map[string]interface{}{
		"account": address,
		"count":   count,
		"source":  "true",
	}, &resp)
	if err != nil {
		return nil, err
	}
	// the node answers "" or [] instead of {} when nothing is pending;
	// only those exact forms are empty, anything else must decode
	raw := bytes.TrimSpace(resp.Blocks)
	switch string(raw) {
	case "", `""`, "[]", "null":
		return nil, nil
	}
	type entry struct {
		Amount string `json:"amount"`
		Source string `json:"source"`
	}
	blocks := map[string]entry{}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, errors.Wrapf(err, "pending: decode blocks %q", raw)
	}
	var out []nano.PendingBlock
	for hash, e := range blocks {
		amount, ok := new(big.Int).SetString(e.Amount, 10)
		if !ok {
			return nil, errors.Errorf("pending: bad amount %q for block %s", e.Amount, hash)
		}
		out = append(out, nano.PendingBlock{Hash: hash, Amount: amount, Source: e.Source})
	}
	return out, nil
}

// Process submits a fully assembled, signed block and returns the
// confirmed hash.
func (c *Client) Process(ctx context.Context, blk *nano.StateBlock) (string, error) {
	var resp struct {
		Hash string `json:"hash"`
	}
	err := c.call(ctx, "process", map[string]interface{}{
		"json_block": "true",
		"subtype":    string(blk.Kind),
		"block":      blk,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Hash, nil
}

func (c *Client) call(ctx context.Context, action string, params map[string]interface{}, out interface{}) error {
	body := map[string]interface{}{"action": action}
	for k, v := range params {
		body[k] = v
	}
	b, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal rpc request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "build rpc request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", c.key)
	}
	httpResp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "rpc %s", action)
	}
	defer httpResp.Body.Close()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Wrapf(err, "rpc %s read response", action)
	}
	var remote struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &remote); err != nil {
		return errors.Wrapf(err, "rpc %s decode response %q", action, respBody)
	}
	if remote.Error != "" {
		return &RPCError{Action: action, Message: remote.Error}
	}
	if httpResp.StatusCode != http.StatusOK {
		return errors.Errorf("rpc %s: http status %d", action, httpResp.StatusCode)
	}
	return errors.Wrapf(json.Unmarshal(respBody, out), "rpc %s decode result", action)
}
