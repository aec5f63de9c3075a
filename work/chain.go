package work

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"shotrewards/infra"
)

// FailedError means every provider in the chain was tried and none
// produced valid work; Last carries the final provider's error.
type FailedError struct {
	Root     string
	Attempts int
	Last     error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("work generation failed for %s after %d providers: %v", e.Root, e.Attempts, e.Last)
}

func (e *FailedError) Unwrap() error { return e.Last }

func errInvalidRoot(root string) error { return errors.Errorf("work root %q is not 32 byte hex", root) }
func errInvalidWork(w string) error    { return errors.Errorf("work nonce %q is not a hex uint64", w) }

// Chain tries providers strictly in order, one at a time. Racing them
// would burn redundant proof-of-work on every request; a provider outage
// should cost latency, not compute.
type Chain struct {
	providers []infra.WorkProvider
	hc        *http.Client
}

func NewChain(conf infra.Conf) *Chain {
	providers := conf.WorkProviders
	if len(providers) == 0 && conf.NodeURL != "" {
		// bare deployments point straight at the node's own work_generate
		providers = []infra.WorkProvider{{Name: "node", URL: conf.NodeURL, Key: conf.NodeKey}}
	}
	return &Chain{
		providers: providers,
		hc:        &http.Client{Timeout: 90 * time.Second},
	}
}

// Generate returns a nonce whose work value meets difficulty for root.
// Each provider's answer is validated locally before being trusted.
func (c *Chain) Generate(ctx context.Context, root string, difficulty uint64) (string, error) {
	if len(c.providers) == 0 {
		return "", &FailedError{Root: root, Last: errors.New("no work providers configured")}
	}
	var lastErr error
	for _, p := range c.providers {
		want := difficulty
		if override := ParseDifficulty(p.Difficulty, 0); override != 0 {
			want = override
		}
		nonce, err := c.request(ctx, p, root, want)
		if err != nil {
			lastErr = errors.Wrapf(err, "provider %s", p.Name)
			continue
		}
		if !Valid(root, nonce, want) {
			lastErr = errors.Errorf("provider %s returned work %s below difficulty %s", p.Name, nonce, FormatDifficulty(want))
			continue
		}
		return nonce, nil
	}
	return "", &FailedError{Root: root, Attempts: len(c.providers), Last: lastErr}
}

func (c *Chain) request(ctx context.Context, p infra.WorkProvider, root string, difficulty uint64) (string, error) {
	body, err := json.Marshal(map[string]string{
		"action":     "work_generate",
		"hash":       root,
		"difficulty": FormatDifficulty(difficulty),
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.Key != "" {
		req.Header.Set("Authorization", p.Key)
	}
	httpResp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", err
	}
	var resp struct {
		Work  string `json:"work"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", errors.Wrapf(err, "decode response %q", respBody)
	}
	if resp.Error != "" {
		return "", errors.Errorf("remote: %s", resp.Error)
	}
	if resp.Work == "" {
		return "", errors.Errorf("empty work in response (http %d)", httpResp.StatusCode)
	}
	return resp.Work, nil
}
