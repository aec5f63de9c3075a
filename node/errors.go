package node

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// RPCError is a rejection reported by the remote service itself, as
// opposed to a transport failure.
type RPCError struct {
	Action  string
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %s", e.Action, e.Message)
}

// IsAccountNotFound matches the account_info answer for a never-opened
// account. The wallet treats it as the new-account state, not a failure.
func IsAccountNotFound(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return strings.Contains(strings.ToLower(rpcErr.Message), "not found")
}

// retryableRejections are races against another submitter or a stale
// frontier read; re-fetching state and rebuilding the block can succeed.
var retryableRejections = []string{
	"gap previous",
	"gap source",
	"fork",
	"old block",
	"unreceivable",
}

func IsRetryable(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	msg := strings.ToLower(rpcErr.Message)
	for _, s := range retryableRejections {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
