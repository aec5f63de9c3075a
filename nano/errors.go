package nano

import "github.com/pkg/errors"

var (
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidSecretKey    = errors.New("invalid secret key")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance exceeds 128 bits")
)
