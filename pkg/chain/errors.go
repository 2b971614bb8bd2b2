package chain

import (
	"errors"
	"strings"
)

var (
	ErrTokenExists       = errors.New("token already minted for this post")
	ErrInsufficientFunds = errors.New("insufficient balance for mint")
	ErrTxReverted        = errors.New("mint transaction reverted")
)

// ClassifyMintError maps a raw mint failure onto one of the three known
// sentinels by matching the message text. The classification only drives
// the user-facing toast; unknown failures pass through unchanged.
func ClassifyMintError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"):
		return ErrTokenExists
	case strings.Contains(msg, "insufficient funds"):
		return ErrInsufficientFunds
	case strings.Contains(msg, "reverted"):
		return ErrTxReverted
	}
	return err
}
