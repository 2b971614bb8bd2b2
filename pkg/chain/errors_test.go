package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMintError(t *testing.T) {
	assert.NoError(t, ClassifyMintError(nil))

	assert.ErrorIs(t,
		ClassifyMintError(errors.New("execution failed: token Already Exists for key")),
		ErrTokenExists)
	assert.ErrorIs(t,
		ClassifyMintError(errors.New("err: insufficient funds for gas * price + value")),
		ErrInsufficientFunds)
	assert.ErrorIs(t,
		ClassifyMintError(errors.New("transaction reverted without reason")),
		ErrTxReverted)

	unknown := errors.New("connection reset by peer")
	assert.Equal(t, unknown, ClassifyMintError(unknown))
}
