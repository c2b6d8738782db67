package wallet

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
)

func TestValidateAmount(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
		err    error
	}{
		{name: "positive whole", amount: "100", err: nil},
		{name: "positive two decimals", amount: "0.01", err: nil},
		{name: "trailing zeros", amount: "1.100", err: nil},
		{name: "zero", amount: "0", err: ErrInvalidAmount},
		{name: "negative", amount: "-5.00", err: ErrInvalidAmount},
		{name: "three decimal places", amount: "1.999", err: ErrInvalidAmount},
		{name: "sub-cent", amount: "0.001", err: ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAmount(decimal.RequireFromString(tc.amount))
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestToWalletModel(t *testing.T) {
	now := time.Now()
	dbWallet := db.Wallet{
		ID:        uuid.New(),
		UserID:    9,
		Balance:   "150.25",
		CreatedAt: now,
		UpdatedAt: now,
	}

	model := ToWalletModel(&dbWallet)
	require.NotNil(t, model)
	assert.Equal(t, dbWallet.ID, model.ID)
	assert.Equal(t, int64(9), model.UserID)
	assert.True(t, model.Balance.Equal(decimal.RequireFromString("150.25")))
}

func TestWalletErrorUnwrap(t *testing.T) {
	wrapped := NewWalletError(ErrInsufficientBalance, 12)
	assert.True(t, errors.Is(wrapped, ErrInsufficientBalance))
	assert.Equal(t, "insufficient balance", wrapped.Error())
	assert.Contains(t, wrapped.ErrorOut(), "12")
}

func TestToNullString(t *testing.T) {
	empty := toNullString("")
	assert.False(t, empty.Valid)

	filled := toNullString("0xabc")
	assert.True(t, filled.Valid)
	assert.Equal(t, "0xabc", filled.String)
}
