package transaction

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
)

func TestToModelFromDetail(t *testing.T) {
	now := time.Now()
	row := db.GetTransactionByIDRow{
		ID:              uuid.New(),
		UserID:          3,
		WalletID:        uuid.New(),
		Type:            "transfer_out",
		Amount:          "25.00",
		BalanceBefore:   "100.00",
		BalanceAfter:    "75.00",
		RecipientID:     sql.NullInt64{Int64: 4, Valid: true},
		RecipientEmail:  sql.NullString{String: "bob@example.com", Valid: true},
		Description:     sql.NullString{String: "rent split", Valid: true},
		TransactionHash: sql.NullString{},
		Status:          "completed",
		CreatedAt:       now,
	}

	model := toModelFromDetail(&row)

	assert.Equal(t, row.ID, model.ID)
	assert.Equal(t, "transfer_out", model.Type)
	assert.True(t, model.Amount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, model.BalanceBefore.Sub(model.Amount).Equal(model.BalanceAfter))
	if assert.NotNil(t, model.RecipientID) {
		assert.Equal(t, int64(4), *model.RecipientID)
	}
	assert.Equal(t, "bob@example.com", model.RecipientEmail)
	assert.Equal(t, "rent split", model.Description)
	assert.Empty(t, model.TransactionHash)
}

func TestToModelFromDetailNullables(t *testing.T) {
	row := db.GetTransactionByIDRow{
		ID:            uuid.New(),
		UserID:        3,
		WalletID:      uuid.New(),
		Type:          "deposit",
		Amount:        "10.00",
		BalanceBefore: "0.00",
		BalanceAfter:  "10.00",
		Status:        "completed",
		CreatedAt:     time.Now(),
	}

	model := toModelFromDetail(&row)

	assert.Nil(t, model.RecipientID)
	assert.Empty(t, model.RecipientEmail)
	assert.Empty(t, model.Description)
}
