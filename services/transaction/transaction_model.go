package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the service-level view of a ledger entry.
type TransactionModel struct {
	ID              uuid.UUID       `json:"id"`
	UserID          int64           `json:"user_id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	RecipientID     *int64          `json:"recipient_id,omitempty"`
	RecipientEmail  string          `json:"recipient_email,omitempty"`
	Description     string          `json:"description,omitempty"`
	TransactionHash string          `json:"transaction_hash,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionPage wraps a history slice with its paging envelope.
type TransactionPage struct {
	Transactions []TransactionModel `json:"transactions"`
	Total        int64              `json:"total"`
	Limit        int32              `json:"limit"`
	Offset       int32              `json:"offset"`
}

// StatsModel aggregates a user's ledger totals by direction.
type StatsModel struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalCredited     decimal.Decimal `json:"total_credited"`
	TotalDebited      decimal.Decimal `json:"total_debited"`
	NetFlow           decimal.Decimal `json:"net_flow"`
}
