package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
)

// Ledger entry types. Every balance mutation writes one of these; a
// transfer writes exactly one transfer_out and one transfer_in.
const (
	TypeDeposit     = "deposit"
	TypeWithdrawal  = "withdrawal"
	TypeTransferIn  = "transfer_in"
	TypeTransferOut = "transfer_out"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

type WalletModel struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToWalletModel(w *db.Wallet) *WalletModel {
	return &WalletModel{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   decimal.RequireFromString(w.Balance),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// TransferResult carries both updated wallets and their paired ledger
// entries after a completed transfer.
type TransferResult struct {
	FromWallet *WalletModel
	ToWallet   *WalletModel
	Outbound   *db.Transaction
	Inbound    *db.Transaction
}
