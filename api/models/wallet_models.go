package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdjustBalanceParams struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

type TransferParams struct {
	RecipientEmail string          `json:"recipient_email" binding:"required,email"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
}

type WalletResponse struct {
	WalletID  uuid.UUID `json:"wallet_id"`
	UserID    ID        `json:"user_id"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

type WalletWithTransaction struct {
	Wallet      *WalletResponse      `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}

type TransferResponse struct {
	Wallet   *WalletResponse      `json:"wallet"`
	Outbound *TransactionResponse `json:"outbound"`
}
