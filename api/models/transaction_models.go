package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionResponse struct {
	TransactionID   uuid.UUID `json:"transaction_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	BalanceBefore   string    `json:"balance_before"`
	BalanceAfter    string    `json:"balance_after"`
	RecipientID     ID        `json:"recipient_id,omitempty"`
	RecipientEmail  string    `json:"recipient_email,omitempty"`
	Description     string    `json:"description,omitempty"`
	TransactionHash string    `json:"transaction_hash,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type TransactionStatsResponse struct {
	TotalTransactions int64  `json:"total_transactions"`
	TotalCredited     string `json:"total_credited"`
	TotalDebited      string `json:"total_debited"`
	NetFlow           string `json:"net_flow"`
}

type PaginationResponse struct {
	Total  int64 `json:"total"`
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type TransactionListResponse struct {
	Transactions []*TransactionResponse    `json:"transactions"`
	Stats        *TransactionStatsResponse `json:"stats"`
	Pagination   *PaginationResponse       `json:"pagination"`
}
