package models

import (
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/services/transaction"
	"github.com/yacinecs/wallet-backend/services/wallet"
)

func ToWalletResponse(w *wallet.WalletModel) *WalletResponse {
	return &WalletResponse{
		WalletID:  w.ID,
		UserID:    ID(w.UserID),
		Balance:   w.Balance.StringFixed(2),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToTransactionResponse maps a raw ledger row, used where the service
// returns the row written inside a ledger transaction.
func ToTransactionResponse(t *db.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		TransactionID: t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
	}
	if t.RecipientID.Valid {
		resp.RecipientID = ID(t.RecipientID.Int64)
	}
	if t.Description.Valid {
		resp.Description = t.Description.String
	}
	if t.TransactionHash.Valid {
		resp.TransactionHash = t.TransactionHash.String
	}
	return resp
}

func ToTransactionDetailResponse(t *transaction.TransactionModel) *TransactionResponse {
	resp := &TransactionResponse{
		TransactionID:   t.ID,
		Type:            t.Type,
		Amount:          t.Amount.StringFixed(2),
		BalanceBefore:   t.BalanceBefore.StringFixed(2),
		BalanceAfter:    t.BalanceAfter.StringFixed(2),
		RecipientEmail:  t.RecipientEmail,
		Description:     t.Description,
		TransactionHash: t.TransactionHash,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
	if t.RecipientID != nil {
		resp.RecipientID = ID(*t.RecipientID)
	}
	return resp
}

func ToTransactionListResponse(page *transaction.TransactionPage, stats *transaction.StatsModel) *TransactionListResponse {
	transactions := make([]*TransactionResponse, 0, len(page.Transactions))
	for i := range page.Transactions {
		transactions = append(transactions, ToTransactionDetailResponse(&page.Transactions[i]))
	}

	return &TransactionListResponse{
		Transactions: transactions,
		Stats: &TransactionStatsResponse{
			TotalTransactions: stats.TotalTransactions,
			TotalCredited:     stats.TotalCredited.StringFixed(2),
			TotalDebited:      stats.TotalDebited.StringFixed(2),
			NetFlow:           stats.NetFlow.StringFixed(2),
		},
		Pagination: &PaginationResponse{
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
	}
}
