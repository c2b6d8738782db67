package transaction

import (
	"github.com/shopspring/decimal"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
)

func toModelFromDetail(row *db.GetTransactionByIDRow) TransactionModel {
	m := TransactionModel{
		ID:            row.ID,
		UserID:        row.UserID,
		WalletID:      row.WalletID,
		Type:          row.Type,
		Amount:        decimal.RequireFromString(row.Amount),
		BalanceBefore: decimal.RequireFromString(row.BalanceBefore),
		BalanceAfter:  decimal.RequireFromString(row.BalanceAfter),
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
	}
	if row.RecipientID.Valid {
		id := row.RecipientID.Int64
		m.RecipientID = &id
	}
	if row.RecipientEmail.Valid {
		m.RecipientEmail = row.RecipientEmail.String
	}
	if row.Description.Valid {
		m.Description = row.Description.String
	}
	if row.TransactionHash.Valid {
		m.TransactionHash = row.TransactionHash.String
	}
	return m
}

func toModelFromList(row *db.ListTransactionsByUserIDRow) TransactionModel {
	detail := db.GetTransactionByIDRow(*row)
	return toModelFromDetail(&detail)
}
