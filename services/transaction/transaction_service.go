package transaction

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type TransactionService struct {
	store  *db.Store
	logger *logging.Logger
}

func NewTransactionService(store *db.Store, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// History returns a page of the user's ledger entries, newest first,
// together with the total count for the paging envelope.
func (t *TransactionService) History(ctx context.Context, userID int64, limit, offset int32) (*TransactionPage, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidPaging
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	rows, err := t.store.ListTransactionsByUserID(ctx, db.ListTransactionsByUserIDParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	total, err := t.store.CountTransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := &TransactionPage{
		Transactions: make([]TransactionModel, 0, len(rows)),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}
	for i := range rows {
		page.Transactions = append(page.Transactions, toModelFromList(&rows[i]))
	}
	return page, nil
}

// ByID fetches a single entry and enforces ownership: a user can only read
// rows written against their own account.
func (t *TransactionService) ByID(ctx context.Context, userID int64, id uuid.UUID) (*TransactionModel, error) {
	row, err := t.store.GetTransactionByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	} else if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		return nil, ErrNotOwner
	}
	model := toModelFromDetail(&row)
	return &model, nil
}

// UpdateStatus transitions a chain-backed entry. Plain ledger entries are
// written completed and never move.
func (t *TransactionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*db.Transaction, error) {
	entry, err := t.store.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
		ID:     id,
		Status: status,
	})
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	} else if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Stats aggregates a user's totals. Credited covers deposits and inbound
// transfers; debited covers withdrawals and outbound transfers.
func (t *TransactionService) Stats(ctx context.Context, userID int64) (*StatsModel, error) {
	row, err := t.store.GetTransactionStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	credited := decimal.RequireFromString(row.TotalReceived)
	debited := decimal.RequireFromString(row.TotalSent)

	return &StatsModel{
		TotalTransactions: row.TotalTransactions,
		TotalCredited:     credited,
		TotalDebited:      debited,
		NetFlow:           credited.Sub(debited),
	}, nil
}
