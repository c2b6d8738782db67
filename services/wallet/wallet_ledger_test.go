package wallet

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
)

// fakeStore is an in-memory Store. ExecTx snapshots the state up front and
// restores it when the callback errors, mirroring a rollback.
type fakeStore struct {
	wallets map[int64]db.Wallet
	entries map[uuid.UUID]db.Transaction
	order   []uuid.UUID
}

var errNotSupported = errors.New("not supported by fake store")

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets: make(map[int64]db.Wallet),
		entries: make(map[uuid.UUID]db.Transaction),
	}
}

func (f *fakeStore) seedWallet(userID int64, balance string) db.Wallet {
	w := db.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   balance,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.wallets[userID] = w
	return w
}

func (f *fakeStore) entriesInOrder() []db.Transaction {
	out := make([]db.Transaction, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.entries[id])
	}
	return out
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wallets := maps.Clone(f.wallets)
	entries := maps.Clone(f.entries)
	order := slices.Clone(f.order)
	if err := fq(f); err != nil {
		f.wallets, f.entries, f.order = wallets, entries, order
		return err
	}
	return nil
}

func (f *fakeStore) GetWalletByUserID(ctx context.Context, userID int64) (db.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	return w, nil
}

func (f *fakeStore) GetWalletByUserIDForUpdate(ctx context.Context, userID int64) (db.Wallet, error) {
	return f.GetWalletByUserID(ctx, userID)
}

func (f *fakeStore) CreateWallet(ctx context.Context, arg db.CreateWalletParams) (db.Wallet, error) {
	if _, ok := f.wallets[arg.UserID]; ok {
		return db.Wallet{}, &pq.Error{Code: db.DuplicateEntry}
	}
	return f.seedWallet(arg.UserID, arg.Balance), nil
}

func (f *fakeStore) UpdateWalletBalance(ctx context.Context, arg db.UpdateWalletBalanceParams) (db.Wallet, error) {
	for userID, w := range f.wallets {
		if w.ID == arg.ID {
			w.Balance = arg.Balance
			w.UpdatedAt = time.Now()
			f.wallets[userID] = w
			return w, nil
		}
	}
	return db.Wallet{}, sql.ErrNoRows
}

func (f *fakeStore) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	if arg.TransactionHash.Valid {
		for _, e := range f.entries {
			if e.TransactionHash.Valid && e.TransactionHash.String == arg.TransactionHash.String {
				return db.Transaction{}, &pq.Error{Code: db.DuplicateEntry}
			}
		}
	}
	entry := db.Transaction{
		ID:              uuid.New(),
		UserID:          arg.UserID,
		WalletID:        arg.WalletID,
		Type:            arg.Type,
		Amount:          arg.Amount,
		BalanceBefore:   arg.BalanceBefore,
		BalanceAfter:    arg.BalanceAfter,
		RecipientID:     arg.RecipientID,
		Description:     arg.Description,
		TransactionHash: arg.TransactionHash,
		Status:          arg.Status,
		Metadata:        arg.Metadata,
		CreatedAt:       time.Now(),
	}
	f.entries[entry.ID] = entry
	f.order = append(f.order, entry.ID)
	return entry, nil
}

func (f *fakeStore) GetTransactionByID(ctx context.Context, id uuid.UUID) (db.GetTransactionByIDRow, error) {
	e, ok := f.entries[id]
	if !ok {
		return db.GetTransactionByIDRow{}, sql.ErrNoRows
	}
	return db.GetTransactionByIDRow{
		ID:              e.ID,
		UserID:          e.UserID,
		WalletID:        e.WalletID,
		Type:            e.Type,
		Amount:          e.Amount,
		BalanceBefore:   e.BalanceBefore,
		BalanceAfter:    e.BalanceAfter,
		RecipientID:     e.RecipientID,
		Description:     e.Description,
		TransactionHash: e.TransactionHash,
		Status:          e.Status,
		Metadata:        e.Metadata,
		CreatedAt:       e.CreatedAt,
	}, nil
}

func (f *fakeStore) GetTransactionByHash(ctx context.Context, transactionHash sql.NullString) (db.Transaction, error) {
	for _, e := range f.entries {
		if e.TransactionHash.Valid && transactionHash.Valid && e.TransactionHash.String == transactionHash.String {
			return e, nil
		}
	}
	return db.Transaction{}, sql.ErrNoRows
}

func (f *fakeStore) AttachTransactionHash(ctx context.Context, arg db.AttachTransactionHashParams) (db.Transaction, error) {
	for _, e := range f.entries {
		if e.ID != arg.ID && e.TransactionHash.Valid && arg.TransactionHash.Valid && e.TransactionHash.String == arg.TransactionHash.String {
			return db.Transaction{}, &pq.Error{Code: db.DuplicateEntry}
		}
	}
	e, ok := f.entries[arg.ID]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	e.TransactionHash = arg.TransactionHash
	f.entries[arg.ID] = e
	return e, nil
}

func (f *fakeStore) UpdateTransactionStatus(ctx context.Context, arg db.UpdateTransactionStatusParams) (db.Transaction, error) {
	e, ok := f.entries[arg.ID]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	e.Status = arg.Status
	f.entries[arg.ID] = e
	return e, nil
}

func (f *fakeStore) ListPendingChainTransactions(ctx context.Context, limit int32) ([]db.Transaction, error) {
	var out []db.Transaction
	for _, e := range f.entriesInOrder() {
		if e.Status == StatusPending && e.Type == TypeWithdrawal {
			out = append(out, e)
		}
		if int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) CountTransactionsByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateActivityLog(ctx context.Context, arg db.CreateActivityLogParams) (db.ActivityLog, error) {
	return db.ActivityLog{}, errNotSupported
}

func (f *fakeStore) CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error) {
	return db.User{}, errNotSupported
}

func (f *fakeStore) GetActivityLogsByUser(ctx context.Context, arg db.GetActivityLogsByUserParams) ([]db.ActivityLog, error) {
	return nil, errNotSupported
}

func (f *fakeStore) GetRecentActivityLogs(ctx context.Context, arg db.GetRecentActivityLogsParams) ([]db.ActivityLog, error) {
	return nil, errNotSupported
}

func (f *fakeStore) GetTransactionStats(ctx context.Context, userID int64) (db.GetTransactionStatsRow, error) {
	return db.GetTransactionStatsRow{}, errNotSupported
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	return db.User{}, errNotSupported
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (db.User, error) {
	return db.User{}, errNotSupported
}

func (f *fakeStore) ListTransactionsByUserID(ctx context.Context, arg db.ListTransactionsByUserIDParams) ([]db.ListTransactionsByUserIDRow, error) {
	return nil, errNotSupported
}

func newLedgerService() (*WalletService, *fakeStore) {
	store := newFakeStore()
	return NewWalletService(store, logging.NewLogger(), nil), store
}

func TestCreditWritesSnapshotPair(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	updated, entry, err := svc.Credit(context.Background(), 1, decimal.RequireFromString("2.50"), "top up")
	require.NoError(t, err)

	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, TypeDeposit, entry.Type)
	assert.Equal(t, StatusCompleted, entry.Status)
	assert.Equal(t, "2.50", entry.Amount)
	assert.Equal(t, "10.00", entry.BalanceBefore)
	assert.Equal(t, "12.50", entry.BalanceAfter)
	assert.Equal(t, "10.00", decimal.RequireFromString(entry.BalanceAfter).Sub(decimal.RequireFromString(entry.Amount)).StringFixed(2))
}

func TestDebitOverdraftLeavesNoEntry(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "5.00")

	_, _, err := svc.Debit(context.Background(), 1, decimal.RequireFromString("7.50"), "too much")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, "5.00", store.wallets[1].Balance)
	assert.Empty(t, store.entriesInOrder())
}

func TestDebitMissingWallet(t *testing.T) {
	svc, _ := newLedgerService()

	_, _, err := svc.Debit(context.Background(), 99, decimal.RequireFromString("1.00"), "")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestTransferConservesFunds(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")
	store.seedWallet(2, "3.00")

	result, err := svc.Transfer(context.Background(), 1, 2, decimal.RequireFromString("4.00"), "rent")
	require.NoError(t, err)

	assert.True(t, result.FromWallet.Balance.Equal(decimal.RequireFromString("6.00")))
	assert.True(t, result.ToWallet.Balance.Equal(decimal.RequireFromString("7.00")))

	out, in := result.Outbound, result.Inbound
	assert.Equal(t, TypeTransferOut, out.Type)
	assert.Equal(t, TypeTransferIn, in.Type)
	assert.Equal(t, out.Amount, in.Amount)
	assert.Equal(t, int64(2), out.RecipientID.Int64)
	assert.Equal(t, int64(1), in.RecipientID.Int64)
	assert.Equal(t, "10.00", out.BalanceBefore)
	assert.Equal(t, "6.00", out.BalanceAfter)
	assert.Equal(t, "3.00", in.BalanceBefore)
	assert.Equal(t, "7.00", in.BalanceAfter)

	total := decimal.RequireFromString(store.wallets[1].Balance).Add(decimal.RequireFromString(store.wallets[2].Balance))
	assert.True(t, total.Equal(decimal.RequireFromString("13.00")))
}

func TestTransferInsufficientRollsBack(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "2.00")
	store.seedWallet(2, "3.00")

	_, err := svc.Transfer(context.Background(), 1, 2, decimal.RequireFromString("4.00"), "")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, "2.00", store.wallets[1].Balance)
	assert.Equal(t, "3.00", store.wallets[2].Balance)
	assert.Empty(t, store.entriesInOrder())
}

func TestTransferToUnknownRecipientRollsBack(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	_, err := svc.Transfer(context.Background(), 1, 2, decimal.RequireFromString("4.00"), "")
	require.ErrorIs(t, err, ErrWalletNotFound)

	assert.Equal(t, "10.00", store.wallets[1].Balance)
	assert.Empty(t, store.entriesInOrder())
}

func TestTransferToSelf(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	_, err := svc.Transfer(context.Background(), 1, 1, decimal.RequireFromString("4.00"), "")
	assert.ErrorIs(t, err, ErrSelfTransfer)
}

func TestCreditFromChainIdempotent(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "0.00")
	hash := "0xdeadbeef"

	_, entry, err := svc.CreditFromChain(context.Background(), 1, decimal.RequireFromString("9.99"), hash, "deposit")
	require.NoError(t, err)
	assert.Equal(t, hash, entry.TransactionHash.String)

	_, _, err = svc.CreditFromChain(context.Background(), 1, decimal.RequireFromString("9.99"), hash, "deposit")
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	assert.Equal(t, "9.99", store.wallets[1].Balance)
	assert.Len(t, store.entriesInOrder(), 1)
}

func TestCreditFromChainRequiresHash(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "0.00")

	_, _, err := svc.CreditFromChain(context.Background(), 1, decimal.RequireFromString("1.00"), "", "deposit")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, "0.00", store.wallets[1].Balance)
}

func TestSettleChainDebitRefundsFailedSend(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	_, entry, err := svc.DebitForChain(context.Background(), 1, decimal.RequireFromString("4.00"), "", "send")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, entry.Status)
	assert.Equal(t, "6.00", store.wallets[1].Balance)

	require.NoError(t, svc.SettleChainDebit(context.Background(), entry.ID, false))
	assert.Equal(t, "10.00", store.wallets[1].Balance)
	assert.Equal(t, StatusFailed, store.entries[entry.ID].Status)
}

func TestSettleChainDebitCompletesConfirmedSend(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	_, entry, err := svc.DebitForChain(context.Background(), 1, decimal.RequireFromString("4.00"), "", "send")
	require.NoError(t, err)

	require.NoError(t, svc.SettleChainDebit(context.Background(), entry.ID, true))
	assert.Equal(t, "6.00", store.wallets[1].Balance)
	assert.Equal(t, StatusCompleted, store.entries[entry.ID].Status)

	// Settling again is a no-op once the entry has left pending.
	require.NoError(t, svc.SettleChainDebit(context.Background(), entry.ID, false))
	assert.Equal(t, "6.00", store.wallets[1].Balance)
	assert.Equal(t, StatusCompleted, store.entries[entry.ID].Status)
}

func TestSettleChainDebitUnknownEntry(t *testing.T) {
	svc, _ := newLedgerService()

	err := svc.SettleChainDebit(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestAttachChainHash(t *testing.T) {
	svc, store := newLedgerService()
	store.seedWallet(1, "10.00")

	_, entry, err := svc.DebitForChain(context.Background(), 1, decimal.RequireFromString("4.00"), "", "send")
	require.NoError(t, err)
	assert.False(t, entry.TransactionHash.Valid)

	stamped, err := svc.AttachChainHash(context.Background(), entry.ID, "0xabc123")
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", stamped.TransactionHash.String)

	_, err = svc.AttachChainHash(context.Background(), uuid.New(), "0xother")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
