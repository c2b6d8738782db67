package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/services"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
)

const walletCacheTTL = 60 * time.Second

// Store is the slice of the database layer the ledger needs: the generated
// queries plus transactional execution.
type Store interface {
	db.Querier
	ExecTx(ctx context.Context, fq func(q db.Querier) error) error
}

type WalletService struct {
	store  Store
	logger *logging.Logger
	cache  *services.RedisService
}

// NewWalletService creates the ledger service. cache may be nil, in which
// case wallet reads always hit the database.
func NewWalletService(store Store, logger *logging.Logger, cache *services.RedisService) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
		cache:  cache,
	}
}

// CreateWallet inserts a zero-balance wallet inside the caller's
// transaction. Used by registration so the user and its wallet commit
// together.
func (w *WalletService) CreateWallet(ctx context.Context, q db.Querier, userID int64) (*db.Wallet, error) {
	newWallet, err := q.CreateWallet(ctx, db.CreateWalletParams{
		UserID:  userID,
		Balance: "0",
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			return nil, NewWalletError(ErrWalletNotPossible, userID, err)
		}
		return nil, err
	}
	return &newWallet, nil
}

func (w *WalletService) GetWalletByUserID(ctx context.Context, userID int64) (*WalletModel, error) {
	if w.cache != nil {
		var cached WalletModel
		if err := w.cache.GetJSON(ctx, walletCacheKey(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	dbWallet, err := w.store.GetWalletByUserID(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	model := ToWalletModel(&dbWallet)
	if w.cache != nil {
		if err := w.cache.SetJSON(ctx, walletCacheKey(userID), model, walletCacheTTL); err != nil {
			w.logger.Warn(fmt.Sprintf("failed to cache wallet for user %d: %v", userID, err))
		}
	}
	return model, nil
}

// Credit adds amount to the user's wallet and appends a deposit entry with
// balance snapshots, all in one database transaction.
func (w *WalletService) Credit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*WalletModel, *db.Transaction, error) {
	return w.credit(ctx, userID, amount, description, "")
}

// CreditFromChain credits a confirmed on-chain deposit. The ledger row
// records the chain transaction hash; a second call with the same hash
// fails with ErrAlreadyProcessed instead of double-crediting.
func (w *WalletService) CreditFromChain(ctx context.Context, userID int64, amount decimal.Decimal, txHash, description string) (*WalletModel, *db.Transaction, error) {
	if txHash == "" {
		return nil, nil, ErrAlreadyProcessed
	}
	return w.credit(ctx, userID, amount, description, txHash)
}

func (w *WalletService) credit(ctx context.Context, userID int64, amount decimal.Decimal, description, txHash string) (*WalletModel, *db.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}

	var updated db.Wallet
	var entry db.Transaction

	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := q.GetWalletByUserIDForUpdate(ctx, userID)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}

		before, err := decimal.NewFromString(current.Balance)
		if err != nil {
			return fmt.Errorf("corrupt balance on wallet %v: %w", current.ID, err)
		}
		after := before.Add(amount)

		updated, err = q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
			ID:      current.ID,
			Balance: after.StringFixed(2),
		})
		if err != nil {
			return err
		}

		entry, err = q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:          userID,
			WalletID:        current.ID,
			Type:            TypeDeposit,
			Amount:          amount.StringFixed(2),
			BalanceBefore:   before.StringFixed(2),
			BalanceAfter:    after.StringFixed(2),
			Description:     toNullString(description),
			TransactionHash: toNullString(txHash),
			Status:          StatusCompleted,
		})
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
				return ErrAlreadyProcessed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	w.invalidateCache(ctx, userID)
	return ToWalletModel(&updated), &entry, nil
}

// Debit subtracts amount from the user's wallet and appends a withdrawal
// entry. Fails with ErrInsufficientBalance before any write when the
// balance would go negative.
func (w *WalletService) Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*WalletModel, *db.Transaction, error) {
	return w.debit(ctx, userID, amount, description, "", StatusCompleted)
}

// DebitForChain reserves funds for a custodial on-chain send. The entry is
// written as pending; the broadcast hash is stamped on afterwards with
// AttachChainHash, and the confirmation worker later settles the entry to
// completed or failed.
func (w *WalletService) DebitForChain(ctx context.Context, userID int64, amount decimal.Decimal, txHash, description string) (*WalletModel, *db.Transaction, error) {
	return w.debit(ctx, userID, amount, description, txHash, StatusPending)
}

func (w *WalletService) debit(ctx context.Context, userID int64, amount decimal.Decimal, description, txHash, status string) (*WalletModel, *db.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}

	var updated db.Wallet
	var entry db.Transaction

	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := q.GetWalletByUserIDForUpdate(ctx, userID)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}

		before, err := decimal.NewFromString(current.Balance)
		if err != nil {
			return fmt.Errorf("corrupt balance on wallet %v: %w", current.ID, err)
		}

		after := before.Sub(amount)
		if after.IsNegative() {
			return ErrInsufficientBalance
		}

		updated, err = q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
			ID:      current.ID,
			Balance: after.StringFixed(2),
		})
		if err != nil {
			return err
		}

		entry, err = q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:          userID,
			WalletID:        current.ID,
			Type:            TypeWithdrawal,
			Amount:          amount.StringFixed(2),
			BalanceBefore:   before.StringFixed(2),
			BalanceAfter:    after.StringFixed(2),
			Description:     toNullString(description),
			TransactionHash: toNullString(txHash),
			Status:          status,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	w.invalidateCache(ctx, userID)
	return ToWalletModel(&updated), &entry, nil
}

// Transfer moves amount between two users' wallets. Both balance updates
// and both ledger entries (transfer_out for the sender, transfer_in for the
// recipient, cross-referencing each other) are committed as one unit. The
// wallet rows are locked in ascending user-id order so two opposite
// transfers cannot deadlock.
func (w *WalletService) Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) (*TransferResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if fromUserID == toUserID {
		return nil, ErrSelfTransfer
	}

	var result TransferResult

	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		first, second := fromUserID, toUserID
		if second < first {
			first, second = second, first
		}

		firstWallet, err := q.GetWalletByUserIDForUpdate(ctx, first)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}
		secondWallet, err := q.GetWalletByUserIDForUpdate(ctx, second)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}

		fromWallet, toWallet := firstWallet, secondWallet
		if fromWallet.UserID != fromUserID {
			fromWallet, toWallet = secondWallet, firstWallet
		}

		fromBefore, err := decimal.NewFromString(fromWallet.Balance)
		if err != nil {
			return fmt.Errorf("corrupt balance on wallet %v: %w", fromWallet.ID, err)
		}
		toBefore, err := decimal.NewFromString(toWallet.Balance)
		if err != nil {
			return fmt.Errorf("corrupt balance on wallet %v: %w", toWallet.ID, err)
		}

		if fromBefore.LessThan(amount) {
			return ErrInsufficientBalance
		}

		fromAfter := fromBefore.Sub(amount)
		toAfter := toBefore.Add(amount)

		updatedFrom, err := q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
			ID:      fromWallet.ID,
			Balance: fromAfter.StringFixed(2),
		})
		if err != nil {
			return err
		}
		updatedTo, err := q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
			ID:      toWallet.ID,
			Balance: toAfter.StringFixed(2),
		})
		if err != nil {
			return err
		}

		outbound, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:        fromUserID,
			WalletID:      fromWallet.ID,
			Type:          TypeTransferOut,
			Amount:        amount.StringFixed(2),
			BalanceBefore: fromBefore.StringFixed(2),
			BalanceAfter:  fromAfter.StringFixed(2),
			RecipientID:   sql.NullInt64{Int64: toUserID, Valid: true},
			Description:   toNullString(description),
			Status:        StatusCompleted,
		})
		if err != nil {
			return err
		}
		inbound, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:        toUserID,
			WalletID:      toWallet.ID,
			Type:          TypeTransferIn,
			Amount:        amount.StringFixed(2),
			BalanceBefore: toBefore.StringFixed(2),
			BalanceAfter:  toAfter.StringFixed(2),
			RecipientID:   sql.NullInt64{Int64: fromUserID, Valid: true},
			Description:   toNullString(description),
			Status:        StatusCompleted,
		})
		if err != nil {
			return err
		}

		result = TransferResult{
			FromWallet: ToWalletModel(&updatedFrom),
			ToWallet:   ToWalletModel(&updatedTo),
			Outbound:   &outbound,
			Inbound:    &inbound,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.invalidateCache(ctx, fromUserID)
	w.invalidateCache(ctx, toUserID)
	return &result, nil
}

// AttachChainHash stamps the broadcast hash onto a pending chain entry
// once the signer has accepted the send.
func (w *WalletService) AttachChainHash(ctx context.Context, txID uuid.UUID, txHash string) (*db.Transaction, error) {
	entry, err := w.store.AttachTransactionHash(ctx, db.AttachTransactionHashParams{
		ID:              txID,
		TransactionHash: toNullString(txHash),
	})
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	} else if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}
	return &entry, nil
}

// SettleChainDebit resolves a pending chain withdrawal. A confirmed send
// flips the entry to completed; a failed one flips it to failed and
// returns the reserved funds to the wallet, all in one transaction.
func (w *WalletService) SettleChainDebit(ctx context.Context, txID uuid.UUID, succeeded bool) error {
	var userID int64

	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		entry, err := q.GetTransactionByID(ctx, txID)
		if err == sql.ErrNoRows {
			return ErrTransactionNotFound
		} else if err != nil {
			return err
		}
		if entry.Status != StatusPending {
			return nil
		}
		userID = entry.UserID

		status := StatusCompleted
		if !succeeded {
			status = StatusFailed

			current, err := q.GetWalletByUserIDForUpdate(ctx, entry.UserID)
			if err != nil {
				return err
			}
			balance, err := decimal.NewFromString(current.Balance)
			if err != nil {
				return fmt.Errorf("corrupt balance on wallet %v: %w", current.ID, err)
			}
			amount, err := decimal.NewFromString(entry.Amount)
			if err != nil {
				return fmt.Errorf("corrupt amount on transaction %v: %w", entry.ID, err)
			}

			if _, err := q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
				ID:      current.ID,
				Balance: balance.Add(amount).StringFixed(2),
			}); err != nil {
				return err
			}
		}

		_, err = q.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
			ID:     txID,
			Status: status,
		})
		return err
	})
	if err != nil {
		return err
	}

	if userID != 0 {
		w.invalidateCache(ctx, userID)
	}
	return nil
}

func (w *WalletService) invalidateCache(ctx context.Context, userID int64) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Delete(ctx, walletCacheKey(userID)); err != nil {
		w.logger.Warn(fmt.Sprintf("failed to invalidate wallet cache for user %d: %v", userID, err))
	}
}

func walletCacheKey(userID int64) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

// validateAmount enforces positive values quantised to the ledger's two
// decimal places. Trailing zeros beyond two places are fine; a real
// sub-cent remainder is not.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
