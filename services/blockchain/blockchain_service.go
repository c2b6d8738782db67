package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/providers"
	"github.com/yacinecs/wallet-backend/providers/chain"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
	"github.com/yacinecs/wallet-backend/services/monitoring/tasks"
	"github.com/yacinecs/wallet-backend/services/wallet"
)

const (
	confirmationTaskID   = "chain-confirmations"
	confirmationInterval = 30 * time.Second
	confirmationBatch    = 50
	settleTimeout        = 10 * time.Second
	staleSendCutoff      = 5 * time.Minute
)

// ChainClient is the slice of the chain provider this service drives.
type ChainClient interface {
	GetTokenBalance(ctx context.Context, address string) (*chain.TokenBalance, error)
	ListTransferEvents(ctx context.Context, address string, fromBlock, toBlock uint64) ([]chain.TransferEvent, error)
	SendToken(ctx context.Context, toAddress string, amount decimal.Decimal) (*chain.SendResult, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*chain.TxReceipt, error)
}

// Store is the slice of the database layer the confirmation worker reads.
type Store interface {
	ListPendingChainTransactions(ctx context.Context, limit int32) ([]db.Transaction, error)
}

// BlockchainService glues the chain provider to the internal ledger.
// Chain RPC calls happen outside database transactions; the ledger
// mutations they trigger each commit as their own transaction.
type BlockchainService struct {
	provider *providers.ProviderService
	wallets  *wallet.WalletService
	store    Store
	logger   *logging.Logger
}

func NewBlockchainService(provider *providers.ProviderService, wallets *wallet.WalletService, store Store, logger *logging.Logger) *BlockchainService {
	return &BlockchainService{
		provider: provider,
		wallets:  wallets,
		store:    store,
		logger:   logger,
	}
}

// client looks the chain provider up on the registry.
func (b *BlockchainService) client() (ChainClient, error) {
	prov, exists := b.provider.GetProvider(providers.ChainRPC)
	if !exists {
		return nil, fmt.Errorf("chain provider is not registered")
	}
	client, ok := prov.(ChainClient)
	if !ok {
		return nil, fmt.Errorf("failed to parse provider of type - Chain Provider")
	}
	return client, nil
}

func (b *BlockchainService) TokenBalance(ctx context.Context, address string) (*chain.TokenBalance, error) {
	client, err := b.client()
	if err != nil {
		return nil, err
	}
	return client.GetTokenBalance(ctx, address)
}

func (b *BlockchainService) TransferEvents(ctx context.Context, address string, fromBlock, toBlock uint64) ([]chain.TransferEvent, error) {
	client, err := b.client()
	if err != nil {
		return nil, err
	}
	return client.ListTransferEvents(ctx, address, fromBlock, toBlock)
}

// SendResult pairs the chain-side broadcast with the ledger entry that
// reserved the funds.
type SendResult struct {
	TxHash string              `json:"tx_hash"`
	Status string              `json:"status"`
	Entry  *db.Transaction     `json:"entry"`
	Wallet *wallet.WalletModel `json:"wallet"`
}

// CustodialSend debits the user's wallet with a pending entry, asks the
// signer to broadcast the token transfer, then stamps the hash onto the
// entry. A signer failure refunds the reservation; the confirmation
// worker settles the rest once a receipt lands.
func (b *BlockchainService) CustodialSend(ctx context.Context, userID int64, toAddress string, amount decimal.Decimal) (*SendResult, error) {
	client, err := b.client()
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("custodial token send to %s", toAddress)

	updated, entry, err := b.wallets.DebitForChain(ctx, userID, amount, "", description)
	if err != nil {
		return nil, err
	}

	sent, err := client.SendToken(ctx, toAddress, amount)
	if err != nil {
		// Refund on a context detached from the request so a client
		// disconnect cannot strand the reservation as pending.
		settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
		defer cancel()
		if settleErr := b.wallets.SettleChainDebit(settleCtx, entry.ID, false); settleErr != nil {
			b.logger.Error(fmt.Sprintf("failed to refund rejected send %v: %v", entry.ID, settleErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrSendRejected, err)
	}

	stampCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()
	stamped, err := b.wallets.AttachChainHash(stampCtx, entry.ID, sent.TxHash)
	if err != nil {
		// The send is already on chain; leave the entry pending and let
		// the operator reconcile rather than refunding broadcast funds.
		b.logger.Error(fmt.Sprintf("failed to attach hash %s to entry %v: %v", sent.TxHash, entry.ID, err))
		return nil, err
	}

	return &SendResult{
		TxHash: sent.TxHash,
		Status: stamped.Status,
		Entry:  stamped,
		Wallet: updated,
	}, nil
}

// RecordDeposit credits a confirmed on-chain deposit into the user's
// wallet. The receipt must exist and have succeeded; the credit is
// idempotent by transaction hash.
func (b *BlockchainService) RecordDeposit(ctx context.Context, userID int64, txHash string, amount decimal.Decimal) (*wallet.WalletModel, *db.Transaction, error) {
	client, err := b.client()
	if err != nil {
		return nil, nil, err
	}

	receipt, err := client.GetTransactionReceipt(ctx, txHash)
	if errors.Is(err, chain.ErrReceiptNotFound) {
		return nil, nil, ErrDepositNotConfirmed
	} else if err != nil {
		return nil, nil, err
	}
	if !receipt.Succeeded() {
		return nil, nil, ErrDepositFailed
	}

	return b.wallets.CreditFromChain(ctx, userID, amount, txHash, "on-chain token deposit")
}

// ConfirmPendingSends polls receipts for pending chain withdrawals and
// settles them. Entries without a receipt yet are left for the next run.
// Entries that never got a broadcast hash stamped are never refunded
// automatically (the funds may have left the custodial account); past a
// grace period they are flagged for manual reconciliation instead.
func (b *BlockchainService) ConfirmPendingSends(ctx context.Context) error {
	client, err := b.client()
	if err != nil {
		return err
	}

	pending, err := b.store.ListPendingChainTransactions(ctx, confirmationBatch)
	if err != nil {
		return err
	}

	for _, entry := range pending {
		if entry.Type != wallet.TypeWithdrawal {
			continue
		}
		if !entry.TransactionHash.Valid {
			if time.Since(entry.CreatedAt) > staleSendCutoff {
				b.logger.Error(fmt.Sprintf("pending send %v has no broadcast hash after %v, needs manual reconciliation", entry.ID, staleSendCutoff))
			}
			continue
		}

		receipt, err := client.GetTransactionReceipt(ctx, entry.TransactionHash.String)
		if errors.Is(err, chain.ErrReceiptNotFound) {
			continue
		} else if err != nil {
			b.logger.Warn(fmt.Sprintf("receipt poll failed for %s: %v", entry.TransactionHash.String, err))
			continue
		}

		if err := b.wallets.SettleChainDebit(ctx, entry.ID, receipt.Succeeded()); err != nil {
			b.logger.Error(fmt.Sprintf("failed to settle entry %v: %v", entry.ID, err))
		}
	}
	return nil
}

// StartConfirmationWorker registers the receipt poller on the scheduler.
func (b *BlockchainService) StartConfirmationWorker(scheduler *tasks.TaskScheduler) error {
	if _, err := scheduler.AddTask(confirmationTaskID, "chain confirmation poller", b.ConfirmPendingSends, confirmationInterval); err != nil {
		return err
	}
	return scheduler.ScheduleTask(confirmationTaskID, confirmationInterval)
}
