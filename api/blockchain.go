package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yacinecs/wallet-backend/api/apistrings"
	apimodels "github.com/yacinecs/wallet-backend/api/models"
	basemodels "github.com/yacinecs/wallet-backend/models"
	"github.com/yacinecs/wallet-backend/providers/chain"
	"github.com/yacinecs/wallet-backend/services/blockchain"
	"github.com/yacinecs/wallet-backend/services/wallet"
	"github.com/yacinecs/wallet-backend/utils"
)

type Blockchain struct {
	server *Server
}

func (b Blockchain) router(server *Server) {
	b.server = server

	serverGroup := server.router.Group("/api/v1/blockchain", AuthenticatedMiddleware())
	serverGroup.GET("balance", b.getTokenBalance)
	serverGroup.GET("transactions", b.listTransferEvents)
	serverGroup.POST("custodial/send", b.custodialSend)
	serverGroup.POST("deposit", b.recordDeposit)
}

func (b *Blockchain) getTokenBalance(ctx *gin.Context) {
	address := ctx.Query("address")

	balance, err := b.server.chain.TokenBalance(ctx, address)
	if errors.Is(err, chain.ErrInvalidAddress) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidChainAddress))
		return
	} else if err != nil {
		b.server.logger.Error(err)
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("token balance retrieved", balance))
}

func (b *Blockchain) listTransferEvents(ctx *gin.Context) {
	address := ctx.Query("address")
	fromBlock := parseQueryUint(ctx, "from_block", 0)
	toBlock := parseQueryUint(ctx, "to_block", 0)

	if toBlock != 0 && fromBlock > toBlock {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBlockRange))
		return
	}

	events, err := b.server.chain.TransferEvents(ctx, address, fromBlock, toBlock)
	if errors.Is(err, chain.ErrInvalidAddress) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidChainAddress))
		return
	} else if err != nil {
		b.server.logger.Error(err)
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transfer events retrieved", events))
}

func (b *Blockchain) custodialSend(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	var params apimodels.CustodialSendParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidSendInput))
		return
	}

	result, err := b.server.chain.CustodialSend(ctx, activeUser.UserID, params.ToAddress, params.Amount)
	switch {
	case err == nil:
	case errors.Is(err, chain.ErrInvalidAddress):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidChainAddress))
		return
	case errors.Is(err, wallet.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	case errors.Is(err, wallet.ErrInsufficientBalance):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InsufficientBalance))
		return
	case errors.Is(err, wallet.ErrWalletNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	case errors.Is(err, blockchain.ErrSendRejected):
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.SendRejected))
		return
	default:
		b.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := apimodels.CustodialSendResponse{
		TxHash:      result.TxHash,
		Status:      result.Status,
		Wallet:      apimodels.ToWalletResponse(result.Wallet),
		Transaction: apimodels.ToTransactionResponse(result.Entry),
	}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("custodial send broadcast", response))
}

func (b *Blockchain) recordDeposit(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	var params apimodels.RecordDepositParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidDepositInput))
		return
	}

	updated, entry, err := b.server.chain.RecordDeposit(ctx, activeUser.UserID, params.TxHash, params.Amount)
	switch {
	case err == nil:
	case errors.Is(err, blockchain.ErrDepositNotConfirmed):
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.DepositNotConfirmed))
		return
	case errors.Is(err, blockchain.ErrDepositFailed):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.DepositFailed))
		return
	case errors.Is(err, wallet.ErrAlreadyProcessed):
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.DepositAlreadyExists))
		return
	case errors.Is(err, wallet.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	case errors.Is(err, wallet.ErrWalletNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	default:
		b.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := apimodels.WalletWithTransaction{
		Wallet:      apimodels.ToWalletResponse(updated),
		Transaction: apimodels.ToTransactionResponse(entry),
	}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deposit credited", response))
}

func parseQueryUint(ctx *gin.Context, key string, fallback uint64) uint64 {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
