package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yacinecs/wallet-backend/api/apistrings"
	apimodels "github.com/yacinecs/wallet-backend/api/models"
	basemodels "github.com/yacinecs/wallet-backend/models"
	"github.com/yacinecs/wallet-backend/services/user"
	"github.com/yacinecs/wallet-backend/services/wallet"
	"github.com/yacinecs/wallet-backend/utils"
)

type Wallets struct {
	server *Server
}

func (w Wallets) router(server *Server) {
	w.server = server

	serverGroup := server.router.Group("/api/v1", AuthenticatedMiddleware())
	serverGroup.GET("wallet", w.getWallet)
	serverGroup.GET("wallet/balance", w.getBalance)
	serverGroup.POST("wallet/add", w.addBalance)
	serverGroup.POST("wallet/subtract", w.subtractBalance)
	serverGroup.POST("transfer", w.transfer)
}

func (w *Wallets) getWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	userWallet, err := w.server.wallets.GetWalletByUserID(ctx, activeUser.UserID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("wallet retrieved", apimodels.ToWalletResponse(userWallet)))
}

func (w *Wallets) getBalance(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	userWallet, err := w.server.wallets.GetWalletByUserID(ctx, activeUser.UserID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := apimodels.BalanceResponse{Balance: userWallet.Balance.StringFixed(2)}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("balance retrieved", response))
}

func (w *Wallets) addBalance(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	var params apimodels.AdjustBalanceParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	updated, entry, err := w.server.wallets.Credit(ctx, activeUser.UserID, params.Amount, params.Description)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	response := apimodels.WalletWithTransaction{
		Wallet:      apimodels.ToWalletResponse(updated),
		Transaction: apimodels.ToTransactionResponse(entry),
	}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("wallet credited", response))
}

func (w *Wallets) subtractBalance(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	var params apimodels.AdjustBalanceParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	updated, entry, err := w.server.wallets.Debit(ctx, activeUser.UserID, params.Amount, params.Description)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	response := apimodels.WalletWithTransaction{
		Wallet:      apimodels.ToWalletResponse(updated),
		Transaction: apimodels.ToTransactionResponse(entry),
	}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("wallet debited", response))
}

func (w *Wallets) transfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	var params apimodels.TransferParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	recipient, err := w.server.users.FetchUserByEmail(ctx, params.RecipientEmail)
	if errors.Is(err, user.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.RecipientNotFound))
		return
	} else if err != nil {
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	result, err := w.server.wallets.Transfer(ctx, activeUser.UserID, recipient.ID, params.Amount, params.Description)
	if err != nil {
		w.respondWalletError(ctx, err)
		return
	}

	response := apimodels.TransferResponse{
		Wallet:   apimodels.ToWalletResponse(result.FromWallet),
		Outbound: apimodels.ToTransactionResponse(result.Outbound),
	}
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transfer completed", response))
}

// respondWalletError maps ledger errors onto the API's error strings.
func (w *Wallets) respondWalletError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
	case errors.Is(err, wallet.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
	case errors.Is(err, wallet.ErrInsufficientBalance):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InsufficientBalance))
	case errors.Is(err, wallet.ErrSelfTransfer):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.SelfTransfer))
	default:
		w.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
