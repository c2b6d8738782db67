package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yacinecs/wallet-backend/api/apistrings"
	apimodels "github.com/yacinecs/wallet-backend/api/models"
	basemodels "github.com/yacinecs/wallet-backend/models"
	"github.com/yacinecs/wallet-backend/services/transaction"
	"github.com/yacinecs/wallet-backend/utils"
)

type Transactions struct {
	server *Server
}

func (t Transactions) router(server *Server) {
	t.server = server

	serverGroup := server.router.Group("/api/v1/transactions", AuthenticatedMiddleware())
	serverGroup.GET("", t.listTransactions)
	serverGroup.GET(":id", t.getTransaction)
}

func (t *Transactions) listTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	limit := parseQueryInt(ctx, "limit", 20)
	page := parseQueryInt(ctx, "page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	history, err := t.server.transactions.History(ctx, activeUser.UserID, limit, offset)
	if errors.Is(err, transaction.ErrInvalidPaging) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	} else if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	stats, err := t.server.transactions.Stats(ctx, activeUser.UserID)
	if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transactions retrieved", apimodels.ToTransactionListResponse(history, stats)))
}

func (t *Transactions) getTransaction(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionID))
		return
	}

	entry, err := t.server.transactions.ByID(ctx, activeUser.UserID, id)
	if errors.Is(err, transaction.ErrTransactionNotFound) || errors.Is(err, transaction.ErrNotOwner) {
		// Treat another user's entry as missing rather than revealing it
		// exists.
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.TransactionNotFound))
		return
	} else if err != nil {
		t.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transaction retrieved", apimodels.ToTransactionDetailResponse(entry)))
}

func parseQueryInt(ctx *gin.Context, key string, fallback int32) int32 {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || parsed < 0 {
		return fallback
	}
	return int32(parsed)
}
