package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yacinecs/wallet-backend/api/apistrings"
	apimodels "github.com/yacinecs/wallet-backend/api/models"
	basemodels "github.com/yacinecs/wallet-backend/models"
	"github.com/yacinecs/wallet-backend/services/user"
	"github.com/yacinecs/wallet-backend/utils"
)

// sessionTTL matches the JWT lifetime so the Redis mirror outlives every
// token issued against it.
const sessionTTL = time.Hour * 168

type Auth struct {
	server *Server
}

func (a Auth) router(server *Server) {
	a.server = server

	serverGroup := server.router.Group("/api/v1/auth")
	serverGroup.GET("test", a.testAuth)
	serverGroup.POST("login", a.login)
	serverGroup.POST("register", a.register)
	serverGroup.POST("logout", AuthenticatedMiddleware(), a.logout)
	serverGroup.GET("profile", AuthenticatedMiddleware(), a.profile)
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func (a Auth) testAuth(ctx *gin.Context) {
	dr := basemodels.SuccessResponse{
		Status:  "success",
		Message: "Authentication API is active",
		Version: utils.REVISION,
	}

	ctx.JSON(http.StatusOK, dr)
}

func (a *Auth) register(ctx *gin.Context) {
	var params apimodels.RegisterUserParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidEmailPassInput))
		return
	}

	result, err := a.server.users.Register(ctx, params.Email, params.Password)
	if errors.Is(err, user.ErrUserAlreadyExists) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.UserAlreadyCreated))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	response := apimodels.UserWithWallet{
		User: apimodels.UserResponse{}.ToUserResponse(&result.User),
		Wallet: &apimodels.WalletResponse{
			WalletID:  result.Wallet.ID,
			UserID:    apimodels.ID(result.Wallet.UserID),
			Balance:   result.Wallet.Balance,
			CreatedAt: result.Wallet.CreatedAt,
			UpdatedAt: result.Wallet.UpdatedAt,
		},
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("account created successfully", response))
}

func (a *Auth) login(ctx *gin.Context) {
	var params apimodels.UserLoginParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidEmailPassInput))
		return
	}

	dbUser, err := a.server.users.Authenticate(ctx, params.Email, params.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.IncorrectEmailPass))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: dbUser.ID,
		Email:  dbUser.Email,
	})
	if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	// Mirror the session in Redis so operations tooling can see (and
	// revoke) who is logged in. Login still succeeds when Redis is down.
	if a.server.redis != nil {
		if err := a.server.redis.Set(ctx, sessionKey(dbUser.ID), token, sessionTTL); err != nil {
			a.server.logger.Warn(fmt.Sprintf("failed to mirror session for user %d: %v", dbUser.ID, err))
		}
	}

	response := apimodels.UserWithToken{
		User:  apimodels.UserResponse{}.ToUserResponse(dbUser),
		Token: token,
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("login successful", response))
}

func (a *Auth) logout(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	if a.server.redis != nil {
		if err := a.server.redis.Delete(ctx, sessionKey(activeUser.UserID)); err != nil {
			a.server.logger.Warn(fmt.Sprintf("failed to drop session for user %d: %v", activeUser.UserID, err))
		}
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("logout successful", nil))
}

func (a *Auth) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UnauthorizedRequest))
		return
	}

	dbUser, err := a.server.users.FetchUserByID(ctx, activeUser.UserID)
	if errors.Is(err, user.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		a.server.logger.Error(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("profile retrieved", apimodels.UserResponse{}.ToUserResponse(dbUser)))
}
