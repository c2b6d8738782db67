package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacinecs/wallet-backend/utils"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	TokenController = utils.NewJWTToken(&utils.Config{
		ServerPort: 8080,
		SigningKey: "middleware-test-key",
	})

	router := gin.New()
	router.GET("/protected", AuthenticatedMiddleware(), func(ctx *gin.Context) {
		activeUser, err := utils.GetActiveUser(ctx)
		require.NoError(t, err)
		ctx.JSON(http.StatusOK, gin.H{"user_id": activeUser.UserID})
	})
	return router
}

func TestAuthenticatedMiddlewareAllowsValidToken(t *testing.T) {
	router := newAuthTestRouter(t)

	token, err := TokenController.CreateToken(utils.TokenObject{UserID: 5, Email: "user@example.com"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":5`)
}

func TestAuthenticatedMiddlewareRejectsMissingHeader(t *testing.T) {
	router := newAuthTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticatedMiddlewareRejectsMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticatedMiddlewareRejectsForgedToken(t *testing.T) {
	router := newAuthTestRouter(t)

	forger := utils.NewJWTToken(&utils.Config{SigningKey: "some-other-key"})
	token, err := forger.CreateToken(utils.TokenObject{UserID: 5, Email: "user@example.com"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
