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

func newLogoutTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	TokenController = utils.NewJWTToken(&utils.Config{
		SigningKey: "auth-test-key",
	})

	a := &Auth{server: &Server{}}
	router := gin.New()
	router.POST("/api/v1/auth/logout", AuthenticatedMiddleware(), a.logout)
	return router
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:user:7", sessionKey(7))
}

// Logout succeeds when no Redis is configured; there is simply no session
// mirror to drop.
func TestLogoutWithoutRedis(t *testing.T) {
	router := newLogoutTestRouter(t)

	token, err := TokenController.CreateToken(utils.TokenObject{UserID: 7, Email: "user@example.com"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "logout successful")
}

func TestLogoutRequiresAuthentication(t *testing.T) {
	router := newLogoutTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
