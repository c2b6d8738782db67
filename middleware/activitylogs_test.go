package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldLog(t *testing.T) {
	assert.True(t, shouldLog("/api/v1/auth/login"))
	assert.True(t, shouldLog("/api/v1/auth/logout"))
	assert.True(t, shouldLog("/api/v1/transfer"))
	assert.True(t, shouldLog("/api/v1/blockchain/custodial/send"))

	assert.False(t, shouldLog("/api/v1/wallet/balance"))
	assert.False(t, shouldLog("/"))
}

func TestActionFromRequest(t *testing.T) {
	assert.Equal(t, "user 3 logged in", actionFromRequest(http.MethodPost, "/api/v1/auth/login", 3))
	assert.Equal(t, "user 3 logged out", actionFromRequest(http.MethodPost, "/api/v1/auth/logout", 3))
	assert.Equal(t, "user 3 transferred funds", actionFromRequest(http.MethodPost, "/api/v1/transfer", 3))
	assert.Equal(t, "GET /unknown", actionFromRequest(http.MethodGet, "/unknown", 3))
}
