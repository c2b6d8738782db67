package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(key string) *Config {
	return &Config{
		ServerPort: 8080,
		SigningKey: key,
		DBUsername: "test",
		DBPassword: "test",
	}
}

func TestCreateAndVerifyToken(t *testing.T) {
	controller := NewJWTToken(testConfig("test-signing-key"))

	token, err := controller.CreateToken(TokenObject{UserID: 42, Email: "user@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := controller.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	controller := NewJWTToken(testConfig("test-signing-key"))
	other := NewJWTToken(testConfig("another-signing-key"))

	token, err := controller.CreateToken(TokenObject{UserID: 7, Email: "user@example.com"})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	controller := NewJWTToken(testConfig("test-signing-key"))

	_, err := controller.VerifyToken("not-a-token")
	assert.Error(t, err)
}
