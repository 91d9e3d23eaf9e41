package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leonexus/site/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	u := api.User{ID: 42, Username: "dealer1", Role: api.RoleDealer}

	tok, err := GenerateToken("sess-1", u, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "dealer1", claims.UserName)
	assert.Equal(t, api.RoleDealer, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := GenerateToken("sess-1", api.User{ID: 1}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tok, "another-secret-another-secret")
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	tok, err := GenerateToken("sess-1", api.User{ID: 1}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(tok, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateMissingSession(t *testing.T) {
	tok, err := GenerateToken("", api.User{ID: 1}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tok, testSecret)
	assert.Error(t, err)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{SessionID: "s", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(tok, testSecret)
	assert.Error(t, err)
}

func TestGenerateEmptySecret(t *testing.T) {
	_, err := GenerateToken("s", api.User{}, "", time.Hour)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}
