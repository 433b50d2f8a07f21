package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshTokenIsUniquePerIssuance(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h", "168h")

	// Two tokens minted back to back for the same user share user_id, type
	// and (almost certainly) the same exp second. Revocation is keyed by the
	// token string, so they must still differ.
	first, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestGenerateAccessTokenCarriesPrincipalClaims(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h", "168h")
	companyID := "company-1"

	tokenString, _, err := svc.GenerateAccessToken("u1", "alice", &companyID, false)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "access", claims["type"])
}
