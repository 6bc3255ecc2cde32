package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/config"
)

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret-for-token-tests",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssueTokenPairClaimsRoundTrip(t *testing.T) {
	cfg := testAuthConfig()
	userID := primitive.NewObjectID()

	tokens, err := issueTokenPair(userID, "user@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	access := parseClaims(t, tokens.AccessToken, cfg.JWTSecret)
	assert.Equal(t, userID.Hex(), access["sub"])
	assert.Equal(t, "user@example.com", access["email"])

	refresh := parseClaims(t, tokens.RefreshToken, cfg.JWTSecret)
	assert.Equal(t, userID.Hex(), refresh["sub"])
}

func TestIssueTokenPairExpiries(t *testing.T) {
	cfg := testAuthConfig()
	userID := primitive.NewObjectID()

	tokens, err := issueTokenPair(userID, "user@example.com", cfg)
	require.NoError(t, err)

	access := parseClaims(t, tokens.AccessToken, cfg.JWTSecret)
	refresh := parseClaims(t, tokens.RefreshToken, cfg.JWTSecret)

	accessExp := time.Unix(int64(access["exp"].(float64)), 0)
	refreshExp := time.Unix(int64(refresh["exp"].(float64)), 0)

	assert.True(t, accessExp.After(time.Now()))
	assert.True(t, accessExp.Before(time.Now().Add(16*time.Minute)))
	assert.True(t, refreshExp.After(accessExp), "refresh token must outlive access token")
}

func TestIssueTokenPairRejectsWrongSecret(t *testing.T) {
	cfg := testAuthConfig()
	tokens, err := issueTokenPair(primitive.NewObjectID(), "user@example.com", cfg)
	require.NoError(t, err)

	_, err = jwt.Parse(tokens.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret"), nil
	})
	assert.Error(t, err)
}
