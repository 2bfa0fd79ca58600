package utils

import (
	"testing"

	"orderhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	token, err := GenerateToken(3, 7, "owner@bella.pizza", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, 7, claims.RestaurantID)
	assert.Equal(t, "owner@bella.pizza", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	token, err := GenerateToken(3, 7, "owner@bella.pizza", "owner")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
