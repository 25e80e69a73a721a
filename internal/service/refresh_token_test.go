package service_test

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/devon/hotel-listing-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenManager_Generate(t *testing.T) {
	mgr := service.NewRefreshTokenManager(24 * time.Hour)

	token, err := mgr.Generate()
	require.NoError(t, err)

	// 32 random bytes hex encoded
	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	// Opaque: never shaped like a JWT
	assert.False(t, strings.Contains(token, "."))

	other, err := mgr.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestRefreshTokenManager_ComputeExpiry(t *testing.T) {
	mgr := service.NewRefreshTokenManager(24 * time.Hour)

	expiry := mgr.ComputeExpiry()
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiry, 5*time.Second)
}
