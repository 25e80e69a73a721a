package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// refreshTokenBytes gives 256 bits of entropy; the resulting hex string
// is opaque and can never parse as a JWT.
const refreshTokenBytes = 32

// RefreshTokenManager generates opaque refresh tokens and computes their
// expiry. Persistence is the caller's concern.
type RefreshTokenManager struct {
	ttl time.Duration
}

func NewRefreshTokenManager(ttl time.Duration) *RefreshTokenManager {
	return &RefreshTokenManager{ttl: ttl}
}

func (m *RefreshTokenManager) Generate() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (m *RefreshTokenManager) ComputeExpiry() time.Time {
	return time.Now().Add(m.ttl)
}
