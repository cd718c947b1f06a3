// Package auth implements token issuance/verification and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClass selects which signing key a token is issued and verified with.
// Access and refresh tokens use distinct keys so leaking one cannot be used
// to mint tokens of the other class.
type TokenClass int

const (
	AccessToken TokenClass = iota
	RefreshToken
)

// ErrInvalidToken is returned by Verify for any malformed, expired or
// mis-signed token. Callers never see parser internals.
var ErrInvalidToken = errors.New("invalid token")

// Config holds signing material and lifetimes for all token classes.
type Config struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
	RememberTTL   time.Duration `mapstructure:"remember_ttl"`
}

func (c *Config) ApplyDefaults() {
	if c.AccessTTL <= 0 {
		c.AccessTTL = 15 * time.Minute
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.RememberTTL <= 0 {
		c.RememberTTL = 30 * 24 * time.Hour
	}
}

func (c Config) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return fmt.Errorf("auth: access and refresh secrets are required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return fmt.Errorf("auth: access and refresh secrets must differ")
	}
	return nil
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager issues and verifies signed, time-limited bearer tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	rememberTTL   time.Duration
	now           func() time.Time
}

func NewTokenManager(cfg Config) (*TokenManager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		rememberTTL:   cfg.RememberTTL,
		now:           time.Now,
	}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL reports the refresh-token lifetime for the remember flag.
func (m *TokenManager) RefreshTTL(remember bool) time.Duration {
	if remember {
		return m.rememberTTL
	}
	return m.refreshTTL
}

// IssueAccess signs a short-lived access token for userID.
func (m *TokenManager) IssueAccess(userID string) (string, error) {
	return m.issue(userID, m.accessSecret, m.accessTTL)
}

// IssueRefresh signs a refresh token for userID. With remember=true the
// extended lifetime is used.
func (m *TokenManager) IssueRefresh(userID string, remember bool) (string, error) {
	return m.issue(userID, m.refreshSecret, m.RefreshTTL(remember))
}

func (m *TokenManager) issue(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry against the given class's key and
// returns the subject user id. Any failure maps to ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string, class TokenClass) (string, error) {
	secret := m.accessSecret
	if class == RefreshToken {
		secret = m.refreshSecret
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if c.UserID == "" {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}
