package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider issues and verifies ES512 bearer tokens whose subject is the user id.
// Key material is handed in at startup; nothing here is process-global.
type TokenProvider struct {
	key    *ecdsa.PrivateKey
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenProvider builds a provider from an existing P-521 key.
func NewTokenProvider(key *ecdsa.PrivateKey, issuer string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenProvider{key: key, issuer: issuer, ttl: ttl, now: time.Now}
}

// GenerateSigningKey creates a fresh P-521 key, used when no key file is configured.
func GenerateSigningKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
}

// LoadSigningKey reads a PEM encoded EC private key (SEC 1 or PKCS#8).
func LoadSigningKey(path string) (*ecdsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("signing key is not PEM encoded")
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.New("signing key is not an EC key")
	}
	return key, nil
}

// Issue signs a token for userID.
func (p *TokenProvider) Issue(userID string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Issuer:    p.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodES512, claims).SignedString(p.key)
}

// Verify validates signature, issuer and expiry and returns the claims.
func (p *TokenProvider) Verify(tokenStr string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return &p.key.PublicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodES512.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
