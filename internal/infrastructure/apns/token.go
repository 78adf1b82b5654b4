// Package apns sends notifications to the Apple push gateway, signing a
// provider token per invocation with the team's P-256 key.
package apns

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource signs ES256 provider tokens for the push gateway. A fresh token
// is signed per dispatch invocation; nothing is cached across invocations.
type TokenSource struct {
	keyID  string
	teamID string
	key    *ecdsa.PrivateKey
}

// NewTokenSource parses the P-256 private key PEM issued for the push key id.
func NewTokenSource(keyID, teamID string, pemBytes []byte) (*TokenSource, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse push signing key: %w", err)
	}
	return &TokenSource{keyID: keyID, teamID: teamID, key: key}, nil
}

// Token signs a compact JWT: header {alg: ES256, kid, typ}, claims
// {iss: team id, iat: now}.
func (ts *TokenSource) Token(now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": ts.teamID,
		"iat": now.Unix(),
	})
	t.Header["kid"] = ts.keyID
	signed, err := t.SignedString(ts.key)
	if err != nil {
		return "", fmt.Errorf("sign provider token: %w", err)
	}
	return signed, nil
}
