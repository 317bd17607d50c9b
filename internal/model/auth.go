package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims binds a bearer token to its server-side session.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}
