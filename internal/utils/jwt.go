package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// GenerateToken creates a signed bearer token for a given subject email
func GenerateToken(email, secret string, ttl time.Duration) (string, error) {
	// Standard claims only: the token is self-contained, no server-side session
	claims := jwt.RegisteredClaims{
		Subject:   email,                                   // Subject is the user's email
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Token expires after the configured TTL
		IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseToken validates a bearer token string and returns its subject email
func ParseToken(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors (covers bad signature, expiry and malformed tokens)
	if err != nil {
		return "", err
	}
	// Validate token and extract the subject
	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		return claims.Subject, nil
	}
	// Return error if token is invalid
	return "", jwt.ErrSignatureInvalid
}
