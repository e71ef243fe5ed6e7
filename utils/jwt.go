package utils

import (
	"errors"
	"os"
	"time"

	"pescalia/models"

	"github.com/golang-jwt/jwt"
)

// Tokens are minted by the hosted auth provider with this shared secret; the
// service only validates them. Fallback secret is for local development only.
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "pescalia-dev"
	}
	return secret
}

// GenerateToken creates a signed JWT with the given subject and role. Used by
// local tooling and tests; production tokens come from the auth provider.
func GenerateToken(subject string, role models.Role, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// AuthContextFromToken extracts the caller identity from a validated token.
// Unknown or missing roles default to the plain user role; admin must be an
// explicit claim.
func AuthContextFromToken(tokenString string) (models.AuthContext, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.AuthContext{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.AuthContext{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.AuthContext{}, errors.New("token does not contain a valid 'sub' claim")
	}

	role := models.RoleUser
	if r, ok := claims["role"].(string); ok && models.Role(r) == models.RoleAdmin {
		role = models.RoleAdmin
	}

	return models.AuthContext{UserID: sub, Role: role}, nil
}
