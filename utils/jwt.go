package utils

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

var secretKey = []byte("change-me-in-env")

func init() {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		secretKey = []byte(s)
	}
}

// SetSecret overrides the signing key; main calls this after env loading.
func SetSecret(s string) {
	if s != "" {
		secretKey = []byte(s)
	}
}

func GenerateToken(userID uint, username string, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
	})
	return token.SignedString(secretKey)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, _ := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if token == nil {
		return nil, errors.New("invalid token")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
