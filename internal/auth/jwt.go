package auth

import (
	"fmt"
	"time"

	"fareast-server/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims ties a session token to one player. Every player-scoped request
// must present a token whose PlayerID matches the acting player.
type Claims struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(playerID int, name string) (string, error) {
	cfg := config.GlobalConfig.Auth

	claims := Claims{
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("player_%d", playerID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ValidateSessionToken(tokenString string) (*Claims, error) {
	cfg := config.GlobalConfig.Auth

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
