package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const seatTokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// SeatClaims 座位令牌：某个房间中的某位玩家
type SeatClaims struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (i *TokenIssuer) GenerateSeatToken(roomID, playerID string) (string, error) {
	now := i.now()
	claims := SeatClaims{
		RoomID:   roomID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(seatTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "acquire-seat",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) ParseSeatToken(tokenStr string) (*SeatClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SeatClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SeatClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
