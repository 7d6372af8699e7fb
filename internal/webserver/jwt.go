package webserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// APIClaims is the JWT payload issued at login for the JSON API.
type APIClaims struct {
	UserID int64  `json:"uid,string"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a 24h API token for the user.
func IssueToken(secret string, user *domain.User) (string, error) {
	claims := &APIClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JwtRequired guards the /api group with bearer-token auth.
func JwtRequired(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims := &APIClaims{}
			token, err := jwt.ParseWithClaims(auth, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, errors.New("invalid token")
			}
			c.Set("api_user_id", claims.UserID)
			c.Set("api_user_role", claims.Role)
			return token, nil
		},
	})
}

// APIUserID returns the token subject's user id on /api routes.
func APIUserID(c echo.Context) int64 {
	id, _ := c.Get("api_user_id").(int64)
	return id
}
