package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// MinJWTKeyLength is counted in characters of the configured secret, which is
// used as raw UTF-8 bytes for HMAC-SHA256.
const MinJWTKeyLength = 32

type JWTClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// JWTAuth rejects requests without a valid HS256 bearer token issued by
// issuer for audience. A key shorter than MinJWTKeyLength rejects every request.
func JWTAuth(key, issuer, audience string) echo.MiddlewareFunc {
	if len(key) < MinJWTKeyLength {
		logging.Logger().Error().
			Int("min_length", MinJWTKeyLength).
			Msg("JWT key missing or too short, protected routes will reject all requests")
		return func(echo.HandlerFunc) echo.HandlerFunc {
			return func(echo.Context) error {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication unavailable")
			}
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims := &JWTClaims{}
			token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
				return []byte(key), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			userID, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(string(UserIDKey), uint(userID))
			c.Set(string(UserEmailKey), claims.Email)
			return next(c)
		}
	}
}

func GetUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get(string(UserIDKey)).(uint)
	return userID, ok
}

func GetUserEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(string(UserEmailKey)).(string)
	return email, ok
}
