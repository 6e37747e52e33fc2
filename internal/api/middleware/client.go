package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// ClientIDKey is the echo context key holding the client context id.
const ClientIDKey = "client_id"

const clientIssuer = "hms-portal"

// ClientConfig configures the client-context cookie.
type ClientConfig struct {
	Secret string
	Cookie string
	Secure bool
	MaxAge time.Duration
}

// ClientContext identifies the browser making the request. The id travels in
// an HS256-signed cookie; a missing, expired or tampered cookie gets a fresh
// id, which simply means a client with no session.
func ClientContext(cfg ClientConfig) echo.MiddlewareFunc {
	if cfg.Cookie == "" {
		cfg.Cookie = "hms_client"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 30 * 24 * time.Hour
	}
	secret := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := ""
			if ck, err := c.Cookie(cfg.Cookie); err == nil {
				clientID = parseClientToken(ck.Value, secret)
			}

			if clientID == "" {
				clientID = uuid.NewString()
				token, err := signClientToken(clientID, secret, cfg.MaxAge)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     cfg.Cookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithClientID(req.Context(), clientID)))
			c.Set(ClientIDKey, clientID)

			return next(c)
		}
	}
}

func signClientToken(clientID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		Issuer:    clientIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseClientToken returns the client id, or "" when the token is unusable.
func parseClientToken(raw string, secret []byte) string {
	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(clientIssuer))
	if err != nil || !tkn.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}
