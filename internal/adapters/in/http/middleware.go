package http

import (
	"errors"
	"log/slog"
	"net/http"

	"campusdelivery/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// SessionCookieName is the cookie holding the session token.
	SessionCookieName = "auth-token"

	userIDContextKey = "userID"
)

var errSessionHasNoUser = errors.New("session token has no userId claim")

// SessionClaims are the claims of a session token.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Session identifies the requester from the auth-token cookie. Requests without a
// cookie, or with a token that does not verify against secret, continue as
// order.GuestUserID. It never rejects a request.
func Session(secret []byte, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID := order.GuestUserID

			if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				id, parseErr := parseSessionToken(cookie.Value, secret)
				if parseErr != nil {
					logger.DebugContext(ctx.Request().Context(), "Ignoring session token", "error", parseErr)
				} else {
					userID = id
				}
			}

			ctx.Set(userIDContextKey, userID)
			return next(ctx)
		}
	}
}

func parseSessionToken(raw string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", jwt.ErrTokenUnverifiable
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	if claims.UserID == "" {
		return "", errSessionHasNoUser
	}

	return claims.UserID, nil
}

// UserID returns the requester identified by Session, or order.GuestUserID when the
// middleware did not run.
func UserID(ctx echo.Context) string {
	if id, ok := ctx.Get(userIDContextKey).(string); ok && id != "" {
		return id
	}
	return order.GuestUserID
}

// RequestLogger writes one structured log line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(ctx.Request().Context(), level, "Request", attrs...)
			return nil
		},
	})
}
