package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// JWTSecret verifies session tokens. Empty means every request is a guest.
	JWTSecret []byte

	Logger *slog.Logger
}

// NewRouter builds the echo instance serving the order API, its OpenAPI document at
// /openapi.json and Swagger UI under /swagger/.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadAPIDoc(ctx)
	if err != nil {
		return nil, err
	}

	swaggerOnce.Do(func() {
		swaggerErr = registerSwaggerDoc(doc)
	})
	if swaggerErr != nil {
		return nil, swaggerErr
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(server)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(Session(cfg.JWTSecret, cfg.Logger))

	RegisterHandlers(e, server)

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
