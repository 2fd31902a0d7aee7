package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/wendynovel0/prueba/internal/config"
	"github.com/wendynovel0/prueba/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// New はミドルウェアとルートを載せたechoを返す
func New(cfg config.Config, log zerolog.Logger, gormDB *gorm.DB) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()

	useMiddleware(e, log)

	RegisterRoutes(e, cfg, log, gormDB)
	return e
}

// Recoverはアクセスログの内側に置く（panicも500として記録される）
func useMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(middleware.RequestContext())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
}

// Run はctxがキャンセルされるまで待ち受け、その後graceful shutdownする
func Run(ctx context.Context, e *echo.Echo, port string, log zerolog.Logger) error {
	addr := port
	if !strings.HasPrefix(addr, ":") {
		addr = net.JoinHostPort("", port)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
