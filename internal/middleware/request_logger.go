package middleware

import (
	"strconv"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// アクセスログとHTTPメトリクス
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				//echoのエラーハンドラで応答を確定させてからステータスを読む
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			latency := time.Since(start)

			//ルートのテンプレート（/products/:id）でラベルを付ける
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			telemetry.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			telemetry.HTTPRequestDuration.WithLabelValues(req.Method, path).Observe(latency.Seconds())

			ev := log.Info()
			switch {
			case status >= 500:
				ev = log.Error()
			case status >= 400:
				ev = log.Warn()
			}

			ev = ev.
				Str("request_id", requestID(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", latency).
				Str("ip", c.RealIP())
			if uid, ok := c.Get(CtxUserIDKey).(int64); ok {
				ev = ev.Int64("user_id", uid)
			}
			//監査ログと同じaction（PATCH /brands/:id/activate はACTIVATE）
			if action, ok := audit.InferAction(req.Method, path); ok {
				ev = ev.Str("action", string(action))
			}
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("request")

			return nil
		}
	}
}
