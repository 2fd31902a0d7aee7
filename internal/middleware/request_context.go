package middleware

import (
	"github.com/wendynovel0/prueba/internal/audit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const CtxRequestIDKey = "request_id" // string

// リクエストIDを払い出し、送信元(IP / User-Agent)をrequest contextに入れる
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			//クライアントが付けたIDはそのまま使う
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(CtxRequestIDKey, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			ctx := audit.WithProvenance(req.Context(), audit.Provenance{
				IPAddress: c.RealIP(),
				UserAgent: req.UserAgent(),
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

func requestID(c echo.Context) string {
	rid, _ := c.Get(CtxRequestIDKey).(string)
	return rid
}
