package middleware

import (
	"errors"
	"net/http"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/repository"

	"github.com/labstack/echo/v4"
)

// DBの最新ユーザーを確認し、操作者としてrequest contextに入れる。
// AuthJWTの後ろに置く。
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			req := c.Request()
			user, err := userRepo.FindByID(req.Context(), userID)
			if errors.Is(err, repository.ErrNotFound) || (err == nil && user == nil) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("db error"))
			}

			//停止済みユーザーは403
			if !user.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("user is inactive"))
			}

			ctx := audit.WithPrincipal(req.Context(), audit.Principal{
				UserID:   user.ID,
				Username: user.Username,
				Email:    user.Email,
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
