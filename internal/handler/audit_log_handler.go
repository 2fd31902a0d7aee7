package handler

import (
	"net/http"
	"strconv"

	"github.com/wendynovel0/prueba/internal/usecase"

	"github.com/labstack/echo/v4"
)

// GET /logs
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

// DI
func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/logs", h.listLogs, auth...)
}

// GET /logs?page=&limit=&actionType=&tableAffected=
func (h *AuditLogHandler) listLogs(c echo.Context) error {
	page, ok := positiveQueryInt(c, "page")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
	}
	limit, ok := positiveQueryInt(c, "limit")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), usecase.ListAuditLogsInput{
		Page:          page,
		Limit:         limit,
		ActionType:    c.QueryParam("actionType"),
		TableAffected: c.QueryParam("tableAffected"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 未指定は0、指定されたら1以上
func positiveQueryInt(c echo.Context, key string) (int, bool) {
	raw := c.QueryParam(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
