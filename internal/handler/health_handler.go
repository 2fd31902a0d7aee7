package handler

import (
	"net/http"

	"github.com/wendynovel0/prueba/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type dbStatusResponse struct {
	Status string `json:"status"`
	repository.DBStatus
}

// GET /db-status
type HealthHandler struct {
	status repository.StatusRepository
	log    zerolog.Logger
}

func NewHealthHandler(status repository.StatusRepository, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{status: status, log: log}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/db-status", h.dbStatus)
}

func (h *HealthHandler) dbStatus(c echo.Context) error {
	s, err := h.status.Status(c.Request().Context())
	if err != nil {
		//接続情報は返さない
		h.log.Error().Err(err).Msg("db status check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Error",
			"error":  "database unavailable",
		})
	}
	return c.JSON(http.StatusOK, dbStatusResponse{Status: "OK", DBStatus: s})
}
