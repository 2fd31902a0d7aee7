package handler

import (
	"net/http"

	"github.com/wendynovel0/prueba/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BrandCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// 部分更新。送られた項目だけ変える。
type BrandUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// /brands
type BrandHandler struct {
	uc *usecase.BrandUsecase
}

// DI
func NewBrandHandler(uc *usecase.BrandUsecase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// 参照は公開、変更は認証必須
func (h *BrandHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/brands", h.listBrands)
	e.GET("/brands/:id", h.getBrand)

	e.POST("/brands", h.createBrand, auth...)
	e.PUT("/brands/:id", h.updateBrand, auth...)
	e.DELETE("/brands/:id", h.deactivateBrand, auth...)
	e.PATCH("/brands/:id/activate", h.activateBrand, auth...)
}

func (h *BrandHandler) listBrands(c echo.Context) error {
	includeInactive, ok := queryBool(c, "includeInactive")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid includeInactive"})
	}

	brands, err := h.uc.ListBrands(c.Request().Context(), includeInactive != nil && *includeInactive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) getBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	b, err := h.uc.GetBrand(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BrandHandler) createBrand(c echo.Context) error {
	var req BrandCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.CreateBrand(c.Request().Context(), usecase.CreateBrandInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BrandHandler) updateBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BrandUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.UpdateBrand(c.Request().Context(), id, usecase.UpdateBrandInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BrandHandler) deactivateBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeactivateBrand(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "brand deactivated"})
}

func (h *BrandHandler) activateBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	b, err := h.uc.ActivateBrand(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
