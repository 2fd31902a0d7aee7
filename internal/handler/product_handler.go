package handler

import (
	"net/http"
	"time"

	"github.com/wendynovel0/prueba/internal/usecase"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type ProductCreateRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	BrandID     int64   `json:"brand_id"`
}

// 部分更新。送られた項目だけ変える。
type ProductUpdateRequest struct {
	Code        *string  `json:"code"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	BrandID     *int64   `json:"brand_id"`
	IsActive    *bool    `json:"is_active"`
}

// /products
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 参照は公開、変更は認証必須
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	e.GET("/products", h.listProducts)
	e.GET("/products/:id", h.getProduct)

	e.POST("/products", h.createProduct, auth...)
	e.PUT("/products/:id", h.updateProduct, auth...)
	e.DELETE("/products/:id", h.deactivateProduct, auth...)
	e.PATCH("/products/:id/activate", h.activateProduct, auth...)
}

// GET /products?search=&startDate=&endDate=&is_active=
func (h *ProductHandler) listProducts(c echo.Context) error {
	in := usecase.ListProductsInput{
		Search: c.QueryParam("search"),
	}

	if v := c.QueryParam("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
		}
		in.StartDate = &t
	}
	//endDateはその日の終わりまで含める
	if v := c.QueryParam("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
		}
		t = t.Add(24 * time.Hour)
		in.EndDate = &t
	}

	isActive, ok := queryBool(c, "is_active")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid is_active"})
	}
	in.IsActive = isActive

	products, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) getProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) createProduct(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BrandID:     req.BrandID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) updateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BrandID:     req.BrandID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) deactivateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeactivateProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "product deactivated"})
}

func (h *ProductHandler) activateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.ActivateProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
