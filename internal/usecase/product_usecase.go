package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	brandRepo   repo.BrandRepository
	audit       *audit.Interceptor
	now         func() time.Time
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	brandRepo repo.BrandRepository,
	interceptor *audit.Interceptor,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		brandRepo:   brandRepo,
		audit:       interceptor,
		now:         time.Now,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

type CreateProductInput struct {
	Code        string
	Name        string
	Description string
	Price       float64
	BrandID     int64
}

// nilの項目は変更しない
type UpdateProductInput struct {
	Code        *string
	Name        *string
	Description *string
	Price       *float64
	BrandID     *int64
	IsActive    *bool
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Search) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid date range")
	}

	products, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Search:    strings.TrimSpace(in.Search),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsActive:  in.IsActive,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, storeError(err, "product not found", "conflict")
	}
	return p, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	code, name, err := validProductText(in.Code, in.Name)
	if err != nil {
		return model.Product{}, err
	}
	price, err := validPrice(in.Price)
	if err != nil {
		return model.Product{}, err
	}

	brand, err := u.findBrand(ctx, in.BrandID)
	if err != nil {
		return model.Product{}, err
	}

	op := audit.Operation{Action: audit.ActionCreate, Table: audit.TableProducts}
	return audit.Track(ctx, u.audit, op, nil, func(ctx context.Context) (model.Product, error) {
		now := storedTime(u.now())
		p := model.Product{
			Code:        code,
			Name:        name,
			Description: in.Description,
			Price:       price,
			BrandID:     brand.ID,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := u.productRepo.Create(ctx, &p); err != nil {
			return model.Product{}, storeError(err, "product not found", "product code already exists")
		}
		p.Brand = &brand
		return p, nil
	})
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.change(ctx, productID, audit.ActionUpdate, func(ctx context.Context, p *model.Product) error {
		code, name := p.Code, p.Name
		if in.Code != nil {
			code = *in.Code
		}
		if in.Name != nil {
			name = *in.Name
		}
		code, name, err := validProductText(code, name)
		if err != nil {
			return err
		}
		p.Code, p.Name = code, name

		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			price, err := validPrice(*in.Price)
			if err != nil {
				return err
			}
			p.Price = price
		}
		if in.BrandID != nil && *in.BrandID != p.BrandID {
			brand, err := u.findBrand(ctx, *in.BrandID)
			if err != nil {
				return err
			}
			p.BrandID = brand.ID
			p.Brand = &brand
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		return nil
	})
}

// 論理削除（is_active=false）
func (u *ProductUsecase) DeactivateProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	_, err := u.change(ctx, productID, audit.ActionDeactivate, func(_ context.Context, p *model.Product) error {
		p.IsActive = false
		return nil
	})
	return err
}

func (u *ProductUsecase) ActivateProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.change(ctx, productID, audit.ActionActivate, func(_ context.Context, p *model.Product) error {
		p.IsActive = true
		return nil
	})
}

func (u *ProductUsecase) change(
	ctx context.Context,
	productID int64,
	action audit.ActionType,
	edit func(ctx context.Context, p *model.Product) error,
) (model.Product, error) {
	op := audit.Operation{Action: action, Table: audit.TableProducts, RecordID: productID}

	find := func(ctx context.Context) (model.Product, error) {
		return u.productRepo.FindByID(ctx, productID)
	}

	return trackChange(ctx, u.audit, op, "product not found", find, func(ctx context.Context, next *model.Product) error {
		if err := edit(ctx, next); err != nil {
			return err
		}
		next.UpdatedAt = storedTime(u.now())
		if err := u.productRepo.Update(ctx, next); err != nil {
			return storeError(err, "product not found", "product code already exists")
		}
		return nil
	})
}

// 登録先ブランドの存在確認。存在しなければ400。
func (u *ProductUsecase) findBrand(ctx context.Context, brandID int64) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "brand_id required")
	}
	b, err := u.brandRepo.FindByID(ctx, brandID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func validProductText(rawCode, rawName string) (string, string, error) {
	code := strings.TrimSpace(rawCode)
	name := strings.TrimSpace(rawName)
	if code == "" {
		return "", "", NewHTTPError(http.StatusBadRequest, "code required")
	}
	if len(code) > 50 {
		return "", "", NewHTTPError(http.StatusBadRequest, "code too long")
	}
	if name == "" {
		return "", "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > 100 {
		return "", "", NewHTTPError(http.StatusBadRequest, "name too long")
	}
	return code, name, nil
}

// numeric(10,2) に収まる値だけを受け付ける
const maxPrice = 99999999.99

func validPrice(price float64) (float64, error) {
	if math.IsNaN(price) || price < 0 || price > maxPrice {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	cents := math.Round(price * 100)
	if math.Abs(price*100-cents) > 1e-3 {
		return 0, NewHTTPError(http.StatusBadRequest, "price must have at most 2 decimals")
	}
	return cents / 100, nil
}
