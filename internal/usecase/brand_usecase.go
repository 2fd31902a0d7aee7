package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"
)

const maxBrandNameLen = 100

type BrandUsecase struct {
	brandRepo repo.BrandRepository
	audit     *audit.Interceptor
	now       func() time.Time
}

// DI
func NewBrandUsecase(brandRepo repo.BrandRepository, interceptor *audit.Interceptor) *BrandUsecase {
	return &BrandUsecase{
		brandRepo: brandRepo,
		audit:     interceptor,
		now:       time.Now,
	}
}

type CreateBrandInput struct {
	Name        string
	Description string
}

// nilの項目は変更しない
type UpdateBrandInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (u *BrandUsecase) ListBrands(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	brands, err := u.brandRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return brands, nil
}

func (u *BrandUsecase) GetBrand(ctx context.Context, brandID int64) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid brand id")
	}

	b, err := u.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		return model.Brand{}, storeError(err, "brand not found", "conflict")
	}
	return b, nil
}

func (u *BrandUsecase) CreateBrand(ctx context.Context, in CreateBrandInput) (model.Brand, error) {
	name, err := validBrandName(in.Name)
	if err != nil {
		return model.Brand{}, err
	}

	op := audit.Operation{Action: audit.ActionCreate, Table: audit.TableBrands}
	return audit.Track(ctx, u.audit, op, nil, func(ctx context.Context) (model.Brand, error) {
		now := storedTime(u.now())
		b := model.Brand{
			Name:        name,
			Description: in.Description,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := u.brandRepo.Create(ctx, &b); err != nil {
			return model.Brand{}, storeError(err, "brand not found", "brand name already exists")
		}
		return b, nil
	})
}

func (u *BrandUsecase) UpdateBrand(ctx context.Context, brandID int64, in UpdateBrandInput) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid brand id")
	}

	return u.change(ctx, brandID, audit.ActionUpdate, func(b *model.Brand) error {
		if in.Name != nil {
			name, err := validBrandName(*in.Name)
			if err != nil {
				return err
			}
			b.Name = name
		}
		if in.Description != nil {
			b.Description = *in.Description
		}
		if in.IsActive != nil {
			b.IsActive = *in.IsActive
		}
		return nil
	})
}

// 論理削除（is_active=false）
func (u *BrandUsecase) DeactivateBrand(ctx context.Context, brandID int64) error {
	if brandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid brand id")
	}

	_, err := u.change(ctx, brandID, audit.ActionDeactivate, func(b *model.Brand) error {
		b.IsActive = false
		return nil
	})
	return err
}

func (u *BrandUsecase) ActivateBrand(ctx context.Context, brandID int64) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid brand id")
	}

	return u.change(ctx, brandID, audit.ActionActivate, func(b *model.Brand) error {
		b.IsActive = true
		return nil
	})
}

func (u *BrandUsecase) change(ctx context.Context, brandID int64, action audit.ActionType, edit func(b *model.Brand) error) (model.Brand, error) {
	op := audit.Operation{Action: action, Table: audit.TableBrands, RecordID: brandID}

	find := func(ctx context.Context) (model.Brand, error) {
		return u.brandRepo.FindByID(ctx, brandID)
	}

	return trackChange(ctx, u.audit, op, "brand not found", find, func(ctx context.Context, next *model.Brand) error {
		if err := edit(next); err != nil {
			return err
		}
		next.UpdatedAt = storedTime(u.now())
		if err := u.brandRepo.Update(ctx, next); err != nil {
			return storeError(err, "brand not found", "brand name already exists")
		}
		return nil
	})
}

func validBrandName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > maxBrandNameLen {
		return "", NewHTTPError(http.StatusBadRequest, "name too long")
	}
	return name, nil
}
