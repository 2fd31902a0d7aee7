package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"gorm.io/gorm"
)

type BrandGormRepository struct {
	db *gorm.DB
}

// DI
func NewBrandGormRepository(db *gorm.DB) *BrandGormRepository {
	return &BrandGormRepository{db: db}
}

func (r *BrandGormRepository) List(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	q := r.db.WithContext(ctx).Model(&model.Brand{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	brands := []model.Brand{}
	if err := q.Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *BrandGormRepository) FindByID(ctx context.Context, id int64) (model.Brand, error) {
	var b model.Brand
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return model.Brand{}, translateError(err)
	}
	return b, nil
}

func (r *BrandGormRepository) Create(ctx context.Context, b *model.Brand) error {
	return translateError(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BrandGormRepository) Update(ctx context.Context, b *model.Brand) error {
	res := r.db.WithContext(ctx).Model(&model.Brand{}).Where("brand_id = ?", b.ID).Updates(map[string]interface{}{
		"name":        b.Name,
		"description": b.Description,
		"is_active":   b.IsActive,
		"updated_at":  b.UpdatedAt,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
