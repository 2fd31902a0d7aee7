package repository

import (
	"context"
	"strings"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/期間/状態で絞り込み、新しい順で返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).Joins("Brand")

	// code / name / ブランド名
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where(`products.code ILIKE ? OR products.name ILIKE ? OR "Brand".name ILIKE ?`, like, like, like)
	}

	//期間
	if q.StartDate != nil {
		tx = tx.Where("products.created_at >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		tx = tx.Where("products.created_at < ?", *q.EndDate)
	}

	if q.IsActive != nil {
		tx = tx.Where("products.is_active = ?", *q.IsActive)
	}

	products := []model.Product{}
	if err := tx.Order("products.created_at DESC").Order("products.product_id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Joins("Brand").First(&p, "products.product_id = ?", id).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	//Brandはここでは保存しない
	return translateError(r.db.WithContext(ctx).Omit("Brand").Create(p).Error)
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p *model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("product_id = ?", p.ID).Updates(map[string]interface{}{
		"code":        p.Code,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"brand_id":    p.BrandID,
		"is_active":   p.IsActive,
		"updated_at":  p.UpdatedAt,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
