package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
)

type BrandRepository interface {
	//名前順
	List(ctx context.Context, includeInactive bool) ([]model.Brand, error)
	FindByID(ctx context.Context, id int64) (model.Brand, error)
	Create(ctx context.Context, b *model.Brand) error
	//name / description / is_active / updated_at を書き換える
	Update(ctx context.Context, b *model.Brand) error
}
