package repository

import (
	"context"
	"time"

	"github.com/wendynovel0/prueba/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	//code / name / ブランド名の部分一致
	Search string
	//created_at >= StartDate
	StartDate *time.Time
	//created_at < EndDate
	EndDate  *time.Time
	IsActive *bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//Brandも一緒に読む
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
}
