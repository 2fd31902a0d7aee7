package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"gorm.io/gorm"
)

const defaultAuditLogLimit = 20

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	//件数と一覧で同じ条件を使う
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.AuditLog{})
		if filter.ActionType != nil {
			q = q.Where("action_type = ?", *filter.ActionType)
		}
		if filter.TableAffected != nil {
			q = q.Where("table_affected = ?", *filter.TableAffected)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	logs := []model.AuditLog{}
	if total == 0 || int64(offset) >= total {
		return logs, total, nil
	}

	//新しい順（同時刻はlog_idで並べる）
	err := scoped().
		Order("action_timestamp DESC").
		Order("log_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
