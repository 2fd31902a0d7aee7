package repository

import (
	"context"

	repo "github.com/wendynovel0/prueba/internal/repository"

	"gorm.io/gorm"
)

type statusGormRepository struct {
	db *gorm.DB
}

func NewStatusGormRepository(db *gorm.DB) repo.StatusRepository {
	return &statusGormRepository{db: db}
}

// 接続確認とユーザー数
func (r *statusGormRepository) Status(ctx context.Context) (repo.DBStatus, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return repo.DBStatus{}, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return repo.DBStatus{}, err
	}

	var s repo.DBStatus
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			current_database() AS database,
			current_user AS "user",
			version() AS version,
			(SELECT count(*) FROM users) AS user_count
	`).Scan(&s).Error
	if err != nil {
		return repo.DBStatus{}, err
	}
	return s, nil
}
