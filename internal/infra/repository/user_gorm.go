package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userGormRepository) FindRefsByIDs(ctx context.Context, ids []int64) ([]model.UserRef, error) {
	refs := []model.UserRef{}
	if len(ids) == 0 {
		return refs, nil
	}

	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("user_id", "username", "email").
		Where("user_id IN ?", ids).
		Find(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}
