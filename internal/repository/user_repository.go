package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	//IDからユーザーを1件取得する。見つからなければErrNotFound。
	FindByID(ctx context.Context, id int64) (*model.User, error)
	//メールからユーザーを1件取得する。見つからなければErrNotFound。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//公開情報だけをまとめて取得（監査ログ一覧用）
	FindRefsByIDs(ctx context.Context, ids []int64) ([]model.UserRef, error)
}
