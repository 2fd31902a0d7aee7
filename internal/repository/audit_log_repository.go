package repository

import (
	"context"

	"github.com/wendynovel0/prueba/internal/domain/model"
)

// 監査ログの絞り込み条件。nilは条件なし。
type AuditLogFilter struct {
	ActionType    *string
	TableAffected *string
	Limit         int
	Offset        int
}

// 監査ログは追記と一覧取得だけ。更新・削除は持たない。
type AuditLogRepository interface {
	//監査ログを1件保存（log_idが詰められる）
	Create(ctx context.Context, log *model.AuditLog) error

	//条件に合う監査ログを新しい順に取得。totalは条件に合う全件数。
	List(ctx context.Context, filter AuditLogFilter) (logs []model.AuditLog, total int64, err error)
}
