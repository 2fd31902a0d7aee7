package model

import (
	"time"

	"gorm.io/datatypes"
)

// action_logs の1行。作成後は更新も削除もしない。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	//LogIDは監査ログの主キー（単調増加）
	LogID int64 `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id"`

	//操作したユーザーのID。usersへの外部キーは張らない。
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//CREATE / UPDATE / DEACTIVATE / ACTIVATE / LOGIN など
	ActionType string `gorm:"type:varchar(50);not null;index" json:"action_type"`

	//対象のテーブル名（products / brands / users）
	TableAffected string `gorm:"type:varchar(50);not null;index" json:"table_affected"`

	//対象レコードのID
	RecordID int64 `gorm:"not null;index" json:"record_id"`

	//変更前。CREATEのときはNULL。
	OldValues datatypes.JSON `json:"old_values"`

	//変更後。DEACTIVATE / DELETEのときはNULL。
	NewValues datatypes.JSON `json:"new_values"`

	ActionTimestamp time.Time `gorm:"not null;index" json:"action_timestamp"`

	IPAddress *string `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent *string `gorm:"type:text" json:"user_agent"`

	//一覧取得時に後から詰める（カラムではない）
	User *UserRef `gorm:"-" json:"user"`
}

func (AuditLog) TableName() string {
	return "action_logs"
}
