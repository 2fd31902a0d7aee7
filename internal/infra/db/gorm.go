package db

import (
	"fmt"
	"time"

	"github.com/wendynovel0/prueba/internal/config"
	"github.com/wendynovel0/prueba/internal/domain/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		//timestampの精度に合わせる
		NowFunc: func() time.Time { return time.Now().Truncate(time.Microsecond) },
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gormDB, nil
}

// Migrate はテーブルを作成・更新する。
// action_logs.user_id には外部キーを張らない（監査ログはユーザーの存在に依存しない）。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Product{},
		&model.AuditLog{},
	)
}

// gormのログをzerologに流す
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Str("component", "gorm").Msgf(format, args...)
}

func gormLogLevel(l zerolog.Level) gormlogger.LogLevel {
	switch {
	case l <= zerolog.DebugLevel:
		return gormlogger.Info
	case l <= zerolog.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
