package server

import (
	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/auth"
	"github.com/wendynovel0/prueba/internal/config"
	"github.com/wendynovel0/prueba/internal/handler"
	infraRepo "github.com/wendynovel0/prueba/internal/infra/repository"
	"github.com/wendynovel0/prueba/internal/middleware"
	"github.com/wendynovel0/prueba/internal/usecase"
	"github.com/wendynovel0/prueba/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RegisterRoutes は依存を組み立ててルートを登録する
func RegisterRoutes(e *echo.Echo, cfg config.Config, log zerolog.Logger, gormDB *gorm.DB) {
	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	statusRepo := infraRepo.NewStatusGormRepository(gormDB)

	//監査ログ
	auditLogger := audit.NewLogger(auditRepo, log, audit.WithWriteTimeout(cfg.AuditWriteTimeout))
	interceptor := audit.NewInterceptor(auditLogger, log)

	//認証
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, validator.NewAuthValidator(userRepo), tokens, hasher, auditLogger)
	brandUC := usecase.NewBrandUsecase(brandRepo, interceptor)
	productUC := usecase.NewProductUsecase(productRepo, brandRepo, interceptor)
	auditUC := usecase.NewAuditLogUsecase(auditRepo, userRepo)

	//認証必須のルートに付ける
	authMW := []echo.MiddlewareFunc{
		middleware.AuthJWT(tokens),
		middleware.ActiveUserGuard(userRepo),
	}
	loginLimit := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerMinute: cfg.LoginRatePerMinute,
		Burst:             cfg.LoginBurst,
	})

	handler.NewAuthHandler(authUC).RegisterRoutes(e, loginLimit.Middleware())
	handler.NewBrandHandler(brandUC).RegisterRoutes(e, authMW...)
	handler.NewProductHandler(productUC).RegisterRoutes(e, authMW...)
	handler.NewAuditLogHandler(auditUC).RegisterRoutes(e, authMW...)
	handler.NewHealthHandler(statusRepo, log).RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
