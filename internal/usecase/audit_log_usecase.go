package usecase

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"
)

const defaultAuditPageSize = 20

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
	userRepo  repo.UserRepository
}

// DI
func NewAuditLogUsecase(auditRepo repo.AuditLogRepository, userRepo repo.UserRepository) *AuditLogUsecase {
	return &AuditLogUsecase{
		auditRepo: auditRepo,
		userRepo:  userRepo,
	}
}

// GET /logsの入力DTO。0は未指定。
type ListAuditLogsInput struct {
	Page          int
	Limit         int
	ActionType    string
	TableAffected string
}

type AuditLogPage struct {
	TotalItems  int64            `json:"totalItems"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Items       []model.AuditLog `json:"items"`
}

func (u *AuditLogUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) (AuditLogPage, error) {
	if in.Page < 0 || in.Limit < 0 {
		return AuditLogPage{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	page := in.Page
	if page == 0 {
		page = 1
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultAuditPageSize
	}

	filter := repo.AuditLogFilter{
		Limit:  limit,
		Offset: pageOffset(page, limit),
	}
	if s := strings.TrimSpace(in.ActionType); s != "" {
		filter.ActionType = &s
	}
	if s := strings.TrimSpace(in.TableAffected); s != "" {
		filter.TableAffected = &s
	}

	logs, total, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return AuditLogPage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.attachUsers(ctx, logs); err != nil {
		return AuditLogPage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if logs == nil {
		logs = []model.AuditLog{}
	}
	return AuditLogPage{
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Items:       logs,
	}, nil
}

// 桁あふれする場合はMaxIntに張り付ける（必ず最終ページより後ろになる）
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	n := total / int64(limit)
	if total%int64(limit) != 0 {
		n++
	}
	return int(n)
}

// user_idは外部キーではないので、存在しないユーザーはnullのまま
func (u *AuditLogUsecase) attachUsers(ctx context.Context, logs []model.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(logs))
	ids := make([]int64, 0, len(logs))
	for _, l := range logs {
		if _, ok := seen[l.UserID]; ok {
			continue
		}
		seen[l.UserID] = struct{}{}
		ids = append(ids, l.UserID)
	}

	refs, err := u.userRepo.FindRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]model.UserRef, len(refs))
	for _, r := range refs {
		byID[r.ID] = r
	}

	for i := range logs {
		if r, ok := byID[logs[i].UserID]; ok {
			ref := r
			logs[i].User = &ref
		}
	}
	return nil
}
