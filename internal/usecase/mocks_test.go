package usecase

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/domain/model"
	repo "github.com/wendynovel0/prueba/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

// =====================
// Mocks
// =====================

type BrandRepoMock struct{ mock.Mock }

func (m *BrandRepoMock) List(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	args := m.Called(ctx, includeInactive)
	items, _ := args.Get(0).([]model.Brand)
	return items, args.Error(1)
}

func (m *BrandRepoMock) FindByID(ctx context.Context, id int64) (model.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Brand)
	return b, args.Error(1)
}

func (m *BrandRepoMock) Create(ctx context.Context, b *model.Brand) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BrandRepoMock) Update(ctx context.Context, b *model.Brand) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindRefsByIDs(ctx context.Context, ids []int64) ([]model.UserRef, error) {
	args := m.Called(ctx, ids)
	refs, _ := args.Get(0).([]model.UserRef)
	return refs, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log *model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

// 書き込まれた監査ログを溜める
func captureAudit(m *AuditRepoMock) *[]model.AuditLog {
	var stored []model.AuditLog
	m.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		log := args.Get(1).(*model.AuditLog)
		log.LogID = int64(len(stored) + 1)
		stored = append(stored, *log)
	}).Return(nil)
	return &stored
}

func newAuditStack(m *AuditRepoMock) (*audit.Logger, *audit.Interceptor) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	l := audit.NewLogger(m, log)
	return l, audit.NewInterceptor(l, log)
}

func asUser(userID int64) context.Context {
	return audit.WithPrincipal(context.Background(), audit.Principal{UserID: userID})
}

func decoded(j datatypes.JSON) map[string]any {
	if len(j) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(j, &m); err != nil {
		return nil
	}
	return m
}
