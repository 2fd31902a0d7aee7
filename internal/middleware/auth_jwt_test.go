package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/auth"
	"github.com/wendynovel0/prueba/internal/domain/model"
	"github.com/wendynovel0/prueba/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID int64 `json:"user_id"`
	Email  string `json:"email"`
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

const testSecret = "test-secret"

func newProtectedEcho(tokens *auth.TokenService, users repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		p := audit.PrincipalFrom(c.Request().Context())
		if p == nil {
			return c.JSON(http.StatusInternalServerError, mwErrorResponse{Error: "no principal"})
		}
		return c.JSON(http.StatusOK, mwOKResponse{UserID: p.UserID, Email: p.Email})
	}, AuthJWT(tokens), ActiveUserGuard(users))
	return e
}

func doGet(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_ValidTokenSetsPrincipal(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	users := new(UserRepoMock)
	e := newProtectedEcho(tokens, users)

	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Email: "ana@example.com", IsActive: true}, nil).Once()

	token, _, err := tokens.Issue(7, time.Now())
	require.NoError(t, err)

	rec := doGet(e, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, "ana@example.com", body.Email)
}

func TestAuthJWT_Rejects(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	expired, _, err := tokens.Issue(7, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	otherSecret, _, err := auth.NewTokenService("other", time.Hour).Issue(7, time.Now())
	require.NoError(t, err)

	cases := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer  "},
		{"garbage", "Bearer not-a-jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + otherSecret},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := new(UserRepoMock)
			rec := doGet(newProtectedEcho(tokens, users), tc.authz)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestActiveUserGuard_InactiveUser(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	users := new(UserRepoMock)
	e := newProtectedEcho(tokens, users)

	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, IsActive: false}, nil).Once()

	token, _, err := tokens.Issue(7, time.Now())
	require.NoError(t, err)

	rec := doGet(e, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActiveUserGuard_DeletedUser(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	users := new(UserRepoMock)
	e := newProtectedEcho(tokens, users)

	users.On("FindByID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound).Once()

	token, _, err := tokens.Issue(7, time.Now())
	require.NoError(t, err)

	rec := doGet(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActiveUserGuard_StorageError(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	users := new(UserRepoMock)
	e := newProtectedEcho(tokens, users)

	users.On("FindByID", mock.Anything, int64(7)).Return(nil, errors.New("connection refused")).Once()

	token, _, err := tokens.Issue(7, time.Now())
	require.NoError(t, err)

	rec := doGet(e, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body mwErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "db error", body.Error)
}
