package validator

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/wendynovel0/prueba/internal/repository"
	"github.com/wendynovel0/prueba/internal/usecase"
)

var (
	// 400 入力が不正
	ErrInvalidInput = usecase.NewHTTPError(http.StatusBadRequest, "invalid input")

	// 409 emailが既に使用済み
	ErrEmailAlreadyUsed = usecase.NewHTTPError(http.StatusConflict, "email already used")
)

const (
	minPasswordLen = 8
	maxUsernameLen = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// 登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// 必須チェック
	if username == "" || email == "" || password == "" {
		return ErrInvalidInput
	}
	if len(username) > maxUsernameLen {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	if len(password) < minPasswordLen {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return ErrEmailAlreadyUsed
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(_ context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailPattern.MatchString(s)
}
