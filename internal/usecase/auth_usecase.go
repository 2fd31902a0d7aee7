package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	"github.com/wendynovel0/prueba/internal/domain/model"
	"github.com/wendynovel0/prueba/internal/repository"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

// パスワードのハッシュ化と照合
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, hashed string) bool
}

type UserDTO struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	issuer    AccessTokenIssuer
	hasher    PasswordHasher
	audit     *audit.Logger
	now       func() time.Time
}

func NewAuthUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	issuer AccessTokenIssuer,
	hasher PasswordHasher,
	auditLogger *audit.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		issuer:    issuer,
		hasher:    hasher,
		audit:     auditLogger,
		now:       time.Now,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req.Username, req.Email, req.Password); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.now()
	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: pwHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	//同時登録でのemail重複はunique制約で409
	if err := u.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "user not found", "email already used")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusForbidden, "user is inactive")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, u.now())
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//ログインした本人を操作者として記録する
	if u.audit != nil {
		u.audit.Record(ctx, &audit.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}, audit.Entry{
			Action:   audit.ActionLogin,
			Table:    audit.TableUsers,
			RecordID: user.ID,
		}, audit.ProvenanceFrom(ctx))
	}

	return &AuthLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserDTO(user),
	}, nil
}

func toUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
