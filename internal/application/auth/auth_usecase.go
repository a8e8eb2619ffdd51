package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ranking-insight/internal/domain/auth"
)

// ErrInvalidCredentials 表示帳號或密碼錯誤。
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository 存取使用者。
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// PasswordHasher 驗證密碼。
type PasswordHasher interface {
	Compare(hashed, plain string) bool
}

// TokenIssuer 簽發 token。
type TokenIssuer interface {
	Issue(ctx context.Context, user auth.User) (auth.Token, error)
}

// Permission 表示後台功能權限。
type Permission string

const (
	PermRankingCollect  Permission = "ranking:collect"
	PermRankingBackfill Permission = "ranking:backfill"
	PermReportsGenerate Permission = "reports:generate"
	PermInsightsRefresh Permission = "insights:refresh"
	PermJobsView        Permission = "jobs:view"
)

// RolePermissions 角色權限表。
var RolePermissions = map[auth.Role][]Permission{
	auth.RoleAdmin: {
		PermRankingCollect,
		PermRankingBackfill,
		PermReportsGenerate,
		PermInsightsRefresh,
		PermJobsView,
	},
	auth.RoleAnalyst: {
		PermReportsGenerate,
		PermInsightsRefresh,
		PermJobsView,
	},
	auth.RoleViewer: {
		PermJobsView,
	},
}

// LoginUseCase 驗證帳密並簽發 token。
type LoginUseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewLoginUseCase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  auth.User
	Token auth.Token
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (LoginResult, error) {
	var out LoginResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return out, errors.New("email and password required")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return out, fmt.Errorf("find user: %w", ErrInvalidCredentials)
	}
	if !user.IsActive() {
		return out, errors.New("user disabled")
	}
	if !uc.hasher.Compare(user.Password, input.Password) {
		return out, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(ctx, user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	out.User = user
	out.Token = token
	return out, nil
}

// Authorizer 檢查角色/權限。
type Authorizer struct {
	users UserRepository
}

func NewAuthorizer(users UserRepository) *Authorizer {
	return &Authorizer{users: users}
}

func (a *Authorizer) HasPermission(role auth.Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// Authorize 檢查使用者是否存在、啟用且具備所需權限。
func (a *Authorizer) Authorize(ctx context.Context, userID string, required ...Permission) (bool, string, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return false, "user not found", err
	}
	if !user.IsActive() {
		return false, "user disabled", nil
	}
	for _, perm := range required {
		if !a.HasPermission(user.Role, perm) {
			return false, fmt.Sprintf("missing permission %s", perm), nil
		}
	}
	return true, "", nil
}
