package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	authDomain "ranking-insight/internal/domain/auth"

	"github.com/google/uuid"
)

// ErrUserNotFound 表示查無帳號。
var ErrUserNotFound = errors.New("user not found")

// AuthRepo 提供使用者的存取。
type AuthRepo struct {
	*Repo
}

// NewAuthRepo 建立 AuthRepo。
func NewAuthRepo(db *sql.DB, dialect Dialect) *AuthRepo {
	return &AuthRepo{Repo: NewRepo(db, dialect)}
}

const selectUser = `SELECT id, email, display_name, password_hash, role, status FROM users`

// FindByEmail 依 email 查詢使用者。
func (r *AuthRepo) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = $1`, strings.ToLower(email))
}

// FindByID 依 ID 查詢使用者。
func (r *AuthRepo) FindByID(ctx context.Context, id string) (authDomain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *AuthRepo) findOne(ctx context.Context, q string, arg string) (authDomain.User, error) {
	var u authDomain.User
	var role, status string
	err := r.db.QueryRowContext(ctx, r.rebind(q), arg).Scan(&u.ID, &u.Email, &u.Name, &u.Password, &role, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return authDomain.User{}, ErrUserNotFound
	}
	if err != nil {
		return authDomain.User{}, err
	}
	u.Role = authDomain.Role(role)
	u.Status = authDomain.Status(status)
	return u, nil
}

// UpsertUser 以 email 為唯一鍵建立或更新帳號，回傳 id。
func (r *AuthRepo) UpsertUser(ctx context.Context, email, name, passwordHash string, role authDomain.Role) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return "", fmt.Errorf("email and password hash required")
	}
	existing, err := r.FindByEmail(ctx, email)
	switch {
	case err == nil:
		const upd = `UPDATE users SET display_name = $1, password_hash = $2, role = $3 WHERE id = $4`
		if _, err := r.db.ExecContext(ctx, r.rebind(upd), name, passwordHash, string(role), existing.ID); err != nil {
			return "", err
		}
		return existing.ID, nil
	case errors.Is(err, ErrUserNotFound):
		id := uuid.NewString()
		const ins = `INSERT INTO users (id, email, display_name, password_hash, role, status) VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.db.ExecContext(ctx, r.rebind(ins), id, email, name, passwordHash, string(role), string(authDomain.StatusActive)); err != nil {
			return "", err
		}
		return id, nil
	default:
		return "", err
	}
}
