package sqlrepo

import (
	"context"
	"errors"
	"testing"

	authDomain "ranking-insight/internal/domain/auth"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuthRepo_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAuthRepo(db, DialectPostgres)
	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "password_hash", "role", "status"}).
		AddRow("u-1", "test@example.com", "Test User", "hash", "admin", "active")

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("test@example.com").
		WillReturnRows(rows)

	u, err := repo.FindByEmail(context.Background(), "Test@Example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if u.ID != "u-1" || u.Role != authDomain.RoleAdmin || !u.IsActive() {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestAuthRepo_UpsertUserSQLite(t *testing.T) {
	repo := &AuthRepo{Repo: openSQLite(t)}
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "admin@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	id, err := repo.UpsertUser(ctx, "Admin@Example.com", "Admin", "h1", authDomain.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	again, err := repo.UpsertUser(ctx, "admin@example.com", "Admin", "h2", authDomain.RoleAdmin)
	if err != nil || again != id {
		t.Fatalf("expected same id, got %s err=%v", again, err)
	}
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if u.Password != "h2" || u.Status != authDomain.StatusActive {
		t.Errorf("unexpected user %+v", u)
	}
}
