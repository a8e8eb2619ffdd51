package memory

import (
	"context"
	"fmt"
	"strings"

	authDomain "ranking-insight/internal/domain/auth"
)

// AddUser 新增帳號，password 需為雜湊後的值。
func (s *Store) AddUser(email, passwordHash, name string, role authDomain.Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.users[id] = authDomain.User{
		ID:       id,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Name:     name,
		Role:     role,
		Status:   authDomain.StatusActive,
		Password: passwordHash,
	}
	return id
}

// FindByEmail 依 email 查詢使用者。
func (s *Store) FindByEmail(_ context.Context, email string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return authDomain.User{}, fmt.Errorf("user not found")
}

// FindByID 依 ID 查詢使用者。
func (s *Store) FindByID(_ context.Context, id string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return authDomain.User{}, fmt.Errorf("user not found")
	}
	return u, nil
}
