package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"admindash/internal/auth"
	"admindash/internal/config"
	"admindash/internal/model"
	"admindash/internal/repository"
)

func newTestConfigManager(t *testing.T) *config.Manager {
	t.Helper()
	mgr, err := config.NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("config.NewManager() error = %v", err)
	}
	return mgr
}

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
}

// seedUser inserts an account directly into the repository, bypassing
// signup, so tests control every flag.
func seedUser(t *testing.T, repo repository.UserRepository, email, password string, mutate func(*model.User)) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &model.User{
		Name:     "Seed User",
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}
