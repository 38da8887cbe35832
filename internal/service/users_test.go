package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admindash/internal/model"
	"admindash/internal/repository"
)

func newUsersFixture(t *testing.T) (*UsersService, *repository.MemoryUserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	return NewUsersService(users, newTestConfigManager(t)), users
}

func TestUsersList_Pagination(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	// 25 accounts with strictly increasing creation times, so the
	// newest-first ordering is deterministic.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		u := seedUser(t, users, fmt.Sprintf("user%d@example.com", i), "secret123", nil)
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, users.Update(ctx, u))
	}

	page, pagination, err := svc.List(ctx, 2, 10)
	require.NoError(t, err)

	assert.Len(t, page, 10)
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}, pagination)

	// Newest first: page 2 holds ranks 11..20, i.e. user14 down to user5.
	assert.Equal(t, "user14@example.com", page[0].Email)
	assert.Equal(t, "user5@example.com", page[9].Email)

	last, pagination, err := svc.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)
	assert.Equal(t, int64(3), pagination.Pages)

	empty, _, err := svc.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUsersList_Defaults(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedUser(t, users, fmt.Sprintf("d%d@example.com", i), "secret123", nil)
	}

	page, pagination, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, int64(1), pagination.Page)
	assert.Equal(t, int64(10), pagination.Limit)
}

func TestUsersGet_NotFound(t *testing.T) {
	svc, _ := newUsersFixture(t)

	_, err := svc.Get(context.Background(), "64b0c4f2a1d2e3f4a5b6c7d8")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "User not found", svcErr.Message)
}

func TestUsersUpdate(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "upd@example.com", "secret123", nil)

	name := "Renamed"
	role := model.RoleAdmin
	inactive := false
	got, err := svc.Update(ctx, seeded.ID.Hex(), UpdateUserInput{
		Name:     &name,
		Role:     &role,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.False(t, got.IsActive)
}

func TestUsersUpdate_EmailConflict(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	seedUser(t, users, "taken@example.com", "secret123", nil)
	seeded := seedUser(t, users, "mine@example.com", "secret123", nil)

	email := "taken@example.com"
	_, err := svc.Update(ctx, seeded.ID.Hex(), UpdateUserInput{Email: &email})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "conflict", svcErr.Code)

	// Re-submitting the account's own email is not a conflict.
	own := "mine@example.com"
	_, err = svc.Update(ctx, seeded.ID.Hex(), UpdateUserInput{Email: &own})
	assert.NoError(t, err)
}

func TestUsersDelete(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "gone@example.com", "secret123", nil)

	require.NoError(t, svc.Delete(ctx, seeded.ID.Hex()))

	err := svc.Delete(ctx, seeded.ID.Hex())
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestBanUnban(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "flag@example.com", "secret123", nil)

	banned, err := svc.Ban(ctx, seeded.ID.Hex())
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	// Banning again is a no-op, not an error.
	banned, err = svc.Ban(ctx, seeded.ID.Hex())
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	unbanned, err := svc.Unban(ctx, seeded.ID.Hex())
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)

	_, err = svc.Ban(ctx, "64b0c4f2a1d2e3f4a5b6c7d8")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "User not found", svcErr.Message)
}

func TestUsersStats(t *testing.T) {
	svc, users := newUsersFixture(t)
	ctx := context.Background()

	seedUser(t, users, "a@example.com", "secret123", func(u *model.User) {
		u.Role = model.RoleAdmin
	})
	seedUser(t, users, "b@example.com", "secret123", nil)
	seedUser(t, users, "c@example.com", "secret123", func(u *model.User) {
		u.IsActive = false
	})
	seedUser(t, users, "d@example.com", "secret123", func(u *model.User) {
		u.IsBanned = true
	})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.UserStats{
		TotalUsers:    4,
		ActiveUsers:   2, // active means isActive and not banned
		InactiveUsers: 2,
		AdminUsers:    1,
		RegularUsers:  3,
		RecentSignups: 4, // all created just now, inside the window
	}, stats)
}
