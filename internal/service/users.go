package service

import (
	"context"
	"strings"
	"time"

	"admindash/internal/auth"
	"admindash/internal/config"
	"admindash/internal/model"
	"admindash/internal/repository"
)

type UsersService struct {
	users     repository.UserRepository
	configMgr *config.Manager
}

func NewUsersService(users repository.UserRepository, configMgr *config.Manager) *UsersService {
	return &UsersService{users: users, configMgr: configMgr}
}

func (s *UsersService) List(ctx context.Context, page, limit int64) ([]model.User, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return users, paginate(page, limit, total), nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

type UpdateUserInput struct {
	Name     *string     `json:"name"`
	Email    *string     `json:"email"`
	Role     *model.Role `json:"role"`
	IsActive *bool       `json:"isActive"`
}

func (s *UsersService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalidRequest("name cannot be empty")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := auth.ValidateEmail(email); err != nil {
			return nil, invalidRequest(err.Error())
		}
		if email != user.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, conflict("User already exists with this email")
			}
			user.Email = email
		}
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, invalidRequest("invalid role")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("User not found")
	}
	return s.users.Delete(ctx, id)
}

// Ban flags the account; banned users are rejected at login regardless
// of other flags. The flip is idempotent.
func (s *UsersService) Ban(ctx context.Context, id string) (*model.User, error) {
	return s.setBanned(ctx, id, true)
}

// Unban clears the ban flag. The flip is idempotent.
func (s *UsersService) Unban(ctx context.Context, id string) (*model.User, error) {
	return s.setBanned(ctx, id, false)
}

func (s *UsersService) setBanned(ctx context.Context, id string, banned bool) (*model.User, error) {
	user, err := s.users.SetBanned(ctx, id, banned)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

// Stats returns the user directory counters. The recent-signups window
// comes from config (recent_signup_days).
func (s *UsersService) Stats(ctx context.Context) (model.UserStats, error) {
	var stats model.UserStats
	var err error

	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.ActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return stats, err
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	if stats.AdminUsers, err = s.users.CountAdmins(ctx); err != nil {
		return stats, err
	}
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers

	windowDays := s.configMgr.Get().Stats.RecentSignupDays
	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	if stats.RecentSignups, err = s.users.CountCreatedSince(ctx, since); err != nil {
		return stats, err
	}
	return stats, nil
}
