package service

import (
	"context"
	"strings"
	"time"

	"admindash/internal/auth"
	"admindash/internal/model"
	"admindash/internal/repository"
)

type AuthService struct {
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	tokens    *auth.TokenManager
	now       func() time.Time
}

type AuthServiceOptions struct {
	// Now is used for lastLogin stamps. If nil, defaults to time.Now.
	Now func() time.Time
}

func NewAuthService(users repository.UserRepository, analytics repository.AnalyticsRepository, tokens *auth.TokenManager) *AuthService {
	return NewAuthServiceWithOptions(users, analytics, tokens, AuthServiceOptions{})
}

func NewAuthServiceWithOptions(users repository.UserRepository, analytics repository.AnalyticsRepository, tokens *auth.TokenManager, opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: users, analytics: analytics, tokens: tokens, now: now}
}

type SignupInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the public user projection returned with an issued token.
// IsBanned is only echoed on login, for client-side handling.
type AuthUser struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	IsBanned *bool      `json:"isBanned,omitempty"`
	Token    string     `json:"token"`
}

// Signup creates an account, records a user_signup metric event and
// returns an issued token. The user insert and the event insert are two
// independent writes; there is no cross-collection transaction.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (AuthUser, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" {
		return AuthUser{}, invalidRequest("Please provide name, email, and password")
	}
	if err := auth.ValidateEmail(email); err != nil {
		return AuthUser{}, invalidRequest(err.Error())
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return AuthUser{}, invalidRequest(err.Error())
	}

	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return AuthUser{}, invalidRequest("invalid role")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthUser{}, err
	}
	if existing != nil {
		return AuthUser{}, conflict("User already exists with this email")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthUser{}, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return AuthUser{}, err
	}

	if err := s.analytics.Insert(ctx, &model.AnalyticsEvent{
		MetricType: model.MetricUserSignup,
		Value:      1,
		Metadata:   map[string]any{"userId": user.ID.Hex(), "role": string(user.Role)},
	}); err != nil {
		return AuthUser{}, err
	}

	token, _, err := s.tokens.Issue(auth.Identity{UserID: user.ID.Hex(), Name: user.Name, Role: user.Role})
	if err != nil {
		return AuthUser{}, err
	}

	return AuthUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

// Login authenticates by email and password. Deactivated and banned
// accounts are rejected before the password comparison outcome matters;
// the isActive check deliberately runs first.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthUser{}, invalidRequest("Please provide email and password")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthUser{}, err
	}
	if user == nil {
		return AuthUser{}, unauthorized("Invalid credentials")
	}
	if !user.IsActive {
		return AuthUser{}, unauthorized("Your account has been deactivated")
	}
	if user.IsBanned {
		return AuthUser{}, unauthorized("Your account has been banned. You cannot login.")
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return AuthUser{}, unauthorized("Invalid credentials")
	}

	if err := s.users.SetLastLogin(ctx, user.ID.Hex(), s.now().UTC()); err != nil {
		return AuthUser{}, err
	}

	if err := s.analytics.Insert(ctx, &model.AnalyticsEvent{
		MetricType: model.MetricUserLogin,
		Value:      1,
		Metadata:   map[string]any{"userId": user.ID.Hex(), "role": string(user.Role)},
	}); err != nil {
		return AuthUser{}, err
	}

	token, _, err := s.tokens.Issue(auth.Identity{UserID: user.ID.Hex(), Name: user.Name, Role: user.Role})
	if err != nil {
		return AuthUser{}, err
	}

	banned := user.IsBanned
	return AuthUser{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IsBanned: &banned,
		Token:    token,
	}, nil
}

// CurrentUser resolves the account bound to an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}
