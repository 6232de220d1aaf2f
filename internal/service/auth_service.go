package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/config"
	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// RegisterInput describes the registration payload after validation.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.UserRole
	Phone     *string
	Location  *string
	Skills    []string
	Bio       *string
}

// ProfileUpdateInput carries the whitelisted self-service profile fields.
// The role and email never travel through this path.
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Location  *string
	Bio       *string
	Skills    *[]string
}

// AuthService coordinates registration, login and profile maintenance.
type AuthService struct {
	users               repository.UserRepository
	stats               repository.StatsRepository
	presence            *PresenceService
	dispatcher          events.Dispatcher
	tokenMgr            *auth.TokenManager
	logger              *zap.Logger
	bcryptCost          int
	legacyEmptyPassword bool
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	StatsRepo  repository.StatsRepository
	Presence   *PresenceService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:               deps.UserRepo,
		stats:               deps.StatsRepo,
		presence:            deps.Presence,
		dispatcher:          deps.Dispatcher,
		tokenMgr:            auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:              deps.Logger,
		bcryptCost:          cfg.Auth.BcryptCost,
		legacyEmptyPassword: cfg.Compat.LegacyEmptyPassword,
	}
}

// Register creates a new account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("user already exists with this email", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		Phone:        input.Phone,
		Location:     input.Location,
		Skills:       trimSkills(input.Skills),
		Bio:          input.Bio,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// the unique email index catches the race the pre-check misses
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.presence.MarkActive(ctx, user.ID)
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return user, token, exp, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if user.PasswordHash == "" {
		// Accounts migrated without a credential. The legacy system let
		// them in with any password; by default they must reset instead.
		if !s.legacyEmptyPassword {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("password reset required")
		}
	} else if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.presence.MarkActive(ctx, user.ID)
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return user, token, exp, nil
}

// CurrentUser loads the account for the authenticated caller.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateProfile applies a whitelisted patch to the caller's own profile.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID, targetID string, input ProfileUpdateInput) (*domain.User, error) {
	if callerID != targetID {
		return nil, apperrors.NewForbidden("not authorized to update this profile")
	}

	patch := repository.UserPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Location:  input.Location,
		Bio:       input.Bio,
	}
	if input.Skills != nil {
		skills := trimSkills(*input.Skills)
		patch.Skills = &skills
	}

	user, err := s.users.Update(ctx, targetID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetProfilePicture records the stored picture URL on the caller's profile.
func (s *AuthService) SetProfilePicture(ctx context.Context, callerID, targetID, url string) (*domain.User, error) {
	if callerID != targetID {
		return nil, apperrors.NewForbidden("not authorized to update this profile")
	}
	user, err := s.users.Update(ctx, targetID, repository.UserPatch{ProfilePicture: &url})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func trimSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
