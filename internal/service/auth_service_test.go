package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/volunteerhub/internal/config"
	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestAuthService(users *fakeUserRepo, dispatcher *recordingDispatcher, cfg config.Config) *AuthService {
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   users,
		StatsRepo:  &fakeStatsRepo{},
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.HTTPStatus
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTestAuthService(users, dispatcher, testConfig())

	user, token, _, err := svc.Register(context.Background(), RegisterInput{
		Email:     "Jess@Example.COM",
		Password:  "secret1",
		FirstName: "Jess",
		LastName:  "Lee",
		Role:      domain.RoleVolunteer,
		Skills:    []string{" gardening ", ""},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jess@example.com", user.Email)
	assert.Equal(t, []string{"gardening"}, user.Skills)
	assert.Equal(t, []events.EventType{events.EventStatsUpdate}, dispatcher.types())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleVolunteer, claims.Role)

	loggedIn, _, _, err := svc.Login(context.Background(), "jess@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, &recordingDispatcher{}, testConfig())

	input := RegisterInput{
		Email:     "dup@example.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
		Role:      domain.RoleOrganization,
	}
	_, _, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, &recordingDispatcher{}, testConfig())

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email:     "who@example.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
		Role:      domain.RoleVolunteer,
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "who@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestLoginEmptyStoredCredential(t *testing.T) {
	makeUsers := func() *fakeUserRepo {
		users := newFakeUserRepo()
		users.users["migrated"] = &domain.User{
			ID:    "migrated",
			Email: "old@example.com",
			Role:  domain.RoleVolunteer,
		}
		return users
	}

	t.Run("requires reset by default", func(t *testing.T) {
		svc := newTestAuthService(makeUsers(), &recordingDispatcher{}, testConfig())
		_, _, _, err := svc.Login(context.Background(), "old@example.com", "anything")
		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
	})

	t.Run("legacy flag admits any password", func(t *testing.T) {
		cfg := testConfig()
		cfg.Compat.LegacyEmptyPassword = true
		svc := newTestAuthService(makeUsers(), &recordingDispatcher{}, cfg)
		user, token, _, err := svc.Login(context.Background(), "old@example.com", "anything")
		require.NoError(t, err)
		assert.Equal(t, "migrated", user.ID)
		assert.NotEmpty(t, token)
	})
}

func TestUpdateProfileSelfOnly(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, &recordingDispatcher{}, testConfig())

	owner, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email:     "me@example.com",
		Password:  "secret1",
		FirstName: "Me",
		LastName:  "Mine",
		Role:      domain.RoleVolunteer,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), "someone-else", owner.ID, ProfileUpdateInput{})
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))

	bio := "hello"
	updated, err := svc.UpdateProfile(context.Background(), owner.ID, owner.ID, ProfileUpdateInput{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hello", *updated.Bio)
}
