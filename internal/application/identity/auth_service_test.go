package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func newTestAuthService() (*AuthService, *memUserRepo, auth.TokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-tests",
		RefreshSecret:          "test-refresh-secret-for-auth-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
	users := newMemUserRepo()
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(users, jwtService, blacklist, zap.NewNop()), users, blacklist
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Email:    "Shopper@Example.com",
		Username: "shopper",
		Password: "correct horse battery",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account with normalized email", func(t *testing.T) {
		svc, users, _ := newTestAuthService()

		resp, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		assert.Equal(t, "shopper@example.com", resp.Email)
		assert.Equal(t, "shopper", resp.Username)
		assert.Equal(t, string(identity.RoleCustomer), resp.Role)

		stored, err := users.FindByID(t.Context(), resp.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	})

	t.Run("rejects a duplicate email regardless of case", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		second := validRegistration()
		second.Username = "someone-else"
		second.Email = "SHOPPER@example.com"
		_, err = svc.Register(t.Context(), second)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		second := validRegistration()
		second.Email = "other@example.com"
		_, err = svc.Register(t.Context(), second)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		resp, err := svc.Login(t.Context(), LoginRequest{
			Email:    "shopper@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "shopper", resp.User.Username)
	})

	t.Run("email lookup ignores case and surrounding space", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		_, err = svc.Login(t.Context(), LoginRequest{
			Email:    "  Shopper@Example.COM ",
			Password: "correct horse battery",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong password reads as invalid credentials", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		_, err = svc.Login(t.Context(), LoginRequest{
			Email:    "shopper@example.com",
			Password: "wrong",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Login(t.Context(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Run("blacklists the presented token", func(t *testing.T) {
		svc, _, blacklist := newTestAuthService()

		_, err := svc.Register(t.Context(), validRegistration())
		require.NoError(t, err)

		login, err := svc.Login(t.Context(), LoginRequest{
			Email:    "shopper@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(t.Context(), login.AccessToken))

		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-auth-tests",
			RefreshSecret:          "test-refresh-secret-for-auth-tests",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "test-issuer",
		})
		claims, err := jwtService.ValidateAccessToken(login.AccessToken)
		require.NoError(t, err)

		listed, err := blacklist.IsBlacklisted(t.Context(), claims.ID)
		require.NoError(t, err)
		assert.True(t, listed)
	})

	t.Run("an invalid token logs out without error", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		assert.NoError(t, svc.Logout(t.Context(), "not-a-token"))
	})
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	created, err := svc.Register(t.Context(), validRegistration())
	require.NoError(t, err)

	t.Run("returns the account", func(t *testing.T) {
		resp, err := svc.GetCurrentUser(t.Context(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, "shopper", resp.Username)
	})

	t.Run("unknown account reads as absent", func(t *testing.T) {
		_, err := svc.GetCurrentUser(t.Context(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
