package service

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/models"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/repository/mocks"
	"ctchen222/Power-Tic-Tac-Toe/internal/config"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAuth = config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}

func newTestService(t *testing.T) (*userService, *mocks.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	return NewUserService(repo, testAuth).(*userService), repo
}

func storedUser(t *testing.T, id int64, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: id, Username: username, PasswordHash: string(hash)}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := &models.RegisterRequest{Username: "alice", Password: "secret123"}

	t.Run("creates a new user", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
		repo.EXPECT().CreateUser(ctx, &models.User{Username: "alice"}, "secret123").Return(nil)

		assert.NoError(t, s.Register(ctx, req))
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

		assert.ErrorIs(t, s.Register(ctx, req), ErrUsernameTaken)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		s, repo := newTestService(t)
		dbErr := errors.New("database is locked")
		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(nil, dbErr)

		assert.ErrorIs(t, s.Register(ctx, req), dbErr)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(storedUser(t, 42, "alice", "secret123"), nil)

		resp, err := s.Login(ctx, &models.LoginRequest{Username: "alice", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "user-42", resp.PlayerID)

		claims := &Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
			return []byte(testAuth.JWTSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, "alice", claims.Username)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	tests := []struct {
		name     string
		user     *models.User
		repoErr  error
		password string
	}{
		{name: "unknown user", repoErr: repository.ErrUserNotFound, password: "secret123"},
		{name: "wrong password", user: storedUser(t, 1, "alice", "secret123"), password: "nope-nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestService(t)
			repo.EXPECT().GetUserByUsername(ctx, "alice").Return(tt.user, tt.repoErr)

			resp, err := s.Login(ctx, &models.LoginRequest{Username: "alice", Password: tt.password})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, resp)
		})
	}
}

func TestGuestLogin(t *testing.T) {
	s, _ := newTestService(t)

	id, err := s.GuestLogin(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestPlayerIDFromToken(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService(t)
	repo.EXPECT().GetUserByUsername(ctx, "alice").Return(storedUser(t, 7, "alice", "secret123"), nil)

	resp, err := s.Login(ctx, &models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	playerID, err := s.PlayerIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", playerID)

	t.Run("expired", func(t *testing.T) {
		s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		t.Cleanup(func() { s.now = time.Now })

		_, err := s.PlayerIDFromToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other := NewUserService(repo, config.Auth{JWTSecret: "other", TokenTTL: time.Hour})
		_, err := other.PlayerIDFromToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.PlayerIDFromToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: "ghost"}).SignedString([]byte(testAuth.JWTSecret))
		require.NoError(t, err)

		_, err = s.PlayerIDFromToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
