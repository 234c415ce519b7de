package service

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/models"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/config"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=mocks/mock_user_service.go -package=mocks . UserService

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims are the JWT claims issued at login. The subject is the user id.
type Claims struct {
	Username string `json:"un"`
	jwt.RegisteredClaims
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GuestLogin(ctx context.Context) (string, error)
	// PlayerIDFromToken validates a login token and returns the player id
	// of its user.
	PlayerIDFromToken(token string) (string, error)
}

type userService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, auth config.Auth) UserService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: []byte(auth.JWTSecret),
		tokenTTL:  auth.TokenTTL,
		now:       time.Now,
	}
}

func playerIDForUser(userID string) string {
	return "user-" + userID
}

// Register handles user registration.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) error {
	_, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return err
	}

	user := &models.User{
		Username: req.Username,
	}
	return s.userRepo.CreateUser(ctx, user, req.Password)
}

// Login checks the credentials and returns a signed JWT with the user's player id.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	subject := strconv.FormatInt(user.ID, 10)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{Token: tokenString, PlayerID: playerIDForUser(subject)}, nil
}

// GuestLogin generates a UUID for a guest player.
func (s *userService) GuestLogin(ctx context.Context) (string, error) {
	return uuid.New().String(), nil
}

func (s *userService) PlayerIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return playerIDForUser(claims.Subject), nil
}
