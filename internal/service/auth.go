package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/airbean/airbean-api/internal/config"
	"github.com/airbean/airbean-api/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, userID string) (entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (entities.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u entities.User) error
	ListUsers(ctx context.Context) ([]entities.User, error)
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Address  entities.Address
}

type authService struct {
	logger *slog.Logger
	users  UserRepo
	cfg    config.JWT
	now    func() time.Time
}

func NewAuthService(logger *slog.Logger, users UserRepo, cfg config.JWT, now func() time.Time) *authService {
	if now == nil {
		now = time.Now
	}
	return &authService{
		logger: logger.With(slog.String("service", "auth")),
		users:  users,
		cfg:    cfg,
		now:    now,
	}
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (entities.User, error) {
	taken, err := s.users.UsernameTaken(ctx, params.Username)
	if err != nil {
		return entities.User{}, err
	}
	if taken {
		return entities.User{}, fmt.Errorf("username taken: %w", entities.ErrUserExists)
	}

	taken, err = s.users.EmailTaken(ctx, params.Email)
	if err != nil {
		return entities.User{}, err
	}
	if taken {
		return entities.User{}, fmt.Errorf("email taken: %w", entities.ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           uuid.NewString(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
		Address:      params.Address,
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	s.logger.Info("user registered", slog.String("username", user.Username))
	return user, nil
}

// Login verifies the credentials and issues a signed time-limited token
// whose subject is the user id.
func (s *authService) Login(ctx context.Context, username, password string) (string, entities.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", entities.User{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entities.User{}, entities.ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", entities.User{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("username", user.Username))
	return signed, user, nil
}

// VerifyToken parses and validates an access token. Expired, malformed
// or foreign-signed tokens all map to ErrInvalidToken.
func (s *authService) VerifyToken(tokenString string) (entities.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return entities.TokenClaims{}, entities.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entities.TokenClaims{}, entities.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return entities.TokenClaims{}, entities.ErrInvalidToken
	}

	return entities.TokenClaims{UserID: sub, Role: role}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.users.ListUsers(ctx)
}
