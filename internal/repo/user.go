package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/airbean/airbean-api/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var userColumns = []string{
	"user_id", "username", "email", "password_hash",
	"role", "street", "zip", "city", "created_at",
}

type userRepo struct {
	base
}

func NewUserRepo(db *sqlx.DB) *userRepo {
	return &userRepo{base: newBase(db)}
}

func (r *userRepo) GetUserByID(ctx context.Context, userID string) (entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(user), nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(user), nil
}

// UsernameTaken and EmailTaken back the duplicate checks on signup.
func (r *userRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, sq.Eq{"username": username})
}

func (r *userRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

func (r *userRepo) exists(ctx context.Context, pred sq.Eq) (bool, error) {
	query, args := r.qb.Select("1").
		From("users").
		Where(pred).
		Limit(1).
		MustSql()

	var one int
	err := r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (r *userRepo) CreateUser(ctx context.Context, u entities.User) error {
	query, args := r.qb.Insert("users").
		Columns(userColumns...).
		Values(
			u.ID, u.Username, u.Email, u.PasswordHash,
			u.Role, u.Address.Street, u.Address.Zip, u.Address.City, u.CreatedAt,
		).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		OrderBy("created_at").
		MustSql()

	var users []User
	if err := r.selectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}

	result := make([]entities.User, 0, len(users))
	for _, u := range users {
		result = append(result, UserToEntity(u))
	}
	return result, nil
}
