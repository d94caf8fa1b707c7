package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, registration_number, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.ID,
		newUser.RegistrationNumber,
		newUser.Name,
		newUser.PasswordHash,
		newUser.Role,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrRegistrationNumberExists
		}
		return user.User{}, err
	}

	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `
		SELECT id, registration_number, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

// GetByRegistrationNumber implements user.UserRepository.
func (r *userRepositoryImpl) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (user.User, error) {
	return r.getOne(ctx, `
		SELECT id, registration_number, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE registration_number = $1
	`, registrationNumber)
}

func (r *userRepositoryImpl) getOne(ctx context.Context, query string, arg string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.RegistrationNumber,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// ExistsByRegistrationNumber implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByRegistrationNumber(ctx context.Context, registrationNumber string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE registration_number = $1)`, registrationNumber).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LockForUpdate implements user.UserRepository. Must run inside a transaction.
func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepositoryImpl) LockForUpdate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var lockedID string
	err := q.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}
