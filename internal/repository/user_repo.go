package repository

import (
	"context"
	"errors"

	"github.com/senyabanana/gig-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, userId string) (*models.User, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetByUsername возвращает пользователя по username. Если пользователя нет, возвращает nil без ошибки.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, name, email, created_at FROM users WHERE username = $1`
	err := r.DB.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID возвращает пользователя по id. Если пользователя нет, возвращает nil без ошибки.
func (r *PostgresUserRepository) GetByID(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, name, email, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userId).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
