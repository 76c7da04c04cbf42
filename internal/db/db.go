package db

import (
	"context"
	"fmt"

	"github.com/senyabanana/gig-service/internal/router/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnString возвращает строку подключения к базе данных. Явно заданный
// POSTGRES_CONN имеет приоритет; иначе строка собирается из отдельных
// POSTGRES_* параметров.
func ConnString(cfg config.Config) (string, error) {
	if cfg.PostgresConn != "" {
		return cfg.PostgresConn, nil
	}

	if cfg.PostgresUser == "" || cfg.PostgresPass == "" || cfg.PostgresHost == "" || cfg.PostgresPort == "" || cfg.PostgresDB == "" {
		return "", fmt.Errorf("one or more database connection environment variables are missing")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPass,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDB), nil
}

// InitDb инициализирует подключение к базе данных и возвращает пул соединений.
func InitDb(cfg config.Config) (*pgxpool.Pool, error) {
	dsn, err := ConnString(cfg)
	if err != nil {
		return nil, err
	}

	dbPool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	return dbPool, nil
}
