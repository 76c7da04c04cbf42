package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/gig-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GigRepository - интерфейс для работы с гигами.
type GigRepository interface {
	CreateGig(ctx context.Context, gigReq models.GigRequest, ownerId string) (*models.Gig, error)
	GetGigs(ctx context.Context, search string, limit, offset int) ([]models.GigWithOwner, error)
	GetUserGigs(ctx context.Context, ownerId string, limit, offset int) ([]models.Gig, error)
	GetGigByID(ctx context.Context, gigId string) (*models.Gig, error)
}

// PostgresGigRepository - реализация GigRepository для базы данных.
type PostgresGigRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresGigRepository создает новый экземпляр PostgresGigRepository.
func NewPostgresGigRepository(db *pgxpool.Pool) *PostgresGigRepository {
	return &PostgresGigRepository{DB: db}
}

// CreateGig создает новый гиг со статусом "open".
func (r *PostgresGigRepository) CreateGig(ctx context.Context, gigReq models.GigRequest, ownerId string) (*models.Gig, error) {
	now := time.Now().UTC()
	newGig := models.Gig{
		ID:          uuid.New().String(),
		Title:       gigReq.Title,
		Description: gigReq.Description,
		Budget:      gigReq.Budget,
		OwnerID:     ownerId,
		Status:      models.OpenGig,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	insertQuery := `INSERT INTO gig (id, title, description, budget, owner_id, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newGig.ID,
		newGig.Title,
		newGig.Description,
		newGig.Budget,
		newGig.OwnerID,
		newGig.Status,
		newGig.CreatedAt,
		newGig.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert gig: %w", err)
	}
	return &newGig, nil
}

// GetGigs возвращает список открытых гигов с данными владельцев.
func (r *PostgresGigRepository) GetGigs(ctx context.Context, search string, limit, offset int) ([]models.GigWithOwner, error) {
	query := `
		SELECT g.id, g.title, g.description, g.budget, g.owner_id, g.status, g.created_at, g.updated_at, u.name, u.email
		FROM gig g
		JOIN users u ON g.owner_id = u.id`
	filters := []string{"g.status = 'open'"}
	var args []interface{}
	argIndex := 1

	if search != "" {
		filters = append(filters, fmt.Sprintf("(g.title ILIKE $%d OR g.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	query += " WHERE " + strings.Join(filters, " AND ")
	query += fmt.Sprintf(" ORDER BY g.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gigs []models.GigWithOwner
	for rows.Next() {
		var gig models.GigWithOwner
		if err := rows.Scan(
			&gig.ID,
			&gig.Title,
			&gig.Description,
			&gig.Budget,
			&gig.OwnerID,
			&gig.Status,
			&gig.CreatedAt,
			&gig.UpdatedAt,
			&gig.OwnerName,
			&gig.OwnerEmail); err != nil {
			return nil, err
		}
		gigs = append(gigs, gig)
	}
	return gigs, nil
}

// GetUserGigs возвращает список гигов пользователя.
func (r *PostgresGigRepository) GetUserGigs(ctx context.Context, ownerId string, limit, offset int) ([]models.Gig, error) {
	query := `SELECT id, title, description, budget, owner_id, status, created_at, updated_at
	          FROM gig WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, ownerId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gigs []models.Gig
	for rows.Next() {
		var gig models.Gig
		if err := rows.Scan(
			&gig.ID,
			&gig.Title,
			&gig.Description,
			&gig.Budget,
			&gig.OwnerID,
			&gig.Status,
			&gig.CreatedAt,
			&gig.UpdatedAt); err != nil {
			return nil, err
		}
		gigs = append(gigs, gig)
	}
	return gigs, nil
}

// GetGigByID возвращает гиг по его ID. Если гига нет, возвращает nil без ошибки.
func (r *PostgresGigRepository) GetGigByID(ctx context.Context, gigId string) (*models.Gig, error) {
	var gig models.Gig
	query := `SELECT id, title, description, budget, owner_id, status, created_at, updated_at
	          FROM gig WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, gigId).Scan(
		&gig.ID,
		&gig.Title,
		&gig.Description,
		&gig.Budget,
		&gig.OwnerID,
		&gig.Status,
		&gig.CreatedAt,
		&gig.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gig, nil
}
