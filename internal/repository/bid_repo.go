package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/senyabanana/gig-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bidReq models.BidRequest, freelancerId string) (*models.BidWithFreelancer, error)
	GetUserBids(ctx context.Context, freelancerId string, statuses []string, limit, offset int) ([]models.BidWithGig, error)
	GetGigBids(ctx context.Context, gigId string, limit, offset int) ([]models.BidWithFreelancer, error)
	GetBidForGigAndFreelancer(ctx context.Context, gigId, freelancerId string) (*models.Bid, error)
	HireBid(ctx context.Context, bidId, callerId string) (*models.HireResult, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid создает новое предложение со статусом "pending".
// Уникальность пары (gig_id, freelancer_id) гарантирует индекс в базе: повторная
// вставка наперегонки превращается в ошибку 23505, а не во второе предложение.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidReq models.BidRequest, freelancerId string) (*models.BidWithFreelancer, error) {
	now := time.Now().UTC()
	newBid := models.Bid{
		ID:           uuid.New().String(),
		GigID:        bidReq.GigID,
		FreelancerID: freelancerId,
		Message:      bidReq.Message,
		Price:        bidReq.Price,
		Status:       models.PendingBid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	insertQuery := `INSERT INTO bid (id, gig_id, freelancer_id, message, price, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.GigID,
		newBid.FreelancerID,
		newBid.Message,
		newBid.Price,
		newBid.Status,
		newBid.CreatedAt,
		newBid.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, models.NewErrorResponse(http.StatusConflict, "you have already submitted a bid for this gig")
		}
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}

	var bid models.BidWithFreelancer
	bid.Bid = newBid
	userQuery := `SELECT name, email FROM users WHERE id = $1`
	if err := r.DB.QueryRow(ctx, userQuery, freelancerId).Scan(&bid.FreelancerName, &bid.FreelancerEmail); err != nil {
		return nil, err
	}
	return &bid, nil
}

// GetUserBids возвращает список предложений пользователя с кратким описанием гигов.
func (r *PostgresBidRepository) GetUserBids(ctx context.Context, freelancerId string, statuses []string, limit, offset int) ([]models.BidWithGig, error) {
	query := `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status, b.created_at, b.updated_at,
		       g.title, g.description, g.budget, g.status
		FROM bid b
		JOIN gig g ON b.gig_id = g.id`
	filters := []string{"b.freelancer_id = $1"}
	args := []interface{}{freelancerId}
	argIndex := 2

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("b.status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	query += " WHERE " + strings.Join(filters, " AND ")
	query += fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userBids []models.BidWithGig
	for rows.Next() {
		var bid models.BidWithGig
		if err := rows.Scan(
			&bid.ID,
			&bid.GigID,
			&bid.FreelancerID,
			&bid.Message,
			&bid.Price,
			&bid.Status,
			&bid.CreatedAt,
			&bid.UpdatedAt,
			&bid.GigTitle,
			&bid.GigDescription,
			&bid.GigBudget,
			&bid.GigStatus); err != nil {
			return nil, err
		}
		userBids = append(userBids, bid)
	}
	return userBids, nil
}

// GetGigBids возвращает список предложений по гигу с данными исполнителей.
func (r *PostgresBidRepository) GetGigBids(ctx context.Context, gigId string, limit, offset int) ([]models.BidWithFreelancer, error) {
	query := `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status, b.created_at, b.updated_at, u.name, u.email
		FROM bid b
		JOIN users u ON b.freelancer_id = u.id
		WHERE b.gig_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, gigId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.BidWithFreelancer
	for rows.Next() {
		var bid models.BidWithFreelancer
		if err := rows.Scan(
			&bid.ID,
			&bid.GigID,
			&bid.FreelancerID,
			&bid.Message,
			&bid.Price,
			&bid.Status,
			&bid.CreatedAt,
			&bid.UpdatedAt,
			&bid.FreelancerName,
			&bid.FreelancerEmail); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

// GetBidForGigAndFreelancer возвращает предложение пользователя по гигу.
// Если предложения нет, возвращает nil без ошибки.
func (r *PostgresBidRepository) GetBidForGigAndFreelancer(ctx context.Context, gigId, freelancerId string) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT id, gig_id, freelancer_id, message, price, status, created_at, updated_at
	          FROM bid WHERE gig_id = $1 AND freelancer_id = $2`
	err := r.DB.QueryRow(ctx, query, gigId, freelancerId).Scan(
		&bid.ID,
		&bid.GigID,
		&bid.FreelancerID,
		&bid.Message,
		&bid.Price,
		&bid.Status,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// HireBid атомарно нанимает исполнителя по предложению: гиг получает статус "assigned",
// предложение - "hired", остальные ожидающие предложения по гигу - "rejected".
// Все проверки и изменения выполняются в одной транзакции; блокировка строки гига
// сериализует конкурирующие вызовы HireBid по одному гигу.
func (r *PostgresBidRepository) HireBid(ctx context.Context, bidId, callerId string) (*models.HireResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var bid models.BidWithFreelancer
	var ownerId string
	var gigTitle string
	var gigStatus models.GigStatus
	selectQuery := `
		SELECT b.id, b.gig_id, b.freelancer_id, b.message, b.price, b.status, b.created_at, b.updated_at,
		       u.name, u.email, g.owner_id, g.title, g.status
		FROM bid b
		JOIN gig g ON b.gig_id = g.id
		JOIN users u ON b.freelancer_id = u.id
		WHERE b.id = $1
		FOR UPDATE OF g`
	err = tx.QueryRow(ctx, selectQuery, bidId).Scan(
		&bid.ID,
		&bid.GigID,
		&bid.FreelancerID,
		&bid.Message,
		&bid.Price,
		&bid.Status,
		&bid.CreatedAt,
		&bid.UpdatedAt,
		&bid.FreelancerName,
		&bid.FreelancerEmail,
		&ownerId,
		&gigTitle,
		&gigStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
	}
	if err != nil {
		return nil, err
	}

	if ownerId != callerId {
		return nil, models.NewErrorResponse(http.StatusForbidden, "not authorized to hire for this gig")
	}
	// Проверка выполняется под блокировкой строки гига: из двух конкурирующих
	// вызовов второй увидит уже назначенный гиг.
	if gigStatus != models.OpenGig {
		return nil, models.NewErrorResponse(http.StatusConflict, "this gig has already been assigned")
	}

	now := time.Now().UTC()
	if _, err = tx.Exec(ctx, `UPDATE gig SET status = $1, updated_at = $2 WHERE id = $3`,
		models.AssignedGig, now, bid.GigID); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, `UPDATE bid SET status = $1, updated_at = $2 WHERE id = $3`,
		models.HiredBid, now, bid.ID); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, `UPDATE bid SET status = $1, updated_at = $2 WHERE gig_id = $3 AND id <> $4 AND status = $5`,
		models.RejectedBid, now, bid.GigID, bid.ID, models.PendingBid); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	bid.Status = models.HiredBid
	bid.UpdatedAt = now
	return &models.HireResult{Bid: bid, GigTitle: gigTitle}, nil
}
