package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/senyabanana/gig-service/internal/models"
	"github.com/senyabanana/gig-service/internal/repository"
	"github.com/senyabanana/gig-service/internal/utils"
)

// Notifier доставляет событие во все живые соединения пользователя.
type Notifier interface {
	Notify(userId string, event interface{})
}

type BidService struct {
	Repo  repository.BidRepository
	Gigs  repository.GigRepository
	Users repository.UserRepository
	Hub   Notifier
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, gigs repository.GigRepository, users repository.UserRepository, hub Notifier) *BidService {
	return &BidService{Repo: repo, Gigs: gigs, Users: users, Hub: hub}
}

// CreateBid создает новое предложение по гигу.
// Порядок проверок: гиг существует, гиг открыт, не свой гиг, нет дубликата.
func (s *BidService) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.BidWithFreelancer, error) {
	if bidReq.GigID == "" || bidReq.Message == "" || bidReq.Username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if bidReq.Price < 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "price must be a non-negative number")
	}

	user, err := s.Users.GetByUsername(ctx, bidReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	gig, err := s.Gigs.GetGigByID(ctx, bidReq.GigID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to retrieve gig")
	}
	if gig == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "gig not found")
	}
	if gig.Status != models.OpenGig {
		return nil, models.NewErrorResponse(http.StatusConflict, "this gig is no longer accepting bids")
	}
	if gig.OwnerID == user.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you cannot bid on your own gig")
	}

	existingBid, err := s.Repo.GetBidForGigAndFreelancer(ctx, bidReq.GigID, user.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check existing bid")
	}
	if existingBid != nil {
		return nil, models.NewErrorResponse(http.StatusConflict, "you have already submitted a bid for this gig")
	}
	return s.Repo.CreateBid(ctx, bidReq, user.ID)
}

// GetUserBids получает список предложений пользователя.
func (s *BidService) GetUserBids(ctx context.Context, username string, statuses []string, limitStr, offsetStr string) ([]models.BidWithGig, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	allowedStatuses := []models.BidStatus{models.PendingBid, models.HiredBid, models.RejectedBid}
	for _, status := range statuses {
		if !utils.ContainsBidStatus(allowedStatuses, models.BidStatus(status)) {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported bid status: %s", status))
		}
	}

	if username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "username is required")
	}
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return s.Repo.GetUserBids(ctx, user.ID, statuses, limit, offset)
}

// GetGigBids получает список предложений по гигу. Доступно только владельцу гига.
func (s *BidService) GetGigBids(ctx context.Context, gigId, username, limitStr, offsetStr string) ([]models.BidWithFreelancer, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	if gigId == "" || username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameters: username or gigId")
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	gig, err := s.Gigs.GetGigByID(ctx, gigId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to retrieve gig")
	}
	if gig == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "gig not found")
	}
	if gig.OwnerID != user.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "not authorized to view bids for this gig")
	}
	return s.Repo.GetGigBids(ctx, gigId, limit, offset)
}

// HireBid нанимает исполнителя по предложению и уведомляет его о найме.
// Уведомление отправляется строго после фиксации транзакции; сбой доставки
// не откатывает и не повторяет наём.
func (s *BidService) HireBid(ctx context.Context, bidId, username string) (*models.BidWithFreelancer, error) {
	if bidId == "" || username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameters: bidId or username")
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	result, err := s.Repo.HireBid(ctx, bidId, user.ID)
	if err != nil {
		return nil, err
	}

	s.Hub.Notify(result.Bid.FreelancerID, models.Notification{
		Event: "hired",
		Data: models.HiredEvent{
			Message:  fmt.Sprintf("You have been hired for %s!", result.GigTitle),
			GigID:    result.Bid.GigID,
			GigTitle: result.GigTitle,
			BidID:    result.Bid.ID,
		},
	})
	return &result.Bid, nil
}
