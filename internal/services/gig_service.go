package services

import (
	"context"
	"net/http"

	"github.com/senyabanana/gig-service/internal/models"
	"github.com/senyabanana/gig-service/internal/repository"
	"github.com/senyabanana/gig-service/internal/utils"
)

type GigService struct {
	Repo  repository.GigRepository
	Users repository.UserRepository
}

// NewGigService создает новый экземпляр GigService.
func NewGigService(repo repository.GigRepository, users repository.UserRepository) *GigService {
	return &GigService{Repo: repo, Users: users}
}

// CreateGig создает новый гиг.
func (s *GigService) CreateGig(ctx context.Context, gigReq models.GigRequest) (*models.Gig, error) {
	if gigReq.Title == "" || gigReq.Description == "" || gigReq.Username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if gigReq.Budget < 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budget must be a non-negative number")
	}

	user, err := s.Users.GetByUsername(ctx, gigReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return s.Repo.CreateGig(ctx, gigReq, user.ID)
}

// FetchGigs получает список открытых гигов.
func (s *GigService) FetchGigs(ctx context.Context, search, limitStr, offsetStr string) ([]models.GigWithOwner, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.GetGigs(ctx, search, limit, offset)
}

// GetUserGigs получает список гигов пользователя.
func (s *GigService) GetUserGigs(ctx context.Context, username, limitStr, offsetStr string) ([]models.Gig, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
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
	return s.Repo.GetUserGigs(ctx, user.ID, limit, offset)
}

// GetGig получает гиг по ID.
func (s *GigService) GetGig(ctx context.Context, gigId string) (*models.Gig, error) {
	gig, err := s.Repo.GetGigByID(ctx, gigId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to retrieve gig")
	}
	if gig == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "gig not found")
	}
	return gig, nil
}
