package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/gig-service/internal/models"
	"github.com/senyabanana/gig-service/internal/services"
	"github.com/senyabanana/gig-service/internal/utils"
)

// BidHandler - структура для обработки HTTP-запросов.
type BidHandler struct {
	Service *services.BidService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *log.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для создания предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bidReq models.BidRequest
	err := json.NewDecoder(r.Body).Decode(&bidReq)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newBid, err := h.Service.CreateBid(ctx, bidReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(newBid); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserBid обрабатывает запросы для получения списка предложений пользователя.
func (h *BidHandler) GetUserBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")
	statuses := r.URL.Query()["status"]
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	userBids, err := h.Service.GetUserBids(ctx, username, statuses, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(userBids); err != nil {
		h.Logger.Println(err)
	}
}

// GetGigBid обрабатывает запросы для получения списка предложений по гигу.
func (h *BidHandler) GetGigBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	gigId := r.PathValue("gigId")
	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	bids, err := h.Service.GetGigBids(ctx, gigId, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids for gig")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Println(err)
	}
}

// HireBid обрабатывает запросы на наём исполнителя по предложению.
func (h *BidHandler) HireBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := r.PathValue("bidId")
	username := r.URL.Query().Get("username")

	bid, err := h.Service.HireBid(ctx, bidId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to hire for this bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Println(err)
	}
}
