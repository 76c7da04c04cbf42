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

// GigHandler - структура для обработки HTTP-запросов.
type GigHandler struct {
	Service *services.GigService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewGigHandler создает новый экземпляр GigHandler.
func NewGigHandler(service *services.GigService, logger *log.Logger, timeout time.Duration) *GigHandler {
	return &GigHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetGigs обрабатывает запросы для получения списка открытых гигов.
func (h *GigHandler) GetGigs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	search := r.URL.Query().Get("search")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	gigs, err := h.Service.FetchGigs(ctx, search, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch gigs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(gigs); err != nil {
		h.Logger.Println(err)
	}
}

// CreateGig обрабатывает запросы для создания гига.
func (h *GigHandler) CreateGig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var gigReq models.GigRequest
	err := json.NewDecoder(r.Body).Decode(&gigReq)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gig, err := h.Service.CreateGig(ctx, gigReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create gig")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(gig); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserGig обрабатывает запросы для получения списка гигов пользователя.
func (h *GigHandler) GetUserGig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	gigs, err := h.Service.GetUserGigs(ctx, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve gigs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(gigs); err != nil {
		h.Logger.Println(err)
	}
}

// GetGig обрабатывает запросы для получения гига по ID.
func (h *GigHandler) GetGig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	gigId := r.PathValue("gigId")

	gig, err := h.Service.GetGig(ctx, gigId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve gig")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(gig); err != nil {
		h.Logger.Println(err)
	}
}
