package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/gig-service/internal/handlers"
	"github.com/senyabanana/gig-service/internal/models"
	"github.com/senyabanana/gig-service/internal/notify"
	"github.com/senyabanana/gig-service/internal/router"
	"github.com/senyabanana/gig-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users map[string]*models.User // ключ - username
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userId string) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == userId {
			return user, nil
		}
	}
	return nil, nil
}

type memGigRepo struct {
	mu   sync.Mutex
	gigs map[string]*models.Gig
}

func (r *memGigRepo) CreateGig(ctx context.Context, gigReq models.GigRequest, ownerId string) (*models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gig := &models.Gig{
		ID:      fmt.Sprintf("g-%d", len(r.gigs)+1),
		Title:   gigReq.Title,
		OwnerID: ownerId,
		Status:  models.OpenGig,
	}
	r.gigs[gig.ID] = gig
	return gig, nil
}

func (r *memGigRepo) GetGigs(ctx context.Context, search string, limit, offset int) ([]models.GigWithOwner, error) {
	return nil, nil
}

func (r *memGigRepo) GetUserGigs(ctx context.Context, ownerId string, limit, offset int) ([]models.Gig, error) {
	return nil, nil
}

func (r *memGigRepo) GetGigByID(ctx context.Context, gigId string) (*models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gig, ok := r.gigs[gigId]
	if !ok {
		return nil, nil
	}
	copied := *gig
	return &copied, nil
}

type memBidRepo struct {
	mu    sync.Mutex
	bids  map[string]*models.Bid
	gigs  *memGigRepo
	users *memUserRepo
	next  int
}

func (r *memBidRepo) freelancerData(userId string) (string, string) {
	for _, user := range r.users.users {
		if user.ID == userId {
			return user.Name, user.Email
		}
	}
	return "", ""
}

func (r *memBidRepo) CreateBid(ctx context.Context, bidReq models.BidRequest, freelancerId string) (*models.BidWithFreelancer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bid := range r.bids {
		if bid.GigID == bidReq.GigID && bid.FreelancerID == freelancerId {
			return nil, models.NewErrorResponse(http.StatusConflict, "you have already submitted a bid for this gig")
		}
	}
	r.next++
	bid := &models.Bid{
		ID:           fmt.Sprintf("b-%d", r.next),
		GigID:        bidReq.GigID,
		FreelancerID: freelancerId,
		Message:      bidReq.Message,
		Price:        bidReq.Price,
		Status:       models.PendingBid,
	}
	r.bids[bid.ID] = bid

	var result models.BidWithFreelancer
	result.Bid = *bid
	result.FreelancerName, result.FreelancerEmail = r.freelancerData(freelancerId)
	return &result, nil
}

func (r *memBidRepo) GetUserBids(ctx context.Context, freelancerId string, statuses []string, limit, offset int) ([]models.BidWithGig, error) {
	return nil, nil
}

func (r *memBidRepo) GetGigBids(ctx context.Context, gigId string, limit, offset int) ([]models.BidWithFreelancer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bids []models.BidWithFreelancer
	for _, bid := range r.bids {
		if bid.GigID != gigId {
			continue
		}
		var withFreelancer models.BidWithFreelancer
		withFreelancer.Bid = *bid
		withFreelancer.FreelancerName, withFreelancer.FreelancerEmail = r.freelancerData(bid.FreelancerID)
		bids = append(bids, withFreelancer)
	}
	return bids, nil
}

func (r *memBidRepo) GetBidForGigAndFreelancer(ctx context.Context, gigId, freelancerId string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bid := range r.bids {
		if bid.GigID == gigId && bid.FreelancerID == freelancerId {
			copied := *bid
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memBidRepo) HireBid(ctx context.Context, bidId, callerId string) (*models.HireResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gigs.mu.Lock()
	defer r.gigs.mu.Unlock()

	bid, ok := r.bids[bidId]
	if !ok {
		return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
	}
	gig := r.gigs.gigs[bid.GigID]
	if gig.OwnerID != callerId {
		return nil, models.NewErrorResponse(http.StatusForbidden, "not authorized to hire for this gig")
	}
	if gig.Status != models.OpenGig {
		return nil, models.NewErrorResponse(http.StatusConflict, "this gig has already been assigned")
	}

	gig.Status = models.AssignedGig
	bid.Status = models.HiredBid
	for _, sibling := range r.bids {
		if sibling.GigID == gig.ID && sibling.ID != bid.ID && sibling.Status == models.PendingBid {
			sibling.Status = models.RejectedBid
		}
	}

	var hired models.BidWithFreelancer
	hired.Bid = *bid
	hired.FreelancerName, hired.FreelancerEmail = r.freelancerData(bid.FreelancerID)
	return &models.HireResult{Bid: hired, GigTitle: gig.Title}, nil
}

type testEnv struct {
	server *httptest.Server
	hub    *notify.Hub
	gigs   *memGigRepo
	bids   *memBidRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &memUserRepo{users: map[string]*models.User{
		"owner":       {ID: "u-owner", Username: "owner", Name: "Owner", Email: "owner@example.com"},
		"freelancer1": {ID: "u-f1", Username: "freelancer1", Name: "First Freelancer", Email: "f1@example.com"},
		"freelancer2": {ID: "u-f2", Username: "freelancer2", Name: "Second Freelancer", Email: "f2@example.com"},
	}}
	gigs := &memGigRepo{gigs: map[string]*models.Gig{
		"g-1": {ID: "g-1", Title: "Logo design", OwnerID: "u-owner", Status: models.OpenGig},
	}}
	bids := &memBidRepo{bids: make(map[string]*models.Bid), gigs: gigs, users: users}

	logger := log.New(io.Discard, "", 0)
	hub := notify.NewHub(logger, 2*time.Second)

	gigService := services.NewGigService(gigs, users)
	bidService := services.NewBidService(bids, gigs, users, hub)

	gigHandler := handlers.NewGigHandler(gigService, logger, 2*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 2*time.Second)
	wsHandler := handlers.NewWSHandler(hub, users, logger, 2*time.Second)

	server := httptest.NewServer(router.InitRoutes(gigHandler, bidHandler, wsHandler))
	t.Cleanup(server.Close)

	return &testEnv{server: server, hub: hub, gigs: gigs, bids: bids}
}

func (e *testEnv) addBid(id, gigId, freelancerId string) {
	e.bids.bids[id] = &models.Bid{
		ID:           id,
		GigID:        gigId,
		FreelancerID: freelancerId,
		Message:      "I can do this",
		Price:        100,
		Status:       models.PendingBid,
	}
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var errorResponse models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
	return errorResponse
}

func TestCreateBidHandler(t *testing.T) {
	env := newTestEnv(t)

	body := `{"gigId":"g-1","message":"I can do this","price":120,"username":"freelancer1"}`
	resp, err := http.Post(env.server.URL+"/api/bids/new", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var bid models.BidWithFreelancer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bid))
	assert.Equal(t, models.PendingBid, bid.Status)
	assert.Equal(t, "u-f1", bid.FreelancerID)
	assert.Equal(t, "First Freelancer", bid.FreelancerName)
}

func TestCreateBidHandlerInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/bids/new", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBidHandlerWrongMethod(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/bids/new")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBidHandlerSelfBid(t *testing.T) {
	env := newTestEnv(t)

	body := `{"gigId":"g-1","message":"mine","price":50,"username":"owner"}`
	resp, err := http.Post(env.server.URL+"/api/bids/new", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "you cannot bid on your own gig", decodeError(t, resp).Message)
}

func TestGetGigBidsHandlerForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	env.addBid("b-1", "g-1", "u-f1")

	resp, err := http.Get(env.server.URL + "/api/bids/g-1/list?username=freelancer1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHireBidHandlerNotFound(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPatch, env.server.URL+"/api/bids/missing/hire?username=owner", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHireBidHandlerSecondHireConflict(t *testing.T) {
	env := newTestEnv(t)
	env.addBid("b-1", "g-1", "u-f1")
	env.addBid("b-2", "g-1", "u-f2")

	req, err := http.NewRequest(http.MethodPatch, env.server.URL+"/api/bids/b-1/hire?username=owner", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodPatch, env.server.URL+"/api/bids/b-2/hire?username=owner", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "this gig has already been assigned", decodeError(t, resp).Message)
}
