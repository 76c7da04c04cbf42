package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/senyabanana/gig-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGigServiceFixture() (*GigService, *fakeGigRepo) {
	users := &fakeUserRepo{users: map[string]*models.User{
		"owner": {ID: "u-owner", Username: "owner", Name: "Owner", Email: "owner@example.com"},
	}}
	gigs := &fakeGigRepo{gigs: make(map[string]*models.Gig)}
	return NewGigService(gigs, users), gigs
}

func TestCreateGigSuccess(t *testing.T) {
	service, _ := newGigServiceFixture()

	gig, err := service.CreateGig(context.Background(), models.GigRequest{
		Title:       "Build a landing page",
		Description: "One page site",
		Budget:      500,
		Username:    "owner",
	})

	require.NoError(t, err)
	assert.Equal(t, models.OpenGig, gig.Status)
	assert.Equal(t, "u-owner", gig.OwnerID)
}

func TestCreateGigMissingFields(t *testing.T) {
	service, _ := newGigServiceFixture()

	_, err := service.CreateGig(context.Background(), models.GigRequest{Title: "only title", Username: "owner"})

	requireErrorResponse(t, err, http.StatusBadRequest)
}

func TestCreateGigNegativeBudget(t *testing.T) {
	service, _ := newGigServiceFixture()

	_, err := service.CreateGig(context.Background(), models.GigRequest{
		Title: "t", Description: "d", Budget: -10, Username: "owner",
	})

	requireErrorResponse(t, err, http.StatusBadRequest)
}

func TestCreateGigUnknownUser(t *testing.T) {
	service, _ := newGigServiceFixture()

	_, err := service.CreateGig(context.Background(), models.GigRequest{
		Title: "t", Description: "d", Budget: 10, Username: "ghost",
	})

	requireErrorResponse(t, err, http.StatusUnauthorized)
}

func TestFetchGigsInvalidLimit(t *testing.T) {
	service, _ := newGigServiceFixture()

	_, err := service.FetchGigs(context.Background(), "", "-5", "")

	requireErrorResponse(t, err, http.StatusBadRequest)
}

func TestGetGigNotFound(t *testing.T) {
	service, _ := newGigServiceFixture()

	_, err := service.GetGig(context.Background(), "missing")

	errorResponse := requireErrorResponse(t, err, http.StatusNotFound)
	assert.Equal(t, "gig not found", errorResponse.Message)
}

func TestGetGigSuccess(t *testing.T) {
	service, gigs := newGigServiceFixture()
	gigs.gigs["g-1"] = &models.Gig{ID: "g-1", Title: "t", OwnerID: "u-owner", Status: models.OpenGig}

	gig, err := service.GetGig(context.Background(), "g-1")

	require.NoError(t, err)
	assert.Equal(t, "g-1", gig.ID)
}
