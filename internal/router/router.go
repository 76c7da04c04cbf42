package router

import (
	"net/http"

	"github.com/senyabanana/gig-service/internal/handlers"
)

func InitRoutes(gigHandler *handlers.GigHandler, bidHandler *handlers.BidHandler, wsHandler *handlers.WSHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/gigs", gigHandler.GetGigs)
	mux.HandleFunc("POST /api/gigs/new", gigHandler.CreateGig)
	mux.HandleFunc("GET /api/gigs/my", gigHandler.GetUserGig)
	mux.HandleFunc("GET /api/gigs/{gigId}", gigHandler.GetGig)

	mux.HandleFunc("/api/bids/new", bidHandler.CreateBid)
	mux.HandleFunc("/api/bids/my", bidHandler.GetUserBid)
	mux.HandleFunc("GET /api/bids/{gigId}/list", bidHandler.GetGigBid)
	mux.HandleFunc("PATCH /api/bids/{bidId}/hire", bidHandler.HireBid)

	mux.HandleFunc("/ws", wsHandler.Serve)

	return mux
}
