package router

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/senyabanana/gig-service/internal/handlers"

	"github.com/stretchr/testify/require"
)

func TestInitRoutesRegistersAllPatterns(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	require.NotPanics(t, func() {
		InitRoutes(
			handlers.NewGigHandler(nil, logger, time.Second),
			handlers.NewBidHandler(nil, logger, time.Second),
			handlers.NewWSHandler(nil, nil, logger, time.Second),
		)
	})
}
