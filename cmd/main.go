package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/gig-service/internal/db"
	"github.com/senyabanana/gig-service/internal/handlers"
	"github.com/senyabanana/gig-service/internal/notify"
	"github.com/senyabanana/gig-service/internal/repository"
	"github.com/senyabanana/gig-service/internal/router"
	"github.com/senyabanana/gig-service/internal/router/config"
	"github.com/senyabanana/gig-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dsn, err := db.ConnString(cfg)
	if err != nil {
		log.Fatalf("invalid database configuration: %v", err)
	}
	runDBMigration(cfg.MigrationURL, dsn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	gigRepo := repository.NewPostgresGigRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)

	hub := notify.NewHub(logger, 5*time.Second)

	gigService := services.NewGigService(gigRepo, userRepo)
	bidService := services.NewBidService(bidRepo, gigRepo, userRepo, hub)

	gigHandler := handlers.NewGigHandler(gigService, logger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)
	wsHandler := handlers.NewWSHandler(hub, userRepo, logger, 5*time.Second)

	routes := router.InitRoutes(gigHandler, bidHandler, wsHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
