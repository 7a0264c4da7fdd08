package main

import (
	"auction-market/internal/auction"
	"auction-market/internal/bidding"
	"auction-market/internal/config"
	"auction-market/internal/lifecycle"
	model "auction-market/internal/models"
	"auction-market/internal/rating"
	"auction-market/internal/repository"
	"auction-market/internal/server"
	"auction-market/utils"
	"fmt"
	"os"
)

func main() {
	cfg := config.Load()

	repo, err := buildRepo(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open repository: %v\n", err)
		os.Exit(1)
	}

	clock := lifecycle.SystemClock{}
	auctionSvc := auction.NewAuctionService(repo, clock)
	biddingSvc := bidding.NewBiddingService(repo, clock)
	ratingSvc := rating.NewRatingService(repo)

	if cfg.SeedDemoData {
		seedDemoAuctions(auctionSvc)
	}

	router := server.SetupRouter(auctionSvc, biddingSvc, ratingSvc)

	fmt.Printf("Starting auction server on %s...\n", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildRepo selects SQLite persistence when DB_PATH is set, otherwise the
// in-memory store.
func buildRepo(cfg config.AppConfig) (repository.AuctionDB, error) {
	if cfg.DBPath == "" {
		return repository.NewMemoryRepo(), nil
	}
	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return repository.NewGormRepo(db), nil
}

// seedDemoAuctions lists a few open auctions for local development
func seedDemoAuctions(svc *auction.AuctionService) {
	demo := []auction.CreateAuctionInput{
		{Title: "Vintage camera", Description: "35mm rangefinder, serviced", Brand: "Leica", Price: 100, Stock: 1},
		{Title: "Mechanical keyboard", Description: "Tenkeyless, brown switches", Brand: "Keychron", Price: 40, Stock: 2},
		{Title: "Road bike", Description: "54cm frame, recent tune-up", Brand: "Bianchi", Price: 250, Stock: 1},
	}

	seeder := model.Identity{UserID: "seed-admin", IsAdmin: true}
	for _, in := range demo {
		if _, _, err := svc.CreateAuction(in, seeder); err != nil {
			utils.Warn("failed to seed demo auction", map[string]any{"title": in.Title, "error": err.Error()})
		}
	}
}
