package auction

import (
	"auction-market/internal/auctionerrors"
	"auction-market/internal/lifecycle"
	model "auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"
	"fmt"
	"time"
)

// CreateAuctionInput carries the writable fields of a new auction.
type CreateAuctionInput struct {
	Title       string
	Description string
	Thumbnail   string
	Brand       string
	CategoryID  string
	Price       float64
	Stock       int
	ClosedAt    *time.Time
}

// UpdateAuctionInput carries the mutable fields of an existing auction.
// Price is absent on purpose: the displayed price moves only through bid
// admission. CreatedAt is immutable.
type UpdateAuctionInput struct {
	Title       string
	Description string
	Thumbnail   string
	Brand       string
	CategoryID  string
	Stock       int
	ClosedAt    *time.Time
}

// AuctionService owns the auction aggregate's lifecycle: creation with the
// closing-date rule, owner-or-admin mutation, cascade deletion and search.
type AuctionService struct {
	repo  repository.AuctionDB
	clock lifecycle.Clock
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, clock lifecycle.Clock) *AuctionService {
	return &AuctionService{repo: repo, clock: clock}
}

// CreateAuction lists a new auction owned by the caller and reports whether
// it is open. An empty caller ID creates an ownerless auction, which only
// admins can later mutate.
func (s *AuctionService) CreateAuction(in CreateAuctionInput, owner model.Identity) (model.Auction, bool, error) {
	if in.Title == "" {
		return model.Auction{}, false, fmt.Errorf("service: %w - missing title", auctionerrors.ErrInvalidInput)
	}
	if in.Price < 0 {
		return model.Auction{}, false, fmt.Errorf("service: %w - negative starting price", auctionerrors.ErrInvalidInput)
	}
	if in.Stock < 1 {
		return model.Auction{}, false, fmt.Errorf("service: %w - stock must be at least 1", auctionerrors.ErrInvalidInput)
	}

	now := s.clock.Now()
	if err := lifecycle.ValidateClosingDate(now, in.ClosedAt); err != nil {
		return model.Auction{}, false, fmt.Errorf("service: create auction: %w", err)
	}

	a := model.Auction{
		AuctionID:   utils.GenerateID(),
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		Brand:       in.Brand,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Stock:       in.Stock,
		OwnerID:     owner.UserID,
		CreatedAt:   now,
		ClosedAt:    in.ClosedAt,
	}

	if err := s.repo.CreateAuction(a); err != nil {
		return model.Auction{}, false, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return a, lifecycle.IsOpen(a, now), nil
}

// GetAuction returns an auction and whether it is open right now.
func (s *AuctionService) GetAuction(auctionID string) (model.Auction, bool, error) {
	if auctionID == "" {
		return model.Auction{}, false, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("service: get auction: %w", err)
	}
	return a, lifecycle.IsOpen(a, s.clock.Now()), nil
}

// UpdateAuction applies the mutable fields and reports whether the auction is
// open after the change. A changed closing date is re-validated against the
// auction's original creation instant, never the update instant. Price and
// the rating aggregate are owned by the bid and rating paths; the repository
// leaves them untouched, and the returned auction carries their stored values.
func (s *AuctionService) UpdateAuction(auctionID string, in UpdateAuctionInput, requester model.Identity) (model.Auction, bool, error) {
	if auctionID == "" {
		return model.Auction{}, false, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if in.Title == "" {
		return model.Auction{}, false, fmt.Errorf("service: %w - missing title", auctionerrors.ErrInvalidInput)
	}
	if in.Stock < 1 {
		return model.Auction{}, false, fmt.Errorf("service: %w - stock must be at least 1", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("service: update auction: %w", err)
	}
	if err := requireOwnerOrAdmin(a, requester); err != nil {
		return model.Auction{}, false, err
	}
	if err := lifecycle.ValidateClosingDate(a.CreatedAt, in.ClosedAt); err != nil {
		return model.Auction{}, false, fmt.Errorf("service: update auction: %w", err)
	}

	a.Title = in.Title
	a.Description = in.Description
	a.Thumbnail = in.Thumbnail
	a.Brand = in.Brand
	a.CategoryID = in.CategoryID
	a.Stock = in.Stock
	a.ClosedAt = in.ClosedAt

	stored, err := s.repo.UpdateAuction(a)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}
	return stored, lifecycle.IsOpen(stored, s.clock.Now()), nil
}

// DeleteAuction removes an auction and everything hanging off it.
func (s *AuctionService) DeleteAuction(auctionID string, requester model.Identity) error {
	if auctionID == "" {
		return fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: delete auction: %w", err)
	}
	if err := requireOwnerOrAdmin(a, requester); err != nil {
		return err
	}

	if err := s.repo.DeleteAuction(auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
	}
	return nil
}

// AuctionListing pairs an auction with its openness at lookup time.
type AuctionListing struct {
	Auction model.Auction
	IsOpen  bool
}

// SearchAuctions returns auctions matching the filter, newest first, each
// with its openness computed at a single instant.
func (s *AuctionService) SearchAuctions(f model.AuctionFilter) ([]AuctionListing, error) {
	auctions, err := s.repo.SearchAuctions(f)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search auctions: %w", err)
	}

	now := s.clock.Now()
	listings := make([]AuctionListing, 0, len(auctions))
	for _, a := range auctions {
		listings = append(listings, AuctionListing{Auction: a, IsOpen: lifecycle.IsOpen(a, now)})
	}
	return listings, nil
}

// requireOwnerOrAdmin is the auction mutation rule: the owner or any admin.
// An ownerless auction has no owner to match, so only admins pass.
func requireOwnerOrAdmin(a model.Auction, requester model.Identity) error {
	if requester.IsAdmin {
		return nil
	}
	if a.OwnerID != "" && a.OwnerID == requester.UserID {
		return nil
	}
	return fmt.Errorf("service: %w - auction %s", auctionerrors.ErrNotOwner, a.AuctionID)
}
