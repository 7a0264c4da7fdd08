package bidding

import (
	"auction-market/internal/auctionerrors"
	"auction-market/internal/lifecycle"
	"auction-market/internal/locker"
	model "auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"
	"fmt"
)

// BiddingService is the bid ledger: it decides whether a candidate bid is
// admitted against an auction and keeps the auction's displayed price equal
// to the best admitted bid. The read-baseline/compare/write sequence runs
// under a per-auction lock so that admitted bid prices for one auction form
// a strictly increasing sequence, with no two admissions racing on the same
// baseline.
type BiddingService struct {
	repo  repository.AuctionDB
	locks *locker.KeyedMutex
	clock lifecycle.Clock
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, clock lifecycle.Clock) *BiddingService {
	return &BiddingService{
		repo:  repo,
		locks: locker.NewKeyedMutex(),
		clock: clock,
	}
}

// PlaceBid validates and records a new bid against an auction. On admission
// it returns the bid together with the auction's new displayed price.
func (s *BiddingService) PlaceBid(auctionID, bidder string, price float64) (model.Bid, float64, error) {
	if auctionID == "" {
		return model.Bid{}, 0, fmt.Errorf("service: %w - missing auction ID", auctionerrors.ErrInvalidInput)
	}
	if price < 0 {
		return model.Bid{}, 0, fmt.Errorf("service: %w - negative bid price", auctionerrors.ErrInvalidInput)
	}

	unlock := s.locks.Lock(auctionID)
	defer unlock()

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Bid{}, 0, fmt.Errorf("service: place bid: %w", err)
	}
	if !lifecycle.IsOpen(auction, s.clock.Now()) {
		return model.Bid{}, 0, fmt.Errorf("service: %w - auction %s no longer accepts bids", auctionerrors.ErrAuctionClosed, auctionID)
	}
	if price <= auction.Price {
		return model.Bid{}, 0, fmt.Errorf("service: %w - current price is %.2f", auctionerrors.ErrPriceNotIncreasing, auction.Price)
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		Price:     price,
		Bidder:    bidder,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.RecordBid(bid, price); err != nil {
		return model.Bid{}, 0, fmt.Errorf("service: failed to record bid for auction %s: %w", auctionID, err)
	}
	return bid, price, nil
}

// UpdateBid re-prices an existing bid. The baseline to beat is the bid's own
// previous price; the auction's displayed price rises only if the new price
// exceeds it. A bid can never move to a different auction.
func (s *BiddingService) UpdateBid(auctionID, bidID string, price float64) (model.Bid, float64, error) {
	if auctionID == "" || bidID == "" {
		return model.Bid{}, 0, fmt.Errorf("service: %w - missing auction or bid ID", auctionerrors.ErrInvalidInput)
	}
	if price < 0 {
		return model.Bid{}, 0, fmt.Errorf("service: %w - negative bid price", auctionerrors.ErrInvalidInput)
	}

	unlock := s.locks.Lock(auctionID)
	defer unlock()

	bid, err := s.repo.GetBid(bidID)
	if err != nil {
		return model.Bid{}, 0, fmt.Errorf("service: update bid: %w", err)
	}
	if bid.AuctionID != auctionID {
		return model.Bid{}, 0, fmt.Errorf("service: %w - bid %s belongs to auction %s", auctionerrors.ErrImmutableAssociation, bidID, bid.AuctionID)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Bid{}, 0, fmt.Errorf("service: update bid: %w", err)
	}
	if !lifecycle.IsOpen(auction, s.clock.Now()) {
		return model.Bid{}, 0, fmt.Errorf("service: %w - auction %s no longer accepts bids", auctionerrors.ErrAuctionClosed, auctionID)
	}
	if price <= bid.Price {
		return model.Bid{}, 0, fmt.Errorf("service: %w - previous bid price is %.2f", auctionerrors.ErrPriceNotIncreasing, bid.Price)
	}

	auctionPrice := auction.Price
	if price > auctionPrice {
		auctionPrice = price
	}

	bid.Price = price
	if err := s.repo.UpdateBid(bid, auctionPrice); err != nil {
		return model.Bid{}, 0, fmt.Errorf("service: failed to update bid %s: %w", bidID, err)
	}
	return bid, auctionPrice, nil
}

// GetBidsForAuction returns all bids for an auction, best first
func (s *BiddingService) GetBidsForAuction(auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.repo.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid for an auction
func (s *BiddingService) GetWinningBid(auctionID string) (model.Bid, error) {
	if auctionID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	winning, err := s.repo.GetWinningBid(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}
	return winning, nil
}
