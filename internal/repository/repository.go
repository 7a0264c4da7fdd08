package repository

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// AuctionDB defines the storage interface for the marketplace. Writes that
// touch more than one row (bid plus auction price, cascade deletes, rating
// upsert plus aggregate) are single calls so the domain layer never leaves
// a partial write behind.
type AuctionDB interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	// UpdateAuction overwrites an auction's mutable fields and returns the
	// stored record after the merge. Price and the rating aggregate are
	// never written here; they move only through bid and rating writes, so
	// an auction update can never revert a concurrently admitted bid.
	UpdateAuction(a model.Auction) (model.Auction, error)
	DeleteAuction(auctionID string) error
	SearchAuctions(f model.AuctionFilter) ([]model.Auction, error)

	// RecordBid persists a new bid and writes the auction's displayed price
	// in the same operation.
	RecordBid(bid model.Bid, auctionPrice float64) error
	// UpdateBid overwrites an existing bid's price and writes the auction's
	// displayed price in the same operation.
	UpdateBid(bid model.Bid, auctionPrice float64) error
	GetBid(bidID string) (model.Bid, error)
	GetBidsByAuction(auctionID string) ([]model.Bid, error)
	GetWinningBid(auctionID string) (model.Bid, error)

	// UpsertRating inserts the rating, or overwrites the value of the live
	// rating with the same (auction, user) key, and recomputes the auction's
	// rating aggregate. The returned record carries the surviving RatingID.
	UpsertRating(r model.Rating) (model.Rating, error)
	GetRating(ratingID string) (model.Rating, error)
	DeleteRating(ratingID string) error
}

type ratingKey struct {
	auctionID string
	userID    string
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction
	bids     map[string][]model.Bid      // key: auctionID -> bids in insertion order
	bidOwner map[string]string           // key: bidID -> auctionID
	ratings  map[ratingKey]model.Rating  // key: (auctionID, userID) -> live rating
	ratingIx map[string]ratingKey        // key: ratingID -> its natural key
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
		bidOwner: make(map[string]string),
		ratings:  make(map[ratingKey]model.Rating),
		ratingIx: make(map[string]ratingKey),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w - id already exists", a.AuctionID, auctionerrors.ErrInvalidInput)
	}
	r.auctions[a.AuctionID] = a
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// UpdateAuction merges the mutable fields into the stored auction. Price,
// rating, owner and creation instant stay as stored.
func (r *MemoryRepo) UpdateAuction(a model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[a.AuctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	stored.Title = a.Title
	stored.Description = a.Description
	stored.Thumbnail = a.Thumbnail
	stored.Brand = a.Brand
	stored.CategoryID = a.CategoryID
	stored.Stock = a.Stock
	stored.ClosedAt = a.ClosedAt
	r.auctions[a.AuctionID] = stored
	return stored, nil
}

// DeleteAuction removes an auction and cascades to its bids and ratings
func (r *MemoryRepo) DeleteAuction(auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	delete(r.auctions, auctionID)

	for _, b := range r.bids[auctionID] {
		delete(r.bidOwner, b.BidID)
	}
	delete(r.bids, auctionID)

	for key, rt := range r.ratings {
		if key.auctionID == auctionID {
			delete(r.ratings, key)
			delete(r.ratingIx, rt.RatingID)
		}
	}
	return nil
}

// SearchAuctions returns auctions matching every set filter criterion
func (r *MemoryRepo) SearchAuctions(f model.AuctionFilter) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(f.Text)
	matches := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if text != "" &&
			!strings.Contains(strings.ToLower(a.Title), text) &&
			!strings.Contains(strings.ToLower(a.Description), text) {
			continue
		}
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		if f.PriceMin != nil && a.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && a.Price > *f.PriceMax {
			continue
		}
		matches = append(matches, a)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// RecordBid records an admitted bid and the auction's new displayed price
func (r *MemoryRepo) RecordBid(bid model.Bid, auctionPrice float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}

	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	r.bidOwner[bid.BidID] = bid.AuctionID

	a.Price = auctionPrice
	r.auctions[a.AuctionID] = a
	return nil
}

// UpdateBid overwrites an admitted bid and the auction's new displayed price
func (r *MemoryRepo) UpdateBid(bid model.Bid, auctionPrice float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auctionID, ok := r.bidOwner[bid.BidID]
	if !ok {
		return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrBidNotFound)
	}
	if auctionID != bid.AuctionID {
		return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrImmutableAssociation)
	}

	bids := r.bids[auctionID]
	for i, b := range bids {
		if b.BidID == bid.BidID {
			bids[i] = bid
			break
		}
	}

	a := r.auctions[auctionID]
	a.Price = auctionPrice
	r.auctions[auctionID] = a
	return nil
}

// GetBid returns a bid by id
func (r *MemoryRepo) GetBid(bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctionID, ok := r.bidOwner[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	for _, b := range r.bids[auctionID] {
		if b.BidID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

// GetBidsByAuction returns all bids for an auction, best price first,
// most recent first on equal price
func (r *MemoryRepo) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[auctionID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	sorted := append([]model.Bid(nil), bids...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Price != sorted[j].Price {
			return sorted[i].Price > sorted[j].Price
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted, nil
}

// GetWinningBid returns the highest bid for an auction
func (r *MemoryRepo) GetWinningBid(auctionID string) (model.Bid, error) {
	bids, err := r.GetBidsByAuction(auctionID)
	if err != nil {
		return model.Bid{}, err
	}
	return bids[0], nil
}

// UpsertRating inserts or overwrites the live rating for (auction, user)
// and recomputes the auction's rating aggregate
func (r *MemoryRepo) UpsertRating(rating model.Rating) (model.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[rating.AuctionID]
	if !ok {
		return model.Rating{}, fmt.Errorf("upsert rating for auction %s: %w", rating.AuctionID, auctionerrors.ErrAuctionNotFound)
	}

	key := ratingKey{auctionID: rating.AuctionID, userID: rating.UserID}
	if existing, ok := r.ratings[key]; ok {
		existing.Value = rating.Value
		r.ratings[key] = existing
		rating = existing
	} else {
		r.ratings[key] = rating
		r.ratingIx[rating.RatingID] = key
	}

	a.Rating = r.ratingAggregateLocked(rating.AuctionID)
	r.auctions[a.AuctionID] = a
	return rating, nil
}

// GetRating returns a rating by id
func (r *MemoryRepo) GetRating(ratingID string) (model.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.ratingIx[ratingID]
	if !ok {
		return model.Rating{}, fmt.Errorf("get rating %s: %w", ratingID, auctionerrors.ErrRatingNotFound)
	}
	return r.ratings[key], nil
}

// DeleteRating removes a rating and recomputes the auction's aggregate
func (r *MemoryRepo) DeleteRating(ratingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.ratingIx[ratingID]
	if !ok {
		return fmt.Errorf("delete rating %s: %w", ratingID, auctionerrors.ErrRatingNotFound)
	}
	delete(r.ratings, key)
	delete(r.ratingIx, ratingID)

	if a, ok := r.auctions[key.auctionID]; ok {
		a.Rating = r.ratingAggregateLocked(key.auctionID)
		r.auctions[a.AuctionID] = a
	}
	return nil
}

// ratingAggregateLocked computes the mean of live ratings for an auction.
// Caller must hold the write lock.
func (r *MemoryRepo) ratingAggregateLocked(auctionID string) *float64 {
	var sum, n int
	for key, rt := range r.ratings {
		if key.auctionID == auctionID {
			sum += rt.Value
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}
