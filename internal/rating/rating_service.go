package rating

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"
	"fmt"
)

// RatingService enforces at-most-one rating per (auction, user). A repeat
// submission overwrites the earlier value in place instead of being
// rejected, so submitting the same rating twice is idempotent.
type RatingService struct {
	repo repository.AuctionDB
}

// NewRatingService creates a new RatingService instance
func NewRatingService(repo repository.AuctionDB) *RatingService {
	return &RatingService{repo: repo}
}

// SubmitRating upserts the caller's rating for an auction. The value range
// is checked before any lookup.
func (s *RatingService) SubmitRating(auctionID, userID string, value int) (model.Rating, error) {
	if value < 1 || value > 5 {
		return model.Rating{}, fmt.Errorf("service: %w - got %d", auctionerrors.ErrValueOutOfRange, value)
	}
	if auctionID == "" || userID == "" {
		return model.Rating{}, fmt.Errorf("service: %w - missing auction or user ID", auctionerrors.ErrInvalidInput)
	}

	rating := model.Rating{
		RatingID:  utils.GenerateID(),
		AuctionID: auctionID,
		UserID:    userID,
		Value:     value,
	}

	// The repository keeps the existing RatingID when a live rating for the
	// (auction, user) key already exists.
	stored, err := s.repo.UpsertRating(rating)
	if err != nil {
		return model.Rating{}, fmt.Errorf("service: failed to submit rating for auction %s by user %s: %w", auctionID, userID, err)
	}
	return stored, nil
}

// DeleteRating removes a rating. Only the rating's owning user may delete
// it; there is no admin override, unlike auction mutation.
func (s *RatingService) DeleteRating(ratingID string, requester model.Identity) error {
	if ratingID == "" {
		return fmt.Errorf("service: %w - empty rating ID", auctionerrors.ErrInvalidInput)
	}

	rating, err := s.repo.GetRating(ratingID)
	if err != nil {
		return fmt.Errorf("service: delete rating: %w", err)
	}
	if rating.UserID != requester.UserID {
		return fmt.Errorf("service: %w - rating %s belongs to another user", auctionerrors.ErrNotOwner, ratingID)
	}

	if err := s.repo.DeleteRating(ratingID); err != nil {
		return fmt.Errorf("service: failed to delete rating %s: %w", ratingID, err)
	}
	return nil
}
