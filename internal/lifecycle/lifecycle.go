package lifecycle

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"fmt"
	"time"
)

// Clock supplies the current instant. Injected so lifecycle decisions are
// testable without real time passing.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// MinAuctionDuration is the minimum gap between an auction's creation and
// its closing deadline.
const MinAuctionDuration = 15 * 24 * time.Hour

// IsOpen reports whether the auction accepts bids at the given instant.
// An auction with no closing date never closes. Openness is computed on
// every call and never persisted.
func IsOpen(a model.Auction, now time.Time) bool {
	if a.ClosedAt == nil {
		return true
	}
	return now.Before(*a.ClosedAt)
}

// ValidateClosingDate checks a proposed closing deadline against the
// auction's creation instant. A nil deadline is valid and means the auction
// never closes. A set deadline must fall strictly after createdAt plus the
// minimum duration. Update paths must pass the auction's original creation
// instant, never the update instant.
func ValidateClosingDate(createdAt time.Time, closedAt *time.Time) error {
	if closedAt == nil {
		return nil
	}
	if !closedAt.After(createdAt) {
		return fmt.Errorf("lifecycle: %w - closing date %s is not after creation %s",
			auctionerrors.ErrInvalidClosingDate, closedAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
	}
	if !closedAt.After(createdAt.Add(MinAuctionDuration)) {
		return fmt.Errorf("lifecycle: %w - closing date %s is less than 15 days after creation %s",
			auctionerrors.ErrInvalidClosingDate, closedAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
	}
	return nil
}
