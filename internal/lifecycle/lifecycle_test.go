package lifecycle

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

// Tests IsOpen
func TestIsOpen(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		closedAt *time.Time
		now      time.Time
		want     bool
	}{
		{name: "no_closing_date_is_always_open", closedAt: nil, now: now, want: true},
		{name: "no_closing_date_far_future_now", closedAt: nil, now: now.AddDate(100, 0, 0), want: true},
		{name: "closing_date_in_future", closedAt: timePtr(now.Add(time.Hour)), now: now, want: true},
		{name: "closing_date_one_second_ahead", closedAt: timePtr(now.Add(time.Second)), now: now, want: true},
		{name: "closing_date_exactly_now", closedAt: timePtr(now), now: now, want: false},
		{name: "closing_date_one_second_past", closedAt: timePtr(now.Add(-time.Second)), now: now, want: false},
		{name: "closing_date_long_past", closedAt: timePtr(now.AddDate(-1, 0, 0)), now: now, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := model.Auction{AuctionID: "auction1", ClosedAt: tc.closedAt}
			require.Equal(t, tc.want, IsOpen(a, tc.now))
		})
	}
}

// Tests ValidateClosingDate
func TestValidateClosingDate(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	minClose := createdAt.Add(MinAuctionDuration)

	tests := []struct {
		name      string
		closedAt  *time.Time
		wantError bool
	}{
		{name: "nil_never_closes", closedAt: nil, wantError: false},
		{name: "before_creation", closedAt: timePtr(createdAt.Add(-time.Hour)), wantError: true},
		{name: "equal_to_creation", closedAt: timePtr(createdAt), wantError: true},
		{name: "one_day_after_creation", closedAt: timePtr(createdAt.AddDate(0, 0, 1)), wantError: true},
		{name: "fourteen_days_after_creation", closedAt: timePtr(createdAt.AddDate(0, 0, 14)), wantError: true},
		{name: "exactly_fifteen_days", closedAt: timePtr(minClose), wantError: true},
		{name: "fifteen_days_plus_one_second", closedAt: timePtr(minClose.Add(time.Second)), wantError: false},
		{name: "one_month_after_creation", closedAt: timePtr(createdAt.AddDate(0, 1, 0)), wantError: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateClosingDate(createdAt, tc.closedAt)
			if tc.wantError {
				require.ErrorIs(t, err, auctionerrors.ErrInvalidClosingDate)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// ValidateClosingDate on update must be checked against the original
// creation instant, so a deadline that was valid at creation stays valid
// even when the update happens much later.
func TestValidateClosingDate_AgainstOriginalCreation(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	closedAt := timePtr(createdAt.AddDate(0, 0, 16))

	require.NoError(t, ValidateClosingDate(createdAt, closedAt))

	// The same deadline validated against a later instant (a buggy update
	// path would pass the update time) must fail.
	updateInstant := createdAt.AddDate(0, 0, 10)
	require.Error(t, ValidateClosingDate(updateInstant, closedAt))
}
