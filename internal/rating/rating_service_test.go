package rating

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"auction-market/internal/repository"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Tests SubmitRating validation and passthrough
func TestRatingService_SubmitRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewRatingService(mockRepo)

	tests := []struct {
		name          string
		auctionID     string
		userID        string
		value         int
		mockSetup     func()
		expectedError error
	}{
		{
			name:      "valid_rating",
			auctionID: "auction1",
			userID:    "userA",
			value:     4,
			mockSetup: func() {
				mockRepo.EXPECT().UpsertRating(gomock.Any()).DoAndReturn(
					func(r model.Rating) (model.Rating, error) { return r, nil })
			},
			expectedError: nil,
		},
		// range violations short-circuit before any repository call
		{name: "value_zero", auctionID: "auction1", userID: "userA", value: 0, mockSetup: func() {}, expectedError: auctionerrors.ErrValueOutOfRange},
		{name: "value_six", auctionID: "auction1", userID: "userA", value: 6, mockSetup: func() {}, expectedError: auctionerrors.ErrValueOutOfRange},
		{name: "value_negative", auctionID: "auction1", userID: "userA", value: -1, mockSetup: func() {}, expectedError: auctionerrors.ErrValueOutOfRange},
		{name: "empty_auctionID", auctionID: "", userID: "userA", value: 3, mockSetup: func() {}, expectedError: auctionerrors.ErrInvalidInput},
		{name: "empty_userID", auctionID: "auction1", userID: "", value: 3, mockSetup: func() {}, expectedError: auctionerrors.ErrInvalidInput},
		{
			name:      "auction_missing",
			auctionID: "auctionX",
			userID:    "userA",
			value:     3,
			mockSetup: func() {
				mockRepo.EXPECT().UpsertRating(gomock.Any()).Return(model.Rating{}, auctionerrors.ErrAuctionNotFound)
			},
			expectedError: auctionerrors.ErrAuctionNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			rating, err := service.SubmitRating(tc.auctionID, tc.userID, tc.value)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, rating.RatingID)
			require.Equal(t, tc.auctionID, rating.AuctionID)
			require.Equal(t, tc.userID, rating.UserID)
			require.Equal(t, tc.value, rating.Value)
		})
	}
}

// Scenario: repeat submission by the same user updates the same record;
// another user's submission creates an independent one.
func TestRatingService_UpsertScenario(t *testing.T) {
	repo := repository.NewMemoryRepo()
	service := NewRatingService(repo)

	require.NoError(t, repo.CreateAuction(model.Auction{
		AuctionID: "auctionX", Title: "title", Price: 100, Stock: 1, CreatedAt: time.Now().UTC(),
	}))

	first, err := service.SubmitRating("auctionX", "userA", 4)
	require.NoError(t, err)
	require.Equal(t, 4, first.Value)

	second, err := service.SubmitRating("auctionX", "userA", 2)
	require.NoError(t, err)
	require.Equal(t, first.RatingID, second.RatingID, "repeat submission must update in place")
	require.Equal(t, 2, second.Value)

	third, err := service.SubmitRating("auctionX", "userB", 5)
	require.NoError(t, err)
	require.NotEqual(t, first.RatingID, third.RatingID)

	// idempotence: resubmitting the same value changes nothing observable
	again, err := service.SubmitRating("auctionX", "userA", 2)
	require.NoError(t, err)
	require.Equal(t, second, again)

	a, err := repo.GetAuction("auctionX")
	require.NoError(t, err)
	require.NotNil(t, a.Rating)
	require.Equal(t, 3.5, *a.Rating)
}

// Tests DeleteRating: owner only, explicitly no admin override
func TestRatingService_DeleteRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewRatingService(mockRepo)

	stored := model.Rating{RatingID: "rating1", AuctionID: "auction1", UserID: "userA", Value: 4}

	tests := []struct {
		name          string
		ratingID      string
		requester     model.Identity
		mockSetup     func()
		expectedError error
	}{
		{
			name:      "owner_deletes",
			ratingID:  "rating1",
			requester: model.Identity{UserID: "userA"},
			mockSetup: func() {
				mockRepo.EXPECT().GetRating("rating1").Return(stored, nil)
				mockRepo.EXPECT().DeleteRating("rating1").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "other_user_forbidden",
			ratingID:  "rating1",
			requester: model.Identity{UserID: "userB"},
			mockSetup: func() {
				mockRepo.EXPECT().GetRating("rating1").Return(stored, nil)
			},
			expectedError: auctionerrors.ErrNotOwner,
		},
		{
			name:      "admin_has_no_override",
			ratingID:  "rating1",
			requester: model.Identity{UserID: "admin", IsAdmin: true},
			mockSetup: func() {
				mockRepo.EXPECT().GetRating("rating1").Return(stored, nil)
			},
			expectedError: auctionerrors.ErrNotOwner,
		},
		{
			name:      "rating_missing",
			ratingID:  "ratingX",
			requester: model.Identity{UserID: "userA"},
			mockSetup: func() {
				mockRepo.EXPECT().GetRating("ratingX").Return(model.Rating{}, auctionerrors.ErrRatingNotFound)
			},
			expectedError: auctionerrors.ErrRatingNotFound,
		},
		{
			name:          "empty_ratingID",
			ratingID:      "",
			requester:     model.Identity{UserID: "userA"},
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			err := service.DeleteRating(tc.ratingID, tc.requester)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}
