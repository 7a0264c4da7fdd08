package handler

import (
	"fmt"
	"net/http"
	"testing"

	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"auction-market/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Test SubmitRatingHandler
func TestSubmitRatingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockRatingServiceInterface(ctrl)
	handler := NewRatingHandler(mockService)

	gin.SetMode(gin.TestMode)

	newRouter := func(id model.Identity) *gin.Engine {
		router := gin.New()
		router.Use(identityInjector(id))
		router.POST("/auctions/:auction_id/ratings", handler.SubmitRatingHandler)
		return router
	}

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			SubmitRating("auction1", "userA", 4).
			Return(model.Rating{RatingID: "rating1", AuctionID: "auction1", UserID: "userA", Value: 4}, nil)

		router := newRouter(model.Identity{UserID: "userA"})
		w := performJSON(t, router, http.MethodPost, "/auctions/auction1/ratings", helpers.SubmitRatingRequest{Value: 4})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("value_out_of_range", func(t *testing.T) {
		mockService.EXPECT().
			SubmitRating("auction1", "userA", 9).
			Return(model.Rating{}, fmt.Errorf("service: %w", auctionerrors.ErrValueOutOfRange))

		router := newRouter(model.Identity{UserID: "userA"})
		w := performJSON(t, router, http.MethodPost, "/auctions/auction1/ratings", helpers.SubmitRatingRequest{Value: 9})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		router := newRouter(model.Identity{})
		w := performJSON(t, router, http.MethodPost, "/auctions/auction1/ratings", helpers.SubmitRatingRequest{Value: 4})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Test DeleteRatingHandler
func TestDeleteRatingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockRatingServiceInterface(ctrl)
	handler := NewRatingHandler(mockService)

	gin.SetMode(gin.TestMode)

	newRouter := func(id model.Identity) *gin.Engine {
		router := gin.New()
		router.Use(identityInjector(id))
		router.DELETE("/ratings/:rating_id", handler.DeleteRatingHandler)
		return router
	}

	t.Run("owner_deletes", func(t *testing.T) {
		mockService.EXPECT().
			DeleteRating("rating1", model.Identity{UserID: "userA"}).
			Return(nil)

		router := newRouter(model.Identity{UserID: "userA"})
		w := performJSON(t, router, http.MethodDelete, "/ratings/rating1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		mockService.EXPECT().
			DeleteRating("rating1", model.Identity{UserID: "userB"}).
			Return(fmt.Errorf("service: %w", auctionerrors.ErrNotOwner))

		router := newRouter(model.Identity{UserID: "userB"})
		w := performJSON(t, router, http.MethodDelete, "/ratings/rating1", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing_rating", func(t *testing.T) {
		mockService.EXPECT().
			DeleteRating("ratingX", model.Identity{UserID: "userA"}).
			Return(fmt.Errorf("service: %w", auctionerrors.ErrRatingNotFound))

		router := newRouter(model.Identity{UserID: "userA"})
		w := performJSON(t, router, http.MethodDelete, "/ratings/ratingX", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
