package handler

import (
	"fmt"
	"net/http"

	model "auction-market/internal/models"
	"auction-market/services/auction/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

type RatingServiceInterface interface {
	SubmitRating(auctionID, userID string, value int) (model.Rating, error)
	DeleteRating(ratingID string, requester model.Identity) error
}

type RatingHandler struct {
	service RatingServiceInterface
}

func NewRatingHandler(service RatingServiceInterface) *RatingHandler {
	return &RatingHandler{service: service}
}

// SubmitRatingHandler handles POST /auctions/:auction_id/ratings
func (h *RatingHandler) SubmitRatingHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "SubmitRatingHandler")
	if !ok {
		return
	}

	var req helpers.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitRatingHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	rating, err := h.service.SubmitRating(auctionID, identity.UserID, req.Value)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SubmitRatingHandler: failed to submit rating", map[string]any{
			"auction_id": auctionID,
			"user_id":    identity.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.RatingResponse{
		RatingID:  rating.RatingID,
		AuctionID: rating.AuctionID,
		UserID:    rating.UserID,
		Value:     rating.Value,
	}, "rating submitted successfully")
	helpers.LogSuccess("SubmitRatingHandler", "rating submitted successfully", map[string]any{
		"rating_id":  rating.RatingID,
		"auction_id": rating.AuctionID,
		"user_id":    rating.UserID,
		"value":      rating.Value,
	})
}

// DeleteRatingHandler handles DELETE /ratings/:rating_id
func (h *RatingHandler) DeleteRatingHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "DeleteRatingHandler")
	if !ok {
		return
	}

	ratingID := c.Param("rating_id")
	if err := h.service.DeleteRating(ratingID, identity); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteRatingHandler: failed to delete rating", map[string]any{
			"rating_id": ratingID,
			"user_id":   identity.UserID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "rating deleted successfully")
	helpers.LogSuccess("DeleteRatingHandler", "rating deleted successfully", map[string]any{
		"rating_id": ratingID,
		"user_id":   identity.UserID,
	})
}
