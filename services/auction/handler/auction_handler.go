package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"auction-market/internal/auction"
	model "auction-market/internal/models"
	"auction-market/services/auction/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(in auction.CreateAuctionInput, owner model.Identity) (model.Auction, bool, error)
	GetAuction(auctionID string) (model.Auction, bool, error)
	UpdateAuction(auctionID string, in auction.UpdateAuctionInput, requester model.Identity) (model.Auction, bool, error)
	DeleteAuction(auctionID string, requester model.Identity) error
	SearchAuctions(f model.AuctionFilter) ([]auction.AuctionListing, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "CreateAuctionHandler")
	if !ok {
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, isOpen, err := h.service.CreateAuction(auction.CreateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Stock:       req.Stock,
		ClosedAt:    req.ClosedAt,
	}, identity)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler": "CreateAuctionHandler",
			"user_id": identity.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AuctionToResponse(created, isOpen), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"owner_id":   created.OwnerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, isOpen, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(a, isOpen), "auction retrieved successfully")
}

// UpdateAuctionHandler handles PUT /auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "UpdateAuctionHandler")
	if !ok {
		return
	}

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	updated, isOpen, err := h.service.UpdateAuction(auctionID, auction.UpdateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		ClosedAt:    req.ClosedAt,
	}, identity)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateAuctionHandler: failed to update auction", map[string]any{
			"auction_id": auctionID,
			"user_id":    identity.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(updated, isOpen), "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": updated.AuctionID,
		"user_id":    identity.UserID,
	})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "DeleteAuctionHandler")
	if !ok {
		return
	}

	auctionID := c.Param("auction_id")
	if err := h.service.DeleteAuction(auctionID, identity); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteAuctionHandler: failed to delete auction", map[string]any{
			"auction_id": auctionID,
			"user_id":    identity.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    identity.UserID,
	})
}

// SearchAuctionsHandler handles GET /auctions and GET /auctions/search
func (h *AuctionHandler) SearchAuctionsHandler(c *gin.Context) {
	filter := model.AuctionFilter{
		Text:       c.Query("text"),
		CategoryID: c.Query("category"),
	}
	if v := c.Query("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			helpers.HandleBindError(c, "SearchAuctionsHandler", fmt.Errorf("price_min: %w", err))
			return
		}
		filter.PriceMin = &min
	}
	if v := c.Query("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			helpers.HandleBindError(c, "SearchAuctionsHandler", fmt.Errorf("price_max: %w", err))
			return
		}
		filter.PriceMax = &max
	}

	listings, err := h.service.SearchAuctions(filter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SearchAuctionsHandler: error searching auctions", map[string]any{"error": err.Error()})
		return
	}

	results := make([]helpers.AuctionResponse, 0, len(listings))
	for _, l := range listings {
		results = append(results, helpers.AuctionToResponse(l.Auction, l.IsOpen))
	}

	utils.JSONResponse(c, http.StatusOK, results, "auctions retrieved successfully")
	helpers.LogSuccess("SearchAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(results),
	})
}
