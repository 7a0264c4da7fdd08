package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
	Brand       string     `json:"brand"`
	CategoryID  string     `json:"category_id"`
	Price       float64    `json:"price" binding:"gte=0"`
	Stock       int        `json:"stock" binding:"required,gte=1"`
	ClosedAt    *time.Time `json:"closed_at"`
}

type UpdateAuctionRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
	Brand       string     `json:"brand"`
	CategoryID  string     `json:"category_id"`
	Stock       int        `json:"stock" binding:"required,gte=1"`
	ClosedAt    *time.Time `json:"closed_at"`
}

type AuctionResponse struct {
	AuctionID   string   `json:"auction_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Brand       string   `json:"brand"`
	CategoryID  string   `json:"category_id"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Rating      *float64 `json:"rating,omitempty"`
	OwnerID     string   `json:"owner_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
	ClosedAt    string   `json:"closed_at,omitempty"`
	IsOpen      bool     `json:"is_open"`
}

type PlaceBidRequest struct {
	Price  float64 `json:"price" binding:"required,gt=0"`
	Bidder string  `json:"bidder"`
}

type UpdateBidRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID        string  `json:"bid_id"`
	AuctionID    string  `json:"auction_id"`
	Price        float64 `json:"price"`
	Bidder       string  `json:"bidder,omitempty"`
	CreatedAt    string  `json:"created_at"`
	AuctionPrice float64 `json:"auction_price"`
}

type SubmitRatingRequest struct {
	Value int `json:"value" binding:"required"`
}

type RatingResponse struct {
	RatingID  string `json:"rating_id"`
	AuctionID string `json:"auction_id"`
	UserID    string `json:"user_id"`
	Value     int    `json:"value"`
}
