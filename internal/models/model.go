package models

import "time"

// Identity is the already-authenticated caller identity handed in by the
// upstream gateway. The service trusts it; verification happens upstream.
type Identity struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Category is a taxonomy reference for auctions
type Category struct {
	CategoryID string `gorm:"primaryKey;size:36" json:"category_id"`
	Name       string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

// Auction represents a listed item accepting bids until its closing deadline.
// Price is the current displayed price: the highest admitted bid so far, or
// the listed starting price while no bid has been admitted. ClosedAt nil
// means the auction never closes. Whether an auction is open is never stored;
// it is derived from ClosedAt and the current time on every read.
type Auction struct {
	AuctionID   string     `gorm:"primaryKey;size:36" json:"auction_id"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Thumbnail   string     `gorm:"size:255" json:"thumbnail"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `gorm:"not null" json:"stock"`
	Rating      *float64   `json:"rating,omitempty"`
	Brand       string     `gorm:"size:100" json:"brand"`
	CategoryID  string     `gorm:"size:36;index" json:"category_id"`
	OwnerID     string     `gorm:"size:36;index" json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

func (Auction) TableName() string { return "auctions" }

// Bid represents a price offer against one auction. The auction association
// is fixed at creation; an update may change the price only.
type Bid struct {
	BidID     string    `gorm:"primaryKey;size:36" json:"bid_id"`
	AuctionID string    `gorm:"size:36;index;not null" json:"auction_id"`
	Price     float64   `gorm:"not null" json:"price"`
	Bidder    string    `gorm:"size:255" json:"bidder,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Bid) TableName() string { return "bids" }

// Rating is a 1-5 score by one user for one auction. At most one live row
// exists per (auction, user); a repeat submission overwrites the first.
type Rating struct {
	RatingID  string `gorm:"primaryKey;size:36" json:"rating_id"`
	AuctionID string `gorm:"size:36;uniqueIndex:idx_rating_auction_user" json:"auction_id"`
	UserID    string `gorm:"size:36;uniqueIndex:idx_rating_auction_user" json:"user_id"`
	Value     int    `gorm:"not null" json:"value"`
}

func (Rating) TableName() string { return "ratings" }

// AuctionFilter holds the optional search criteria for auction listings.
// Zero values mean "no constraint".
type AuctionFilter struct {
	Text       string
	CategoryID string
	PriceMin   *float64
	PriceMax   *float64
}
