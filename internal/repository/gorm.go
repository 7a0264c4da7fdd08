package repository

import (
	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepo is the persistent AuctionDB backed by GORM over SQLite.
type GormRepo struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and migrates
// the schema.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&model.Category{}, &model.Auction{}, &model.Bid{}, &model.Rating{}); err != nil {
		return nil, fmt.Errorf("repository: migrate schema: %w", err)
	}
	return db, nil
}

// NewGormRepo wraps an open gorm handle as an AuctionDB.
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) CreateAuction(a model.Auction) error {
	if err := r.db.Create(&a).Error; err != nil {
		return fmt.Errorf("repository: create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

func (r *GormRepo) GetAuction(auctionID string) (model.Auction, error) {
	var a model.Auction
	err := r.db.First(&a, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Auction{}, fmt.Errorf("repository: get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("repository: get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// UpdateAuction writes the mutable columns only. Price and rating belong to
// the bid and rating paths; touching them here would let an auction update
// clobber a concurrent admission or aggregate recompute.
func (r *GormRepo) UpdateAuction(a model.Auction) (model.Auction, error) {
	res := r.db.Model(&model.Auction{}).Where("auction_id = ?", a.AuctionID).
		Select("title", "description", "thumbnail", "brand", "category_id", "stock", "closed_at").
		Updates(a)
	if res.Error != nil {
		return model.Auction{}, fmt.Errorf("repository: update auction %s: %w", a.AuctionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Auction{}, fmt.Errorf("repository: update auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	return r.GetAuction(a.AuctionID)
}

func (r *GormRepo) DeleteAuction(auctionID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Auction{}, "auction_id = ?", auctionID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return auctionerrors.ErrAuctionNotFound
		}
		if err := tx.Delete(&model.Bid{}, "auction_id = ?", auctionID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Rating{}, "auction_id = ?", auctionID).Error
	})
	if err != nil {
		return fmt.Errorf("repository: delete auction %s: %w", auctionID, err)
	}
	return nil
}

func (r *GormRepo) SearchAuctions(f model.AuctionFilter) ([]model.Auction, error) {
	q := r.db.Model(&model.Auction{})
	if f.Text != "" {
		like := "%" + f.Text + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	var auctions []model.Auction
	if err := q.Order("created_at DESC").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("repository: search auctions: %w", err)
	}
	return auctions, nil
}

func (r *GormRepo) RecordBid(bid model.Bid, auctionPrice float64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Auction{}).Where("auction_id = ?", bid.AuctionID).
			Update("price", auctionPrice)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return auctionerrors.ErrAuctionNotFound
		}
		return tx.Create(&bid).Error
	})
	if err != nil {
		return fmt.Errorf("repository: record bid for auction %s: %w", bid.AuctionID, err)
	}
	return nil
}

func (r *GormRepo) UpdateBid(bid model.Bid, auctionPrice float64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var stored model.Bid
		if err := tx.First(&stored, "bid_id = ?", bid.BidID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrBidNotFound
			}
			return err
		}
		if stored.AuctionID != bid.AuctionID {
			return auctionerrors.ErrImmutableAssociation
		}
		if err := tx.Model(&model.Bid{}).Where("bid_id = ?", bid.BidID).
			Update("price", bid.Price).Error; err != nil {
			return err
		}
		return tx.Model(&model.Auction{}).Where("auction_id = ?", bid.AuctionID).
			Update("price", auctionPrice).Error
	})
	if err != nil {
		return fmt.Errorf("repository: update bid %s: %w", bid.BidID, err)
	}
	return nil
}

func (r *GormRepo) GetBid(bidID string) (model.Bid, error) {
	var b model.Bid
	err := r.db.First(&b, "bid_id = ?", bidID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, fmt.Errorf("repository: get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("repository: get bid %s: %w", bidID, err)
	}
	return b, nil
}

func (r *GormRepo) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.Where("auction_id = ?", auctionID).
		Order("price DESC, created_at DESC").Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("repository: get bids for auction %s: %w", auctionID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("repository: get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

func (r *GormRepo) GetWinningBid(auctionID string) (model.Bid, error) {
	bids, err := r.GetBidsByAuction(auctionID)
	if err != nil {
		return model.Bid{}, err
	}
	return bids[0], nil
}

func (r *GormRepo) UpsertRating(rating model.Rating) (model.Rating, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.Auction{}).Where("auction_id = ?", rating.AuctionID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return auctionerrors.ErrAuctionNotFound
		}

		var stored model.Rating
		err := tx.First(&stored, "auction_id = ? AND user_id = ?", rating.AuctionID, rating.UserID).Error
		switch {
		case err == nil:
			stored.Value = rating.Value
			if err := tx.Model(&model.Rating{}).Where("rating_id = ?", stored.RatingID).
				Update("value", stored.Value).Error; err != nil {
				return err
			}
			rating = stored
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return writeRatingAggregate(tx, rating.AuctionID)
	})
	if err != nil {
		return model.Rating{}, fmt.Errorf("repository: upsert rating for auction %s: %w", rating.AuctionID, err)
	}
	return rating, nil
}

func (r *GormRepo) GetRating(ratingID string) (model.Rating, error) {
	var rt model.Rating
	err := r.db.First(&rt, "rating_id = ?", ratingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Rating{}, fmt.Errorf("repository: get rating %s: %w", ratingID, auctionerrors.ErrRatingNotFound)
	}
	if err != nil {
		return model.Rating{}, fmt.Errorf("repository: get rating %s: %w", ratingID, err)
	}
	return rt, nil
}

func (r *GormRepo) DeleteRating(ratingID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var stored model.Rating
		if err := tx.First(&stored, "rating_id = ?", ratingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrRatingNotFound
			}
			return err
		}
		if err := tx.Delete(&model.Rating{}, "rating_id = ?", ratingID).Error; err != nil {
			return err
		}
		return writeRatingAggregate(tx, stored.AuctionID)
	})
	if err != nil {
		return fmt.Errorf("repository: delete rating %s: %w", ratingID, err)
	}
	return nil
}

// writeRatingAggregate recomputes the mean rating for an auction and stores
// it, clearing the aggregate when no live ratings remain.
func writeRatingAggregate(tx *gorm.DB, auctionID string) error {
	var avg *float64
	err := tx.Model(&model.Rating{}).Where("auction_id = ?", auctionID).
		Select("AVG(value)").Scan(&avg).Error
	if err != nil {
		return err
	}
	return tx.Model(&model.Auction{}).Where("auction_id = ?", auctionID).
		Update("rating", avg).Error
}
