package server

import (
	handler "auction-market/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	auctionService handler.AuctionServiceInterface,
	biddingService handler.BiddingServiceInterface,
	ratingService handler.RatingServiceInterface,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware)      // gateway-authenticated caller identity

	auctionHandler := handler.NewAuctionHandler(auctionService)
	biddingHandler := handler.NewBiddingHandler(biddingService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.SearchAuctionsHandler)
		auctions.GET("/search", auctionHandler.SearchAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)

		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)
		auctions.PUT("/:auction_id/bids/:bid_id", biddingHandler.UpdateBidHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", biddingHandler.GetWinningBidHandler)

		auctions.POST("/:auction_id/ratings", ratingHandler.SubmitRatingHandler)
	}

	ratings := router.Group("/ratings")
	{
		ratings.DELETE("/:rating_id", ratingHandler.DeleteRatingHandler)
	}

	return router
}
