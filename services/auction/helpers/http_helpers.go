package helpers

import (
	"fmt"
	"net/http"
	"time"

	"auction-market/internal/auctionerrors"
	model "auction-market/internal/models"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key the caller identity is stored under.
const IdentityKey = "identity"

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("%w - request payload: %v", auctionerrors.ErrInvalidInput, err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps a classified domain error to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch auctionerrors.KindOf(err) {
	case auctionerrors.KindNotFound:
		return http.StatusNotFound, "resource not found"
	case auctionerrors.KindConflict:
		return http.StatusConflict, "request conflicts with auction state"
	case auctionerrors.KindInvalidInput:
		return http.StatusBadRequest, "invalid request details"
	case auctionerrors.KindForbidden:
		return http.StatusForbidden, "operation not permitted"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// CurrentIdentity returns the gateway-authenticated caller identity, which
// may be anonymous (empty UserID).
func CurrentIdentity(c *gin.Context) model.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(model.Identity); ok {
			return id
		}
	}
	return model.Identity{}
}

// RequireIdentity sends a 401 and returns false when the caller is anonymous.
func RequireIdentity(c *gin.Context, handlerName string) (model.Identity, bool) {
	id := CurrentIdentity(c)
	if id.UserID == "" {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrInvalidInput, "authentication required")
		utils.Warn(handlerName+": anonymous caller", map[string]any{"path": c.Request.URL.Path})
		return model.Identity{}, false
	}
	return id, true
}

// AuctionToResponse builds the serialized auction with its computed openness.
func AuctionToResponse(a model.Auction, isOpen bool) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:   a.AuctionID,
		Title:       a.Title,
		Description: a.Description,
		Thumbnail:   a.Thumbnail,
		Brand:       a.Brand,
		CategoryID:  a.CategoryID,
		Price:       a.Price,
		Stock:       a.Stock,
		Rating:      a.Rating,
		OwnerID:     a.OwnerID,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
		IsOpen:      isOpen,
	}
	if a.ClosedAt != nil {
		resp.ClosedAt = a.ClosedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// BidToResponse builds the serialized bid with the auction's displayed price
// after admission.
func BidToResponse(b model.Bid, auctionPrice float64) BidResponse {
	return BidResponse{
		BidID:        b.BidID,
		AuctionID:    b.AuctionID,
		Price:        b.Price,
		Bidder:       b.Bidder,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		AuctionPrice: auctionPrice,
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
