package utils

import (
	"github.com/google/uuid"
)

// GenerateID mints the identifiers used for auctions, bids and ratings.
// Random UUIDv4, so IDs carry no ordering or tenancy information.
func GenerateID() string {
	return uuid.New().String()
}
