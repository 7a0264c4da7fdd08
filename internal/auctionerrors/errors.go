package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrRatingNotFound  = errors.New("rating not found")
	ErrNoBids          = errors.New("no bids recorded for auction")
)

// business rule errors
var (
	ErrAuctionClosed        = errors.New("auction is closed")
	ErrPriceNotIncreasing   = errors.New("bid price must strictly exceed the current price")
	ErrImmutableAssociation = errors.New("a bid cannot be moved to a different auction")
	ErrInvalidClosingDate   = errors.New("invalid closing date")
	ErrValueOutOfRange      = errors.New("rating value must be between 1 and 5")
	ErrNotOwner             = errors.New("caller does not own this resource")
	ErrInvalidInput         = errors.New("invalid input")
)

// Kind is the closed classification every rejection maps onto. The HTTP
// layer translates kinds to statuses; the domain never emits a failure
// without one.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
	KindForbidden
)

// String is the wire name of the kind, carried in error envelopes so
// clients can branch without parsing messages.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// KindOf classifies any error produced by the domain services. Errors that
// match no sentinel are internal faults.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrAuctionNotFound),
		errors.Is(err, ErrBidNotFound),
		errors.Is(err, ErrRatingNotFound),
		errors.Is(err, ErrNoBids):
		return KindNotFound
	case errors.Is(err, ErrAuctionClosed),
		errors.Is(err, ErrPriceNotIncreasing),
		errors.Is(err, ErrImmutableAssociation):
		return KindConflict
	case errors.Is(err, ErrInvalidClosingDate),
		errors.Is(err, ErrValueOutOfRange),
		errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotOwner):
		return KindForbidden
	default:
		return KindInternal
	}
}
