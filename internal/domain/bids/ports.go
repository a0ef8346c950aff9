package bids

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bidhall/auctionhouse/internal/domain/auctions"
)

// Repository defines the interface for bid persistence
type Repository interface {
	// SaveBid inserts a bid within a transaction and fills in its generated id
	SaveBid(ctx context.Context, tx pgx.Tx, bid *Bid) error

	// LinkBid inserts the link row tying a bid to its auction within the
	// same transaction as SaveBid
	LinkBid(ctx context.Context, tx pgx.Tx, bidID, auctionID int64) error

	// GetBidByID retrieves a bid by its id. Returns ErrBidNotFound when no
	// such bid exists.
	GetBidByID(ctx context.Context, bidID int64) (*Bid, error)

	// HighestBid returns the bid with the maximum amount among all bids
	// linked to the auction, or nil when the auction has no bids. Ties are
	// broken arbitrarily.
	HighestBid(ctx context.Context, auctionID int64) (*Bid, error)
}

// AuctionRepository is the slice of auction persistence the bid engine
// needs: loading and locking the auction row inside the bid transaction.
type AuctionRepository interface {
	// GetAuctionForUpdate retrieves an auction by id and locks its row.
	// Must be called within a transaction.
	GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, auctionID int64) (*auctions.Auction, error)
}
