package auctions

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines the interface for auction persistence
type Repository interface {
	// CreateAuction inserts a new auction row. Returns ErrUnknownOwner when
	// the owner does not reference an existing user.
	CreateAuction(ctx context.Context, auction *Auction) error

	// ListOpen retrieves auctions without a buyer, ordered by id ascending
	ListOpen(ctx context.Context, limit, offset int) ([]*Auction, error)

	// ListClosed retrieves bought-out auctions, ordered by id ascending
	ListClosed(ctx context.Context, limit, offset int) ([]*Auction, error)

	// GetAuctionForUpdate retrieves an auction by id and locks its row.
	// Must be called within a transaction. Returns ErrAuctionNotFound when
	// no such auction exists.
	GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, auctionID int64) (*Auction, error)

	// Buyout sets bought_by to buyerName, but only while bought_by is still
	// null. Reports whether a row was updated; false means the auction is
	// missing or already bought.
	Buyout(ctx context.Context, auctionID int64, buyerName string) (bool, error)

	// DeleteAuction removes the auction row. Link rows cascade; the bids
	// themselves persist.
	DeleteAuction(ctx context.Context, auctionID int64) error
}
