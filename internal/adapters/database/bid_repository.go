package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bidhall/auctionhouse/internal/domain/bids"
)

// PostgresBidRepository implements bids.Repository using pgx
type PostgresBidRepository struct {
	pool *pgxpool.Pool // Keep pool for read-only operations
}

// NewPostgresBidRepository creates a new PostgreSQL bid repository
func NewPostgresBidRepository(pool *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{pool: pool}
}

// SaveBid inserts a bid within the given transaction and fills in its
// generated id
func (r *PostgresBidRepository) SaveBid(ctx context.Context, tx pgx.Tx, bid *bids.Bid) error {
	query := `
		INSERT INTO bids (amount, bidder_name)
		VALUES ($1, $2)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query, bid.Amount, bid.BidderName).Scan(&bid.ID)
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

// LinkBid inserts the link row tying a bid to its auction
func (r *PostgresBidRepository) LinkBid(ctx context.Context, tx pgx.Tx, bidID, auctionID int64) error {
	query := `
		INSERT INTO auction_bid_links (bid_id, auction_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, query, bidID, auctionID); err != nil {
		return fmt.Errorf("failed to insert bid link: %w", err)
	}
	return nil
}

// GetBidByID retrieves a bid by its id
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidID int64) (*bids.Bid, error) {
	query := `
		SELECT id, amount, bidder_name
		FROM bids
		WHERE id = $1
	`
	var bid bids.Bid
	err := r.pool.QueryRow(ctx, query, bidID).Scan(&bid.ID, &bid.Amount, &bid.BidderName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bids.ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

// HighestBid returns the bid with the maximum amount among all bids linked
// to the auction, or nil when the auction has no bids. Equal amounts are
// returned in arbitrary order.
func (r *PostgresBidRepository) HighestBid(ctx context.Context, auctionID int64) (*bids.Bid, error) {
	query := `
		SELECT b.id, b.amount, b.bidder_name
		FROM bids b
		JOIN auction_bid_links l ON l.bid_id = b.id
		WHERE l.auction_id = $1
		ORDER BY b.amount DESC
		LIMIT 1
	`
	var bid bids.Bid
	err := r.pool.QueryRow(ctx, query, auctionID).Scan(&bid.ID, &bid.Amount, &bid.BidderName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query highest bid: %w", err)
	}
	return &bid, nil
}
