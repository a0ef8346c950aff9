package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bidhall/auctionhouse/internal/domain/auctions"
	"github.com/bidhall/auctionhouse/pkg/database"
)

// PostgresAuctionRepository implements auctions.Repository and the auction
// slice of bids.AuctionRepository using pgx
type PostgresAuctionRepository struct {
	pool *pgxpool.Pool // Keep pool for non-transactional operations
}

// NewPostgresAuctionRepository creates a new PostgreSQL auction repository
func NewPostgresAuctionRepository(pool *pgxpool.Pool) *PostgresAuctionRepository {
	return &PostgresAuctionRepository{pool: pool}
}

// CreateAuction inserts a new auction row and fills in its generated id
func (r *PostgresAuctionRepository) CreateAuction(ctx context.Context, auction *auctions.Auction) error {
	query := `
		INSERT INTO auctions (item_name, buyout_price, start_at, end_at, owner_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		auction.ItemName,
		auction.BuyoutPrice,
		auction.StartAt,
		auction.EndAt,
		auction.OwnerName,
	).Scan(&auction.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return auctions.ErrUnknownOwner
		}
		return fmt.Errorf("failed to insert auction: %w", err)
	}
	return nil
}

// ListOpen retrieves auctions without a buyer, ordered by id ascending
func (r *PostgresAuctionRepository) ListOpen(ctx context.Context, limit, offset int) ([]*auctions.Auction, error) {
	return r.list(ctx, "bought_by IS NULL", limit, offset)
}

// ListClosed retrieves bought-out auctions, ordered by id ascending
func (r *PostgresAuctionRepository) ListClosed(ctx context.Context, limit, offset int) ([]*auctions.Auction, error) {
	return r.list(ctx, "bought_by IS NOT NULL", limit, offset)
}

func (r *PostgresAuctionRepository) list(ctx context.Context, where string, limit, offset int) ([]*auctions.Auction, error) {
	query := fmt.Sprintf(`
		SELECT id, item_name, buyout_price, start_at, end_at, owner_name, bought_by
		FROM auctions
		WHERE %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, where)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query auctions: %w", err)
	}
	defer rows.Close()

	var result []*auctions.Auction
	for rows.Next() {
		var auction auctions.Auction
		if err := rows.Scan(
			&auction.ID,
			&auction.ItemName,
			&auction.BuyoutPrice,
			&auction.StartAt,
			&auction.EndAt,
			&auction.OwnerName,
			&auction.BoughtBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		result = append(result, &auction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auctions: %w", err)
	}

	return result, nil
}

// GetAuctionForUpdate retrieves an auction by id and locks its row.
// This keeps a concurrent buyout from landing between the bid engine's
// open-check and its inserts.
func (r *PostgresAuctionRepository) GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, auctionID int64) (*auctions.Auction, error) {
	return r.getAuctionByID(ctx, tx, auctionID, true)
}

func (r *PostgresAuctionRepository) getAuctionByID(ctx context.Context, db database.DBTX, auctionID int64, forUpdate bool) (*auctions.Auction, error) {
	query := `
		SELECT id, item_name, buyout_price, start_at, end_at, owner_name, bought_by
		FROM auctions
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var auction auctions.Auction
	err := db.QueryRow(ctx, query, auctionID).Scan(
		&auction.ID,
		&auction.ItemName,
		&auction.BuyoutPrice,
		&auction.StartAt,
		&auction.EndAt,
		&auction.OwnerName,
		&auction.BoughtBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auctions.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return &auction, nil
}

// Buyout conditionally sets bought_by. The WHERE clause on bought_by makes
// the update a compare-and-set: only one buyer can ever win the row.
func (r *PostgresAuctionRepository) Buyout(ctx context.Context, auctionID int64, buyerName string) (bool, error) {
	query := `
		UPDATE auctions
		SET bought_by = $1
		WHERE id = $2 AND bought_by IS NULL
	`
	result, err := r.pool.Exec(ctx, query, buyerName, auctionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, auctions.ErrUnknownBuyer
		}
		return false, fmt.Errorf("failed to update auction: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteAuction removes the auction row; link rows cascade
func (r *PostgresAuctionRepository) DeleteAuction(ctx context.Context, auctionID int64) error {
	query := `
		DELETE FROM auctions
		WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, query, auctionID); err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}
	return nil
}
