package auctions

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Validation and conflict errors
var (
	ErrInvalidBuyoutPrice = errors.New("buyout price must be greater than 0")
	ErrInvalidDuration    = errors.New("auction duration must not be negative")
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrAuctionNotOpen     = errors.New("auction is not open")
	ErrUnknownOwner       = errors.New("owner is not a registered user")
	ErrUnknownBuyer       = errors.New("buyer is not a registered user")
)

// Service implements the auction lifecycle: creation, browsing by buyout
// state, buyout, and cancellation.
type Service struct {
	repo Repository
}

// NewService creates a new auction service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create opens a new auction starting now. A zero Hours falls back to
// DefaultDuration.
func (s *Service) Create(ctx context.Context, cmd CreateAuctionCommand) (*Auction, error) {
	if cmd.BuyoutPrice <= 0 {
		return nil, ErrInvalidBuyoutPrice
	}
	if cmd.Hours < 0 {
		return nil, ErrInvalidDuration
	}

	duration := time.Duration(cmd.Hours) * time.Hour
	if duration == 0 {
		duration = DefaultDuration
	}

	now := time.Now()
	auction := &Auction{
		ItemName:    cmd.ItemName,
		BuyoutPrice: cmd.BuyoutPrice,
		StartAt:     now,
		EndAt:       now.Add(duration),
		OwnerName:   cmd.OwnerName,
	}

	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		if errors.Is(err, ErrUnknownOwner) {
			return nil, ErrUnknownOwner
		}
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}

	return auction, nil
}

// BrowseOpen lists auctions that have not been bought out. Expired auctions
// without a buyer are included: expiry blocks new bids but does not move an
// auction into the closed set.
func (s *Service) BrowseOpen(ctx context.Context, limit, offset int) ([]*Auction, error) {
	auctions, err := s.repo.ListOpen(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list open auctions: %w", err)
	}
	return auctions, nil
}

// BrowseClosed lists auctions that have been bought out.
func (s *Service) BrowseClosed(ctx context.Context, limit, offset int) ([]*Auction, error) {
	auctions, err := s.repo.ListClosed(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed auctions: %w", err)
	}
	return auctions, nil
}

// Buyout purchases the auction directly for buyerName. The update is guarded
// by a WHERE clause on bought_by, so concurrent buyers cannot overwrite each
// other: the loser sees ErrAuctionNotOpen.
func (s *Service) Buyout(ctx context.Context, auctionID int64, buyerName string) error {
	updated, err := s.repo.Buyout(ctx, auctionID, buyerName)
	if err != nil {
		if errors.Is(err, ErrUnknownBuyer) {
			return ErrUnknownBuyer
		}
		return fmt.Errorf("failed to buy out auction: %w", err)
	}
	if !updated {
		return ErrAuctionNotOpen
	}
	return nil
}

// Cancel deletes the auction and, via cascade, its bid links. No ownership
// check is performed here; authorization belongs to the caller.
func (s *Service) Cancel(ctx context.Context, auctionID int64) error {
	if err := s.repo.DeleteAuction(ctx, auctionID); err != nil {
		return fmt.Errorf("failed to cancel auction: %w", err)
	}
	return nil
}
