package bids

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bidhall/auctionhouse/internal/domain/auctions"
	"github.com/bidhall/auctionhouse/pkg/database"
)

var (
	// ErrAuctionClosed covers every reason a bid cannot be accepted: the
	// auction does not exist, has been bought out, or has expired. Callers
	// see a single outcome for all three.
	ErrAuctionClosed = errors.New("auction is closed")

	ErrInvalidBidAmount = errors.New("bid amount must be positive")
	ErrBidNotFound      = errors.New("bid not found")
)

// Service implements bid acceptance and the highest-bid query
type Service struct {
	txManager   database.TransactionManager
	bidRepo     Repository
	auctionRepo AuctionRepository
}

// NewService creates a new bid service
func NewService(txManager database.TransactionManager, bidRepo Repository, auctionRepo AuctionRepository) *Service {
	return &Service{
		txManager:   txManager,
		bidRepo:     bidRepo,
		auctionRepo: auctionRepo,
	}
}

// PlaceBid accepts a bid on an open auction. The auction row is locked for
// the duration of the transaction, so a concurrent buyout (whose UPDATE
// contends on the same row lock) cannot slip between the open-check and the
// insert. The bid and its link row commit together or not at all: a failed
// link insert rolls back the bid.
func (s *Service) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*Bid, error) {
	if cmd.Amount <= 0 {
		return nil, ErrInvalidBidAmount
	}

	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Rollback if commit is not called
	}()

	auction, err := s.auctionRepo.GetAuctionForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		if errors.Is(err, auctions.ErrAuctionNotFound) {
			return nil, ErrAuctionClosed
		}
		return nil, fmt.Errorf("failed to load auction: %w", err)
	}

	if !auction.Open(time.Now()) {
		return nil, ErrAuctionClosed
	}

	bid := &Bid{
		Amount:     cmd.Amount,
		BidderName: cmd.BidderName,
	}

	if saveErr := s.bidRepo.SaveBid(ctx, tx, bid); saveErr != nil {
		return nil, fmt.Errorf("failed to save bid: %w", saveErr)
	}

	if linkErr := s.bidRepo.LinkBid(ctx, tx, bid.ID, cmd.AuctionID); linkErr != nil {
		return nil, fmt.Errorf("failed to link bid to auction: %w", linkErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", commitErr)
	}

	return bid, nil
}

// HighestBid returns the top bid for the auction, or nil when no bids exist
func (s *Service) HighestBid(ctx context.Context, auctionID int64) (*Bid, error) {
	bid, err := s.bidRepo.HighestBid(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query highest bid: %w", err)
	}
	return bid, nil
}

// GetBid retrieves a bid by id
func (s *Service) GetBid(ctx context.Context, bidID int64) (*Bid, error) {
	bid, err := s.bidRepo.GetBidByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, ErrBidNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return bid, nil
}
