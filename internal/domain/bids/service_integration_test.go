//go:build integration

package bids_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infradb "github.com/bidhall/auctionhouse/internal/adapters/database"
	"github.com/bidhall/auctionhouse/internal/domain/auctions"
	"github.com/bidhall/auctionhouse/internal/domain/bids"
	"github.com/bidhall/auctionhouse/pkg/database"
	"github.com/bidhall/auctionhouse/pkg/testhelpers"
)

type bidApp struct {
	auctionService *auctions.Service
	bidService     *bids.Service
	pool           *pgxpool.Pool
}

func setupBidApp(t *testing.T, pool *pgxpool.Pool) *bidApp {
	t.Helper()

	txManager := database.NewPostgresTransactionManager(pool, 5*time.Second)
	auctionRepo := infradb.NewPostgresAuctionRepository(pool)
	bidRepo := infradb.NewPostgresBidRepository(pool)

	return &bidApp{
		auctionService: auctions.NewService(auctionRepo),
		bidService:     bids.NewService(txManager, bidRepo, auctionRepo),
		pool:           pool,
	}
}

func (app *bidApp) seedUsers(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := app.pool.Exec(context.Background(), "INSERT INTO users (name) VALUES ($1)", name)
		require.NoError(t, err)
	}
}

func (app *bidApp) seedAuction(t *testing.T, owner string) int64 {
	t.Helper()
	created, err := app.auctionService.Create(context.Background(), auctions.CreateAuctionCommand{
		ItemName:    "hello",
		OwnerName:   owner,
		BuyoutPrice: 50,
		Hours:       8,
	})
	require.NoError(t, err)
	return created.ID
}

func (app *bidApp) countRows(t *testing.T, table string) int {
	t.Helper()
	var count int
	require.NoError(t, app.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func TestPlaceBid_Scenarios(t *testing.T) {
	testDB := testhelpers.NewTestDatabase(t)
	defer testDB.Close()

	app := setupBidApp(t, testDB.Pool)
	ctx := context.Background()

	t.Run("highest bid wins among three bidders", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test", "b1", "b2", "b3")
		auctionID := app.seedAuction(t, "test")

		for _, bid := range []struct {
			bidder string
			amount float64
		}{
			{"b1", 8.323},
			{"b2", 1.323},
			{"b3", 29.323},
		} {
			_, err := app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
				AuctionID:  auctionID,
				BidderName: bid.bidder,
				Amount:     bid.amount,
			})
			require.NoError(t, err)
		}

		highest, err := app.bidService.HighestBid(ctx, auctionID)
		require.NoError(t, err)
		require.NotNil(t, highest)
		assert.Equal(t, 29.323, highest.Amount)
		assert.Equal(t, "b3", highest.BidderName)
	})

	t.Run("no bids yields nil highest bid", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test")
		auctionID := app.seedAuction(t, "test")

		highest, err := app.bidService.HighestBid(ctx, auctionID)
		require.NoError(t, err)
		assert.Nil(t, highest)
	})

	t.Run("bid on a bought-out auction is rejected", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test")
		auctionID := app.seedAuction(t, "test")

		require.NoError(t, app.auctionService.Buyout(ctx, auctionID, "test"))

		_, err := app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
			AuctionID:  auctionID,
			BidderName: "test",
			Amount:     8.323,
		})
		assert.ErrorIs(t, err, bids.ErrAuctionClosed)
		assert.Zero(t, app.countRows(t, "bids"))
		assert.Zero(t, app.countRows(t, "auction_bid_links"))
	})

	t.Run("bid on an expired auction is rejected", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test")
		auctionID := app.seedAuction(t, "test")

		_, err := app.pool.Exec(ctx, "UPDATE auctions SET end_at = $1 WHERE id = $2",
			time.Date(1970, 12, 1, 0, 0, 0, 0, time.UTC), auctionID)
		require.NoError(t, err)

		_, err = app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
			AuctionID:  auctionID,
			BidderName: "test",
			Amount:     8.323,
		})
		assert.ErrorIs(t, err, bids.ErrAuctionClosed)
		assert.Zero(t, app.countRows(t, "bids"))
	})

	t.Run("bid on a missing auction is rejected", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test")

		_, err := app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
			AuctionID:  404,
			BidderName: "test",
			Amount:     8.323,
		})
		assert.ErrorIs(t, err, bids.ErrAuctionClosed)
	})

	t.Run("unknown bidder leaves no partial bid behind", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test")
		auctionID := app.seedAuction(t, "test")

		// The bid insert violates the bidder foreign key; the transaction
		// must roll back as a whole.
		_, err := app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
			AuctionID:  auctionID,
			BidderName: "ghost",
			Amount:     8.323,
		})
		require.Error(t, err)
		assert.Zero(t, app.countRows(t, "bids"))
		assert.Zero(t, app.countRows(t, "auction_bid_links"))
	})

	t.Run("accepted bid persists with its link row", func(t *testing.T) {
		testhelpers.CleanDatabase(t, testDB.Pool)
		app.seedUsers(t, "test", "b1")
		auctionID := app.seedAuction(t, "test")

		placed, err := app.bidService.PlaceBid(ctx, bids.PlaceBidCommand{
			AuctionID:  auctionID,
			BidderName: "b1",
			Amount:     8.323,
		})
		require.NoError(t, err)
		assert.NotZero(t, placed.ID)

		got, err := app.bidService.GetBid(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, 8.323, got.Amount)

		var linkedAuction int64
		require.NoError(t, app.pool.QueryRow(ctx,
			"SELECT auction_id FROM auction_bid_links WHERE bid_id = $1", placed.ID).Scan(&linkedAuction))
		assert.Equal(t, auctionID, linkedAuction)
	})
}
