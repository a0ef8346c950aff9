package auctions

import "time"

// DefaultDuration is used when an auction is created without an explicit
// duration.
const DefaultDuration = 8 * time.Hour

// Auction represents a listing that users can bid on or buy out directly.
// BoughtBy is nil while the auction is open; a buyout sets it exactly once.
type Auction struct {
	ID          int64     `json:"id" db:"id"`
	ItemName    string    `json:"item_name" db:"item_name"`
	BuyoutPrice float64   `json:"buyout_price" db:"buyout_price"`
	StartAt     time.Time `json:"start_at" db:"start_at"`
	EndAt       time.Time `json:"end_at" db:"end_at"`
	OwnerName   string    `json:"owner_name" db:"owner_name"`
	BoughtBy    *string   `json:"bought_by" db:"bought_by"`
}

// Open reports whether the auction still accepts bids at the given instant.
// An auction with a buyer, or one past its end time, is closed for bidding.
// Note that an expired auction without a buyer still browses as open: the
// open/closed browse sets are partitioned by BoughtBy alone.
func (a *Auction) Open(now time.Time) bool {
	return a.BoughtBy == nil && a.EndAt.After(now)
}

// CreateAuctionCommand represents the command to create a new auction
type CreateAuctionCommand struct {
	ItemName    string
	OwnerName   string
	BuyoutPrice float64
	Hours       int
}
