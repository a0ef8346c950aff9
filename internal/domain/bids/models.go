package bids

// Bid represents a single bid. A bid row is immutable and is tied to its
// auction through a separate link row written in the same transaction.
type Bid struct {
	ID         int64   `json:"id" db:"id"`
	Amount     float64 `json:"amount" db:"amount"`
	BidderName string  `json:"bidder_name" db:"bidder_name"`
}

// PlaceBidCommand represents the command to place a bid
type PlaceBidCommand struct {
	AuctionID  int64
	BidderName string
	Amount     float64
}
