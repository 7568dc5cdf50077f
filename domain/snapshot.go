package domain

import "github.com/shopspring/decimal"

// PriceLevelView is a read-only (price, aggregated quantity) pair, used by
// both BBOSnapshot's implicit levels and L2Snapshot's depth listing.
type PriceLevelView struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// BBOSnapshot is the best-bid/best-offer view of a single symbol's book.
// Bid/Ask are nil when that side of the book is empty.
type BBOSnapshot struct {
	Symbol    string
	Bid       *decimal.Decimal
	Ask       *decimal.Decimal
	Timestamp int64 // Unix seconds, stamped at publish time
}

// L2Snapshot is the aggregated market-depth view of a single symbol's book,
// up to Depth price levels per side. Bids are ordered descending by price,
// asks ascending.
type L2Snapshot struct {
	Symbol    string
	Timestamp int64 // Unix seconds, stamped at publish time
	Bids      []PriceLevelView
	Asks      []PriceLevelView
}
