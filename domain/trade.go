package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Trade represents a matched fill between a resting maker order and an
// incoming taker order. Price is always the maker's resting price (spec
// §4.3.6): the taker may receive price improvement but is never charged a
// worse price than its own limit.
type Trade struct {
	ID            string
	Symbol        string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	AggressorSide Side // taker's side
	MakerOrderID  string
	TakerOrderID  string
	Timestamp     int64 // engine sequence at emission time
}

var tradePool = sync.Pool{
	New: func() any { return &Trade{} },
}

// NewTrade builds a trade from a pooled instance. maker is the resting
// order, taker the incoming aggressor; price is the maker's resting price.
func NewTrade(id, symbol string, price, quantity decimal.Decimal, maker, taker *Order, seq int64) *Trade {
	t := tradePool.Get().(*Trade)
	t.ID = id
	t.Symbol = symbol
	t.Price = price
	t.Quantity = quantity
	t.AggressorSide = taker.Side
	t.MakerOrderID = maker.ID
	t.TakerOrderID = taker.ID
	t.Timestamp = seq
	return t
}

// Release returns the trade to the shared pool. Safe only once the trade
// has been published/recorded and will never be read again.
func (t *Trade) Release() {
	*t = Trade{}
	tradePool.Put(t)
}
