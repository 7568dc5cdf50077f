package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Side represents the order side (Buy or Sell).
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the contra side used to find counterparties.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents the type of order the engine knows how to handle.
type OrderType int

const (
	OrderTypeMarket OrderType = iota
	OrderTypeLimit
	OrderTypeIOC
	OrderTypeFOK
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "market"
	case OrderTypeLimit:
		return "limit"
	case OrderTypeIOC:
		return "ioc"
	case OrderTypeFOK:
		return "fok"
	default:
		return "unknown"
	}
}

// IsLimitPriced reports whether the order type carries a limit price that
// participates in the marketability check (everything but Market).
func (t OrderType) IsLimitPriced() bool {
	return t != OrderTypeMarket
}

// RestsOnBook reports whether an unfilled remainder of this order type is
// ever allowed to rest in the book. Only Limit orders rest; Market/IOC/FOK
// remainders are always discarded.
func (t OrderType) RestsOnBook() bool {
	return t == OrderTypeLimit
}

// OrderStatus is an observability-only projection of an order's lifecycle;
// matching decisions depend only on RemainingQuantity, never on Status.
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusPartialFilled
	OrderStatusFilled
	OrderStatusCancelled
)

// Order is the immutable-except-for-Filled instruction record the matching
// engine operates on. Identity and the original instruction fields never
// change after acceptance; only Filled (and the derived RemainingQuantity /
// Status) mutate, and only from the single goroutine that owns the engine.
type Order struct {
	ID        string
	Symbol    string
	UserID    string
	Side      Side
	Type      OrderType
	Price     decimal.Decimal // ignored for Market
	Quantity  decimal.Decimal // original quantity, > 0
	Filled    decimal.Decimal
	Status    OrderStatus
	Timestamp int64 // monotonic acceptance sequence; breaks FIFO ties

	// handle is the order's location inside its resting PriceLevel, set by
	// orderbook.OrderBook.AddOrder and cleared by CancelOrder. It is opaque
	// outside the orderbook package.
	handle interface{}
}

var orderPool = sync.Pool{
	New: func() any { return &Order{} },
}

// NewOrder allocates (or reuses from the pool) an order ready to be handed
// to Engine.Process. seq is the engine-assigned monotonic timestamp.
func NewOrder(id, symbol, userID string, side Side, typ OrderType, price, quantity decimal.Decimal, seq int64) *Order {
	o := orderPool.Get().(*Order)
	o.ID = id
	o.Symbol = symbol
	o.UserID = userID
	o.Side = side
	o.Type = typ
	o.Price = price
	o.Quantity = quantity
	o.Filled = decimal.Zero
	o.Status = OrderStatusPending
	o.Timestamp = seq
	o.handle = nil
	return o
}

// RemainingQuantity returns the unfilled quantity.
func (o *Order) RemainingQuantity() decimal.Decimal {
	return o.Quantity.Sub(o.Filled)
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity().Sign() <= 0
}

// Fill records a fill of qty against this order, updating Status.
func (o *Order) Fill(qty decimal.Decimal) {
	o.Filled = o.Filled.Add(qty)
	if o.IsFilled() {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartialFilled
	}
}

// Cancel marks the order cancelled. Called once the order has been
// unlinked from its price level.
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
}

// Handle returns the opaque location handle set while the order rests on a
// book; nil if the order has never rested.
func (o *Order) Handle() interface{} { return o.handle }

// SetHandle is used exclusively by orderbook.OrderBook to record or clear
// an order's resting location.
func (o *Order) SetHandle(h interface{}) { o.handle = h }

// Release returns the order to the shared pool. Callers must not touch the
// order afterward. Only safe once the order can never be referenced again
// (fully filled, fully cancelled, or a discarded Market/IOC/FOK remainder).
func (o *Order) Release() {
	*o = Order{}
	orderPool.Put(o)
}
