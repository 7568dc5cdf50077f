// Package matching implements price-time priority matching for the four
// order types (Market, Limit, IOC, FOK) over a per-symbol orderbook.
// SPEC_FULL.md §4.3 describes the contract implemented here.
package matching

import (
	"github.com/shopspring/decimal"
	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
)

// Engine is a single-threaded matching engine for ONE symbol. Grounded on
// the teacher's MatchingEngine/matchBuyOrder/matchSellOrder/executeTrade,
// generalized to the four order types and to a synchronous Process call:
// spec §2/§5 model the engine as quiescent between invocations and
// forbidden from blocking internally, so the teacher's own internal
// goroutine/ring-buffer is gone — the caller (runner.Runner) is the
// single thread that drives Process, exactly as spec §5 requires.
type Engine struct {
	symbol     string
	book       *orderbook.OrderBook
	tradeIDGen *idGenerator
	trades     []*domain.Trade // append-only history, spec §3 Trade lifecycle
	sequence   int64           // monotonic acceptance counter for Order.Timestamp
}

// NewEngine creates a matching engine for symbol with an empty book.
func NewEngine(symbol string) *Engine {
	return &Engine{
		symbol:     symbol,
		book:       orderbook.NewOrderBook(symbol),
		tradeIDGen: newIDGenerator("T", 4),
	}
}

// Symbol returns the symbol this engine owns.
func (e *Engine) Symbol() string { return e.symbol }

// NextSequence returns the next monotonic acceptance sequence number,
// which the caller stamps onto the order (the runner passes it to
// events.InboundOrder.ToDomain) before Process is invoked. Exposed here because sequence assignment and
// engine state share the single-threaded ownership spec §5 describes.
func (e *Engine) NextSequence() int64 {
	e.sequence++
	return e.sequence
}

// Book returns a read-only view of the engine's order book, for BBO/L2
// snapshot publication (spec §4.3 "book(symbol)").
func (e *Engine) Book() *orderbook.OrderBook { return e.book }

// Trades returns the append-only trade history produced so far. Callers
// must not mutate the returned slice.
func (e *Engine) Trades() []*domain.Trade { return e.trades }

// Process is the engine's single entry point (spec §4.3). Preconditions:
// order.RemainingQuantity() == order.Quantity > 0, and for Limit/IOC/FOK,
// order.Price > 0; these are validated upstream (events.InboundOrder) and
// never checked again here. Process dispatches by order.Type, mutates the
// book, and returns every trade emitted while handling this one order (in
// emission order). It never blocks and never returns an error except
// orderbook.ErrDuplicateOrderID, which indicates an ingress bug (spec §7
// kind 4) rather than a matching-semantics failure.
func (e *Engine) Process(order *domain.Order) ([]*domain.Trade, error) {
	switch order.Type {
	case domain.OrderTypeMarket:
		return e.matchLoop(order, false), nil
	case domain.OrderTypeLimit:
		trades := e.matchLoop(order, true)
		if !order.IsFilled() {
			if err := e.book.AddOrder(order); err != nil {
				return trades, err
			}
		}
		return trades, nil
	case domain.OrderTypeIOC:
		return e.matchLoop(order, true), nil
	case domain.OrderTypeFOK:
		return e.processFOK(order), nil
	default:
		return nil, nil
	}
}

// processFOK implements the all-or-nothing pre-check of spec §4.3.5: if
// the counter side cannot supply the full remaining quantity at prices no
// worse than order.Price, the order is discarded whole — zero trades, zero
// book mutation (spec I7).
func (e *Engine) processFOK(order *domain.Order) []*domain.Trade {
	counter := order.Side.Opposite()
	available := e.book.AvailableLiquidity(counter, order.Price)
	if available.LessThan(order.RemainingQuantity()) {
		return nil
	}
	return e.matchLoop(order, true)
}

// matchLoop is the common match loop of spec §4.3.1: it walks the counter
// side from the best price outward, filling the incoming order against the
// FIFO front of each qualifying level, until the order is filled or no
// more qualifying liquidity remains. When checkMarketable is false (Market
// orders) any counter-side liquidity qualifies; otherwise a level
// qualifies only while it is marketable against order.Price.
func (e *Engine) matchLoop(order *domain.Order, checkMarketable bool) []*domain.Trade {
	var trades []*domain.Trade
	counter := order.Side.Opposite()

	for order.RemainingQuantity().Sign() > 0 {
		level := e.book.BestLevel(counter)
		if level == nil {
			break
		}
		if checkMarketable && !marketable(order.Side, order.Price, level.Price) {
			break
		}

		resting := level.front()
		if resting == nil {
			break
		}

		fill := decimal.Min(order.RemainingQuantity(), resting.RemainingQuantity())
		trade := e.emitTrade(resting, order, level.Price, fill)
		trades = append(trades, trade)

		order.Fill(fill)
		resting.Fill(fill)
		level.decrementTotal(fill)

		if resting.RemainingQuantity().Sign() <= 0 {
			e.book.CancelOrder(resting.ID)
		}
	}

	return trades
}

// marketable reports whether an order priced at p on side is willing to
// trade against a resting best price of bestPrice (spec §4.3.1).
func marketable(side domain.Side, p, bestPrice decimal.Decimal) bool {
	if side == domain.SideBuy {
		return !p.LessThan(bestPrice) // p >= bestPrice
	}
	return !p.GreaterThan(bestPrice) // p <= bestPrice
}

// emitTrade stamps and records one fill. Price is always the maker's
// (resting order's) price, never the taker's limit — this is what gives
// the taker price improvement when applicable (spec §4.3.6).
func (e *Engine) emitTrade(maker, taker *domain.Order, price, qty decimal.Decimal) *domain.Trade {
	id := e.tradeIDGen.next()
	trade := domain.NewTrade(id, e.symbol, price, qty, maker, taker, e.sequence)
	e.trades = append(e.trades, trade)
	return trade
}
