// Package orderbook implements the per-symbol limit order book: two
// price-ordered sides plus an O(1) order index, as specified by
// SPEC_FULL.md §3/§4.1-4.2.
package orderbook

import (
	"errors"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/shopspring/decimal"
	"lightning-exchange/domain"
)

// ErrDuplicateOrderID is returned by AddOrder when the caller hands the
// book an order ID that already rests in it. Per spec §4.2 this indicates
// a caller bug (the ingress failed to deduplicate), not a normal book
// condition.
var ErrDuplicateOrderID = errors.New("orderbook: duplicate order id")

// side keys one side of the book by price, ordered so that Left() always
// returns the best (most aggressive) resting price level for that side:
// descending for bids, ascending for asks. Grounded on the teacher's
// red-black-tree-of-price-levels architecture (price_tree_sharded.go),
// generalized from an integer-tick bucketed tree down to a single tree
// keyed directly by decimal.Decimal (the teacher's bucket-by-division
// trick assumes a fixed-width integer tick space and does not generalize
// to arbitrary-precision decimals).
type side struct {
	tree *rbt.Tree[decimal.Decimal, *PriceLevel]
}

func newSide(descending bool) *side {
	cmp := func(a, b decimal.Decimal) int {
		if descending {
			return b.Cmp(a)
		}
		return a.Cmp(b)
	}
	return &side{tree: rbt.NewWith[decimal.Decimal, *PriceLevel](cmp)}
}

func (s *side) bestLevel() *PriceLevel {
	node := s.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

func (s *side) levelAt(price decimal.Decimal) (*PriceLevel, bool) {
	return s.tree.Get(price)
}

func (s *side) getOrCreate(price decimal.Decimal) *PriceLevel {
	level, found := s.tree.Get(price)
	if found {
		return level
	}
	level = newPriceLevel(price)
	s.tree.Put(price, level)
	return level
}

func (s *side) removeLevel(price decimal.Decimal) {
	s.tree.Remove(price)
}

// OrderBook is the two-sided, price-time-priority book for one symbol. It
// is mutated exclusively by the single goroutine that owns the enclosing
// matching.Engine; no internal locking is required (spec §5).
type OrderBook struct {
	Symbol     string
	bids       *side // descending: best bid first
	asks       *side // ascending: best ask first
	orderIndex map[string]*handle
}

// NewOrderBook creates an empty book for symbol.
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		Symbol:     symbol,
		bids:       newSide(true),
		asks:       newSide(false),
		orderIndex: make(map[string]*handle),
	}
}

func (b *OrderBook) sideFor(s domain.Side) *side {
	if s == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// AddOrder rests order in the book. The caller guarantees order is a
// resting candidate (a Limit order with remaining quantity > 0 after
// matching). Returns ErrDuplicateOrderID if order.ID already rests here.
func (b *OrderBook) AddOrder(order *domain.Order) error {
	if _, exists := b.orderIndex[order.ID]; exists {
		return ErrDuplicateOrderID
	}
	level := b.sideFor(order.Side).getOrCreate(order.Price)
	h := level.append(order)
	order.SetHandle(h)
	b.orderIndex[order.ID] = h
	return nil
}

// CancelOrder removes a resting order by ID. Returns true if it was found
// and removed, false if the ID is unknown to this book. If the order's
// price level becomes empty as a result, the level is dropped from its
// side's tree in the same call.
func (b *OrderBook) CancelOrder(orderID string) bool {
	h, exists := b.orderIndex[orderID]
	if !exists {
		return false
	}
	delete(b.orderIndex, orderID)

	order := h.elem.Value.(*domain.Order)
	residual := order.RemainingQuantity()
	h.level.remove(h, residual)
	order.SetHandle(nil)
	order.Cancel()

	if h.level.isEmpty() {
		b.sideFor(order.Side).removeLevel(h.level.Price)
	}
	return true
}

// BestBid returns the highest resting buy price, or ok=false if no bids
// rest in the book.
func (b *OrderBook) BestBid() (price decimal.Decimal, ok bool) {
	level := b.bids.bestLevel()
	if level == nil {
		return decimal.Zero, false
	}
	return level.Price, true
}

// BestAsk returns the lowest resting sell price, or ok=false if no asks
// rest in the book.
func (b *OrderBook) BestAsk() (price decimal.Decimal, ok bool) {
	level := b.asks.bestLevel()
	if level == nil {
		return decimal.Zero, false
	}
	return level.Price, true
}

// BestLevel returns the best (most aggressive) resting price level on
// side, or nil if that side is empty. Used by the matching loop to reach
// the front-of-queue order without an intermediate allocation.
func (b *OrderBook) BestLevel(s domain.Side) *PriceLevel {
	return b.sideFor(s).bestLevel()
}

// LevelAt returns the price level at an exact price on side, or nil.
func (b *OrderBook) LevelAt(s domain.Side, price decimal.Decimal) *PriceLevel {
	level, found := b.sideFor(s).levelAt(price)
	if !found {
		return nil
	}
	return level
}

// AvailableLiquidity sums total resting quantity on the counter side s
// (domain.SideSell for a BUY aggressor, domain.SideBuy for a SELL
// aggressor — see matching/engine.go's counter := order.Side.Opposite())
// at prices "not worse than" limitPrice: for asks (s == SideSell),
// price <= limitPrice; for bids (s == SideBuy), price >= limitPrice.
// Levels are visited best price first and the walk stops at the first
// disqualifying level, since qualification is monotone in traversal
// order — O(K) where K is the number of qualifying levels. Used by the
// FOK pre-check (spec §4.3.5).
func (b *OrderBook) AvailableLiquidity(s domain.Side, limitPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	it := b.sideFor(s).tree.Iterator()
	for it.Next() {
		level := it.Value()
		if s == domain.SideSell {
			// s is the counter side: incoming BUY matches resting asks,
			// walked ascending; qualifies if ask <= limit.
			if level.Price.GreaterThan(limitPrice) {
				break
			}
		} else {
			// s is the counter side: incoming SELL matches resting bids,
			// walked descending; qualifies if bid >= limit.
			if level.Price.LessThan(limitPrice) {
				break
			}
		}
		total = total.Add(level.TotalQuantity)
	}
	return total
}

// L2Snapshot walks each side from the best price outward, collecting up to
// depth (price, aggregate quantity) pairs. O(depth).
func (b *OrderBook) L2Snapshot(depth int) (bids, asks []domain.PriceLevelView) {
	bids = collectDepth(b.bids, depth)
	asks = collectDepth(b.asks, depth)
	return bids, asks
}

func collectDepth(s *side, depth int) []domain.PriceLevelView {
	if depth <= 0 {
		return nil
	}
	views := make([]domain.PriceLevelView, 0, depth)
	it := s.tree.Iterator()
	for it.Next() && len(views) < depth {
		level := it.Value()
		views = append(views, domain.PriceLevelView{Price: level.Price, Quantity: level.TotalQuantity})
	}
	return views
}

// IsCrossed reports whether the best bid is not strictly below the best
// ask, i.e. the book violates the no-crossed-book invariant (spec I4). A
// book with one or both sides empty is never crossed.
func (b *OrderBook) IsCrossed() bool {
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if !hasBid || !hasAsk {
		return false
	}
	return !bid.LessThan(ask)
}

// Contains reports whether orderID currently rests in this book.
func (b *OrderBook) Contains(orderID string) bool {
	_, ok := b.orderIndex[orderID]
	return ok
}

// OrderCount returns the number of resting orders across both sides.
func (b *OrderBook) OrderCount() int {
	return len(b.orderIndex)
}
