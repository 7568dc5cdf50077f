package orderbook

import (
	"container/list"

	"github.com/shopspring/decimal"
	"lightning-exchange/domain"
)

// PriceLevel holds every resting order at a single price, in FIFO arrival
// order. Grounded on the teacher's PriceLevel_: a container/list.List gives
// O(1) append at the tail and O(1) removal of any element given its handle
// — the one data structure the spec's Design Notes call out as necessary
// ("a doubly linked list... with the handle being a node reference").
type PriceLevel struct {
	Price         decimal.Decimal
	Orders        *list.List // FIFO queue of *domain.Order
	TotalQuantity decimal.Decimal
}

// handle is the stable, O(1)-removable location of one order inside its
// price level. order_index in OrderBook maps an order ID to a handle.
type handle struct {
	level *PriceLevel
	elem  *list.Element
}

func newPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{
		Price:         price,
		Orders:        list.New(),
		TotalQuantity: decimal.Zero,
	}
}

// append pushes order to the tail of the level's FIFO queue and returns the
// handle used to remove it later. O(1).
func (l *PriceLevel) append(order *domain.Order) *handle {
	elem := l.Orders.PushBack(order)
	l.TotalQuantity = l.TotalQuantity.Add(order.RemainingQuantity())
	return &handle{level: l, elem: elem}
}

// remove deletes the order referenced by h from the level. O(1). The
// caller is responsible for checking isEmpty() afterward and removing the
// level from its parent map if so.
func (l *PriceLevel) remove(h *handle, residualAtRemoval decimal.Decimal) {
	l.Orders.Remove(h.elem)
	l.TotalQuantity = l.TotalQuantity.Sub(residualAtRemoval)
}

// decrementTotal adjusts the cached aggregate after a partial fill of one
// of the level's resting orders, without touching the FIFO queue itself.
func (l *PriceLevel) decrementTotal(qty decimal.Decimal) {
	l.TotalQuantity = l.TotalQuantity.Sub(qty)
}

// front returns the oldest (highest time-priority) resting order, or nil
// if the level is empty.
func (l *PriceLevel) front() *domain.Order {
	e := l.Orders.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*domain.Order)
}

// isEmpty reports whether the level has no resting orders left.
func (l *PriceLevel) isEmpty() bool {
	return l.Orders.Len() == 0
}
