package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lightning-exchange/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func limitOrder(id string, side domain.Side, price, qty string, seq int64) *domain.Order {
	return domain.NewOrder(id, "BTC-USDT", "user", side, domain.OrderTypeLimit, dec(price), dec(qty), seq)
}

func TestAddOrderCreatesLevelAndIndex(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	order := limitOrder("o1", domain.SideBuy, "60000", "1.0", 1)

	require.NoError(t, book.AddOrder(order))

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Equal(dec("60000")))
	assert.True(t, book.Contains("o1"))
	assert.Equal(t, 1, book.OrderCount())

	level := book.LevelAt(domain.SideBuy, dec("60000"))
	require.NotNil(t, level)
	assert.True(t, level.TotalQuantity.Equal(dec("1.0")))
}

func TestAddOrderDuplicateID(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	order := limitOrder("o1", domain.SideBuy, "60000", "1.0", 1)
	require.NoError(t, book.AddOrder(order))

	dup := limitOrder("o1", domain.SideBuy, "60000", "2.0", 2)
	err := book.AddOrder(dup)
	assert.ErrorIs(t, err, ErrDuplicateOrderID)
}

func TestCancelOrderRemovesEmptyLevel(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	order := limitOrder("o1", domain.SideSell, "60000", "1.0", 1)
	require.NoError(t, book.AddOrder(order))

	ok := book.CancelOrder("o1")
	assert.True(t, ok)
	assert.False(t, book.Contains("o1"))
	_, hasAsk := book.BestAsk()
	assert.False(t, hasAsk)
	assert.Nil(t, book.LevelAt(domain.SideSell, dec("60000")))
}

func TestCancelUnknownOrderReturnsFalse(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	assert.False(t, book.CancelOrder("missing"))
}

func TestBestBidAskOrdering(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	require.NoError(t, book.AddOrder(limitOrder("b1", domain.SideBuy, "59000", "1", 1)))
	require.NoError(t, book.AddOrder(limitOrder("b2", domain.SideBuy, "60000", "1", 2)))
	require.NoError(t, book.AddOrder(limitOrder("a1", domain.SideSell, "61000", "1", 3)))
	require.NoError(t, book.AddOrder(limitOrder("a2", domain.SideSell, "60500", "1", 4)))

	bid, _ := book.BestBid()
	ask, _ := book.BestAsk()
	assert.True(t, bid.Equal(dec("60000")), "best bid should be the highest price")
	assert.True(t, ask.Equal(dec("60500")), "best ask should be the lowest price")
	assert.False(t, book.IsCrossed())
}

func TestL2SnapshotOrderingAndDepth(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	prices := []string{"59000", "59500", "60000"}
	for i, p := range prices {
		require.NoError(t, book.AddOrder(limitOrder("b"+p, domain.SideBuy, p, "1", int64(i))))
	}
	asks := []string{"60500", "61000", "61500"}
	for i, p := range asks {
		require.NoError(t, book.AddOrder(limitOrder("a"+p, domain.SideSell, p, "1", int64(i))))
	}

	bids, asksView := book.L2Snapshot(2)
	require.Len(t, bids, 2)
	require.Len(t, asksView, 2)
	assert.True(t, bids[0].Price.Equal(dec("60000")))
	assert.True(t, bids[1].Price.Equal(dec("59500")))
	assert.True(t, asksView[0].Price.Equal(dec("60500")))
	assert.True(t, asksView[1].Price.Equal(dec("61000")))
}

func TestAvailableLiquidityStopsAtDisqualifyingLevel(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	require.NoError(t, book.AddOrder(limitOrder("a1", domain.SideSell, "60000", "0.5", 1)))
	require.NoError(t, book.AddOrder(limitOrder("a2", domain.SideSell, "60001", "0.3", 2)))
	require.NoError(t, book.AddOrder(limitOrder("a3", domain.SideSell, "61000", "10", 3)))

	avail := book.AvailableLiquidity(domain.SideSell, dec("60001"))
	assert.True(t, avail.Equal(dec("0.8")), "only levels <= limit price count")
}

func TestFIFOHandleStability(t *testing.T) {
	book := NewOrderBook("BTC-USDT")
	older := limitOrder("A", domain.SideBuy, "60000", "1.0", 1)
	newer := limitOrder("B", domain.SideBuy, "60000", "2.0", 2)
	require.NoError(t, book.AddOrder(older))
	require.NoError(t, book.AddOrder(newer))

	level := book.LevelAt(domain.SideBuy, dec("60000"))
	require.NotNil(t, level)
	front := level.front()
	assert.Equal(t, "A", front.ID, "FIFO front must be the earlier arrival")

	require.True(t, book.CancelOrder("A"))
	front = level.front()
	assert.Equal(t, "B", front.ID, "removing A must not disturb B's position")
	assert.True(t, level.TotalQuantity.Equal(dec("2.0")))
}
