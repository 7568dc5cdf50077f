package events

import (
	"encoding/json"
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

func TestTradeEventRoundTrip(t *testing.T) {
	maker := domain.NewOrder("m1", "BTC-USDT", "u1", domain.SideSell, domain.OrderTypeLimit, dec("60000"), dec("1"), 1)
	taker := domain.NewOrder("t1", "BTC-USDT", "u2", domain.SideBuy, domain.OrderTypeMarket, dec("0"), dec("1"), 2)
	trade := domain.NewTrade("T0001", "BTC-USDT", dec("60000"), dec("1"), maker, taker, 2)

	event := NewTradeEvent(trade)
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded TradeEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event, decoded)
	assert.Equal(t, "buy", decoded.AggressorSide)
	assert.Equal(t, "60000", decoded.Price)
}

func TestBBOEventNilSidesWhenBookSideEmpty(t *testing.T) {
	bid := dec("60000")
	snap := domain.BBOSnapshot{Symbol: "BTC-USDT", Bid: &bid, Ask: nil, Timestamp: 100}

	event := NewBBOEvent(snap)
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ask":null`)

	require.NotNil(t, event.Bid)
	assert.Equal(t, "60000", *event.Bid)
	assert.Nil(t, event.Ask)
}

func TestL2EventOrderingPreserved(t *testing.T) {
	snap := domain.L2Snapshot{
		Symbol:    "BTC-USDT",
		Timestamp: 100,
		Bids:      []domain.PriceLevelView{{Price: dec("60000"), Quantity: dec("1")}, {Price: dec("59000"), Quantity: dec("2")}},
		Asks:      []domain.PriceLevelView{{Price: dec("60500"), Quantity: dec("1")}},
	}

	event := NewL2Event(snap)
	require.Len(t, event.Bids, 2)
	assert.Equal(t, PriceLevelPair{"60000", "1"}, event.Bids[0])
	assert.Equal(t, PriceLevelPair{"59000", "2"}, event.Bids[1])
	assert.Equal(t, PriceLevelPair{"60500", "1"}, event.Asks[0])
}
