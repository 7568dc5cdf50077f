package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTradeCapturesMakerAndTakerIdentity(t *testing.T) {
	maker := NewOrder("m1", "BTC-USDT", "u1", SideSell, OrderTypeLimit, dec("60000"), dec("1.0"), 1)
	taker := NewOrder("t1", "BTC-USDT", "u2", SideBuy, OrderTypeMarket, dec("0"), dec("1.0"), 2)

	trade := NewTrade("T0001", "BTC-USDT", dec("60000"), dec("1.0"), maker, taker, 2)

	assert.Equal(t, "m1", trade.MakerOrderID)
	assert.Equal(t, "t1", trade.TakerOrderID)
	assert.Equal(t, SideBuy, trade.AggressorSide, "aggressor side must be the taker's side")
	assert.True(t, trade.Price.Equal(dec("60000")))
	assert.True(t, trade.Quantity.Equal(dec("1.0")))
	assert.Equal(t, int64(2), trade.Timestamp)
}
