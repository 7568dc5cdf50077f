package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderRemainingQuantityAndFill(t *testing.T) {
	o := NewOrder("o1", "BTC-USDT", "u1", SideBuy, OrderTypeLimit, dec("60000"), dec("1.0"), 1)
	assert.True(t, o.RemainingQuantity().Equal(dec("1.0")))
	assert.False(t, o.IsFilled())

	o.Fill(dec("0.4"))
	assert.True(t, o.RemainingQuantity().Equal(dec("0.6")))
	assert.Equal(t, OrderStatusPartialFilled, o.Status)
	assert.False(t, o.IsFilled())

	o.Fill(dec("0.6"))
	assert.True(t, o.IsFilled())
	assert.Equal(t, OrderStatusFilled, o.Status)
}

func TestOrderCancelSetsStatus(t *testing.T) {
	o := NewOrder("o1", "BTC-USDT", "u1", SideSell, OrderTypeLimit, dec("60000"), dec("1.0"), 1)
	o.Cancel()
	assert.Equal(t, OrderStatusCancelled, o.Status)
}

func TestOrderHandleRoundTrip(t *testing.T) {
	o := NewOrder("o1", "BTC-USDT", "u1", SideBuy, OrderTypeLimit, dec("60000"), dec("1.0"), 1)
	assert.Nil(t, o.Handle())
	o.SetHandle("some-handle")
	assert.Equal(t, "some-handle", o.Handle())
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestOrderTypeRestsOnBook(t *testing.T) {
	assert.True(t, OrderTypeLimit.RestsOnBook())
	assert.False(t, OrderTypeMarket.RestsOnBook())
	assert.False(t, OrderTypeIOC.RestsOnBook())
	assert.False(t, OrderTypeFOK.RestsOnBook())
}

func TestOrderTypeIsLimitPriced(t *testing.T) {
	assert.False(t, OrderTypeMarket.IsLimitPriced())
	assert.True(t, OrderTypeLimit.IsLimitPriced())
	assert.True(t, OrderTypeIOC.IsLimitPriced())
	assert.True(t, OrderTypeFOK.IsLimitPriced())
}
