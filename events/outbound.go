package events

import "lightning-exchange/domain"

// TradeEvent is the outbound wire shape published on the trades channel
// (spec §6.2).
type TradeEvent struct {
	TradeID       string `json:"trade_id"`
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	AggressorSide string `json:"aggressor_side"`
	MakerOrderID  string `json:"maker_order_id"`
	TakerOrderID  string `json:"taker_order_id"`
	Timestamp     int64  `json:"timestamp"`
}

// NewTradeEvent projects a domain.Trade onto its wire shape.
func NewTradeEvent(t *domain.Trade) TradeEvent {
	return TradeEvent{
		TradeID:       t.ID,
		Symbol:        t.Symbol,
		Price:         t.Price.String(),
		Quantity:      t.Quantity.String(),
		AggressorSide: t.AggressorSide.String(),
		MakerOrderID:  t.MakerOrderID,
		TakerOrderID:  t.TakerOrderID,
		Timestamp:     t.Timestamp,
	}
}

// BBOEvent is the outbound wire shape published on the bbo channel (spec
// §6.2). Bid/Ask are nil when that side of the book is empty.
type BBOEvent struct {
	Symbol    string  `json:"symbol"`
	Bid       *string `json:"bid"`
	Ask       *string `json:"ask"`
	Timestamp int64   `json:"timestamp"`
}

// NewBBOEvent projects a domain.BBOSnapshot onto its wire shape.
func NewBBOEvent(s domain.BBOSnapshot) BBOEvent {
	e := BBOEvent{Symbol: s.Symbol, Timestamp: s.Timestamp}
	if s.Bid != nil {
		v := s.Bid.String()
		e.Bid = &v
	}
	if s.Ask != nil {
		v := s.Ask.String()
		e.Ask = &v
	}
	return e
}

// PriceLevelPair is one [price, quantity] entry in an L2Event.
type PriceLevelPair [2]string

// L2Event is the outbound wire shape published on the l2 channel (spec
// §6.2). Bids are ordered descending by price, asks ascending; both are
// truncated to the configured depth upstream.
type L2Event struct {
	Symbol    string           `json:"symbol"`
	Timestamp int64            `json:"timestamp"`
	Bids      []PriceLevelPair `json:"bids"`
	Asks      []PriceLevelPair `json:"asks"`
}

// NewL2Event projects a domain.L2Snapshot onto its wire shape.
func NewL2Event(s domain.L2Snapshot) L2Event {
	return L2Event{
		Symbol:    s.Symbol,
		Timestamp: s.Timestamp,
		Bids:      levelPairs(s.Bids),
		Asks:      levelPairs(s.Asks),
	}
}

func levelPairs(views []domain.PriceLevelView) []PriceLevelPair {
	pairs := make([]PriceLevelPair, len(views))
	for i, v := range views {
		pairs[i] = PriceLevelPair{v.Price.String(), v.Quantity.String()}
	}
	return pairs
}
