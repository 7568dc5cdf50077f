// Package events defines the JSON wire shapes exchanged with the
// transport layer (SPEC_FULL.md §6) and the conversions between them and
// domain types. Field names and structure are grounded on the teacher
// pack's JSON-tagged request/event structs (e.g. DimaJoyti's
// OrderRequest), adapted to the inbound/outbound record shapes spec §6.1
// and §6.2 name.
package events

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"lightning-exchange/domain"
)

// ErrMissingField is wrapped by ToDomain validation failures so callers
// can log and skip per spec §7 kind 2/3 without a type switch.
var ErrMissingField = errors.New("events: missing or invalid field")

// InboundOrder is the canonical inbound order record (spec §6.1). Wire
// format is JSON; quantity and price travel as decimal strings so no
// precision is lost crossing the transport boundary.
type InboundOrder struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	OrderType string `json:"order_type"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

func parseSide(raw string) (domain.Side, error) {
	switch raw {
	case "buy":
		return domain.SideBuy, nil
	case "sell":
		return domain.SideSell, nil
	default:
		return 0, fmt.Errorf("%w: side %q", ErrMissingField, raw)
	}
}

func parseOrderType(raw string) (domain.OrderType, error) {
	switch raw {
	case "market":
		return domain.OrderTypeMarket, nil
	case "limit":
		return domain.OrderTypeLimit, nil
	case "ioc":
		return domain.OrderTypeIOC, nil
	case "fok":
		return domain.OrderTypeFOK, nil
	default:
		return 0, fmt.Errorf("%w: order_type %q", ErrMissingField, raw)
	}
}

// ToDomain validates and converts the wire record into a *domain.Order,
// assigning seq as its monotonic acceptance timestamp (spec §3's "Open
// question — snapshot timestamps" resolution: sequence numbers, not wall
// clock, break FIFO ties). A non-nil error means the record is malformed
// or violates a precondition (spec §7 kinds 2/3); the caller logs and
// skips rather than treating it as fatal.
func (in *InboundOrder) ToDomain(seq int64) (*domain.Order, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	if in.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol", ErrMissingField)
	}

	side, err := parseSide(in.Side)
	if err != nil {
		return nil, err
	}
	orderType, err := parseOrderType(in.OrderType)
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: quantity %q: %v", ErrMissingField, in.Quantity, err)
	}
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", ErrMissingField, quantity)
	}

	var price decimal.Decimal
	if orderType.IsLimitPriced() {
		if in.Price == "" {
			return nil, fmt.Errorf("%w: price required for order_type %q", ErrMissingField, in.OrderType)
		}
		price, err = decimal.NewFromString(in.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q: %v", ErrMissingField, in.Price, err)
		}
		if price.Sign() <= 0 {
			return nil, fmt.Errorf("%w: price must be positive, got %s", ErrMissingField, price)
		}
	} else {
		price = decimal.Zero
	}

	return domain.NewOrder(in.ID, in.Symbol, in.UserID, side, orderType, price, quantity, seq), nil
}
