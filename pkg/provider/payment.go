// Package provider defines the payment gateway contract and the signature
// verification primitives used to authenticate gateway callbacks.
package provider

import (
	"context"
	"errors"
)

// ErrGatewayUnavailable is returned when the gateway cannot be reached or the
// order call times out. The pending donation record survives; the user retries
// by creating a new attempt.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// Order is a gateway-side reservation for a specific amount and currency,
// created before payment capture.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// OrderIssuer mints gateway orders for pending donations. Amount is in major
// currency units; implementations convert to the gateway's minor units.
type OrderIssuer interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}
