// Package provider implements the payment gateway client.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/provider"
)

type orderIssuer struct {
	client *razorpay.Client
	cfg    *config.Razorpay
	logger *slog.Logger
}

// NewRazorpayOrderIssuer creates an OrderIssuer backed by the Razorpay Orders
// API.
func NewRazorpayOrderIssuer(
	cfg *config.Razorpay,
	logger *slog.Logger,
) provider.OrderIssuer {
	return &orderIssuer{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		cfg:    cfg,
		logger: logger.With("provider", "razorpay"),
	}
}

type orderResult struct {
	order map[string]interface{}
	err   error
}

// CreateOrder creates a gateway order for amount major currency units. The
// SDK has no context support, so the call runs in a goroutine bounded by the
// configured order timeout; on timeout the caller gets ErrGatewayUnavailable
// and the donation stays pending.
func (o *orderIssuer) CreateOrder(
	ctx context.Context,
	amount int64,
	currency, receipt string,
) (*provider.Order, error) {
	if o.cfg.OrderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.OrderTimeout)
		defer cancel()
	}

	// Razorpay expects the amount in the smallest currency unit.
	data := map[string]interface{}{
		"amount":   amount * 100,
		"currency": currency,
		"receipt":  receipt,
	}

	ch := make(chan orderResult, 1)
	go func() {
		order, err := o.client.Order.Create(data, nil)
		ch <- orderResult{order: order, err: err}
	}()

	select {
	case <-ctx.Done():
		o.logger.Warn("order creation timed out", "receipt", receipt)
		return nil, fmt.Errorf("%w: %v", provider.ErrGatewayUnavailable, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			o.logger.Error("order creation failed",
				"receipt", receipt, "error", res.err)
			return nil, fmt.Errorf("%w: %v", provider.ErrGatewayUnavailable, res.err)
		}

		orderID, ok := res.order["id"].(string)
		if !ok || orderID == "" {
			return nil, fmt.Errorf("%w: order id missing in response",
				provider.ErrGatewayUnavailable)
		}

		o.logger.Info("order created", "order_id", orderID, "receipt", receipt)
		return &provider.Order{
			OrderID:  orderID,
			Amount:   amount,
			Currency: currency,
			Receipt:  receipt,
		}, nil
	}
}
