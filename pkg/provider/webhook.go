package provider

import (
	"encoding/json"
	"fmt"
)

// EventKind tags the known webhook event types. Gateways add event types over
// time, so anything unrecognized maps to EventUnknown and is acknowledged
// without any state change.
type EventKind string

const (
	// EventPaymentCaptured signals a successfully captured payment.
	EventPaymentCaptured EventKind = "payment.captured"
	// EventPaymentFailed signals a failed payment with a gateway-supplied reason.
	EventPaymentFailed EventKind = "payment.failed"
	// EventUnknown covers every event type this service does not handle.
	EventUnknown EventKind = "unknown"
)

// PaymentEvent is the parsed form of a gateway webhook notification.
type PaymentEvent struct {
	Kind             EventKind
	OrderID          string
	PaymentID        string
	ErrorDescription string
}

// webhookEnvelope mirrors the gateway's webhook payload shape.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhookEvent decodes a raw webhook body into a PaymentEvent. Parsing is
// separate from signature verification: verify first against the raw bytes,
// then parse.
func ParseWebhookEvent(rawBody []byte) (*PaymentEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	ev := &PaymentEvent{
		OrderID:          env.Payload.Payment.Entity.OrderID,
		PaymentID:        env.Payload.Payment.Entity.ID,
		ErrorDescription: env.Payload.Payment.Entity.ErrorDescription,
	}
	switch EventKind(env.Event) {
	case EventPaymentCaptured:
		ev.Kind = EventPaymentCaptured
	case EventPaymentFailed:
		ev.Kind = EventPaymentFailed
	default:
		ev.Kind = EventUnknown
	}
	return ev, nil
}
