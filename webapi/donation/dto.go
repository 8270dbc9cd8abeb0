package donation

// CreateInput represents the request body for starting a donation.
type CreateInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// VerifyInput carries the checkout redirect fields the gateway hands back to
// the client after payment.
type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}
