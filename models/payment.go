package models

import "time"

// Payment methods accepted at booking time.
const (
	PaymentMethodUPI  = "UPI"
	PaymentMethodCard = "CARD"
	PaymentMethodCash = "CASH"
)

// Payment statuses.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusSuccess  = "SUCCESS"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Payment is the side record of a payment outcome, 1:1 with a booking.
// Capture itself happens outside this system; we only record the declared
// result. BookingID is set once and never reassigned.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	BookingID     string    `bson:"booking_id" json:"bookingId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Method        string    `bson:"method" json:"method"`
	Status        string    `bson:"status" json:"status"`
	TransactionID string    `bson:"transaction_id" json:"transactionId"`
	PaymentTime   time.Time `bson:"payment_time" json:"paymentTime"`
}

// IsValidPaymentMethod reports whether m is one of the accepted method tokens.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}
