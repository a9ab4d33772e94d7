package model

import "time"

// Payment method values.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetbanking = "netbanking"
)

// PaymentDetails is the method-specific detail bag.  Only the fields
// relevant to the chosen method are populated; the rest stay empty and are
// omitted from JSON.
type PaymentDetails struct {
	CardName   string `json:"cardName,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	UPIID      string `json:"upiId,omitempty"`
	Bank       string `json:"bank,omitempty"`
}

// PaymentItem is one purchased line item of a cart checkout.
type PaymentItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity uint32  `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Payment is a standalone record of a checkout attempt.  It is deliberately
// not linked to a booking or season: payments form their own cart ledger.
// Once the status reaches completed or failed the record is immutable.
//
// Fields:
//
//	ID             – primary key identifier.
//	UserID         – opaque user identifier.
//	Amount         – total charged amount.
//	PaymentMethod  – card, upi or netbanking.
//	PaymentDetails – method-specific fields.
//	Status         – pending, completed or failed.
//	TransactionID  – identifier assigned when the payment settles.
//	Items          – purchased line items.
//	CreatedAt      – creation timestamp.
type Payment struct {
	ID             uint64         `json:"id"`
	UserID         string         `json:"userId"`
	Amount         float64        `json:"amount"`
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
	Status         string         `json:"status"`
	TransactionID  string         `json:"transactionId,omitempty"`
	Items          []PaymentItem  `json:"items"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	return m == MethodCard || m == MethodUPI || m == MethodNetbanking
}
