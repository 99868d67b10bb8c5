package income

import "time"

// PaymentDetails is the single optional embedded sub-document carried by
// financial records, shaped by the payment method in use.
type PaymentDetails struct {
	Last4Digits   string     `bson:"last4Digits,omitempty" json:"last4Digits,omitempty"`
	PaymentsCount int        `bson:"paymentsCount,omitempty" json:"paymentsCount,omitempty"`
	CheckNumber   string     `bson:"checkNumber,omitempty" json:"checkNumber,omitempty"`
	AccountNumber string     `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	BankNumber    string     `bson:"bankNumber,omitempty" json:"bankNumber,omitempty"`
	DueDate       *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
}

type Income struct {
	ID             string          `bson:"_id" json:"id"`
	ReceiptNumber  int             `bson:"receiptNumber" json:"receiptNumber"`
	Date           time.Time       `bson:"date" json:"date" validate:"required"`
	Client         string          `bson:"client" json:"client" validate:"required"`
	Amount         float64         `bson:"amount" json:"amount"`
	Vat            float64         `bson:"vat" json:"vat"`
	PaymentMethod  string          `bson:"paymentMethod" json:"paymentMethod" validate:"required,oneof=cash credit check bank_transfer"`
	Details        string          `bson:"details,omitempty" json:"details,omitempty"`
	PrintDate      *time.Time      `bson:"printDate,omitempty" json:"printDate,omitempty"`
	PaymentDetails *PaymentDetails `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
}

// Populated is an Income whose client reference has been resolved at read
// time. Client holds the referenced document, or the raw identifier when
// it does not resolve.
type Populated struct {
	Income
	Client any `json:"client"`
}

type CreateIncomeRequest struct {
	ReceiptNumber  int             `json:"receiptNumber" binding:"required"`
	Date           time.Time       `json:"date" binding:"required"`
	Client         string          `json:"client" binding:"required"`
	Amount         float64         `json:"amount" binding:"required"`
	Vat            *float64        `json:"vat" binding:"required"`
	PaymentMethod  string          `json:"paymentMethod" binding:"required,oneof=cash credit check bank_transfer"`
	Details        string          `json:"details"`
	PrintDate      *time.Time      `json:"printDate"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
}

type UpdateIncomeRequest struct {
	ReceiptNumber  *int            `json:"receiptNumber"`
	Date           *time.Time      `json:"date"`
	Client         *string         `json:"client"`
	Amount         *float64        `json:"amount"`
	Vat            *float64        `json:"vat"`
	PaymentMethod  *string         `json:"paymentMethod" binding:"omitempty,oneof=cash credit check bank_transfer"`
	Details        *string         `json:"details"`
	PrintDate      *time.Time      `json:"printDate"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
}
