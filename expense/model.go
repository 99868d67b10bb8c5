package expense

import "time"

// PaymentDetails mirrors the embedded payment sub-document on Income.
type PaymentDetails struct {
	Last4Digits   string     `bson:"last4Digits,omitempty" json:"last4Digits,omitempty"`
	PaymentsCount int        `bson:"paymentsCount,omitempty" json:"paymentsCount,omitempty"`
	CheckNumber   string     `bson:"checkNumber,omitempty" json:"checkNumber,omitempty"`
	AccountNumber string     `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	BankNumber    string     `bson:"bankNumber,omitempty" json:"bankNumber,omitempty"`
	DueDate       *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
}

type Expense struct {
	ID              string          `bson:"_id" json:"id"`
	ReferenceNumber int             `bson:"referenceNumber" json:"referenceNumber"`
	Date            time.Time       `bson:"date" json:"date"`
	Supplier        string          `bson:"supplier" json:"supplier"`
	Category        string          `bson:"category" json:"category"`
	Amount          float64         `bson:"amount" json:"amount"`
	Vat             float64         `bson:"vat" json:"vat"`
	PaymentMethod   string          `bson:"paymentMethod" json:"paymentMethod"`
	ReferenceDoc    string          `bson:"referenceDoc,omitempty" json:"referenceDoc,omitempty"`
	Details         string          `bson:"details,omitempty" json:"details,omitempty"`
	FileURL         string          `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	PaymentDetails  *PaymentDetails `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
}

// Populated is an Expense whose supplier and category references have been
// resolved at read time. Unresolved references keep the raw identifier.
type Populated struct {
	Expense
	Supplier any `json:"supplier"`
	Category any `json:"category"`
}

type CreateExpenseRequest struct {
	ReferenceNumber int             `json:"referenceNumber" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Supplier        string          `json:"supplier" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	Amount          float64         `json:"amount" binding:"required"`
	Vat             *float64        `json:"vat" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=cash credit check bank_transfer"`
	ReferenceDoc    string          `json:"referenceDoc"`
	Details         string          `json:"details"`
	FileURL         string          `json:"fileUrl"`
	PaymentDetails  *PaymentDetails `json:"paymentDetails"`
}

type UpdateExpenseRequest struct {
	ReferenceNumber *int            `json:"referenceNumber"`
	Date            *time.Time      `json:"date"`
	Supplier        *string         `json:"supplier"`
	Category        *string         `json:"category"`
	Amount          *float64        `json:"amount"`
	Vat             *float64        `json:"vat"`
	PaymentMethod   *string         `json:"paymentMethod" binding:"omitempty,oneof=cash credit check bank_transfer"`
	ReferenceDoc    *string         `json:"referenceDoc"`
	Details         *string         `json:"details"`
	FileURL         *string         `json:"fileUrl"`
	PaymentDetails  *PaymentDetails `json:"paymentDetails"`
}
