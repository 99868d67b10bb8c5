package receipt

import "time"

type Receipt struct {
	ID          string    `bson:"_id" json:"id"`
	Date        time.Time `bson:"date" json:"date"`
	Amount      float64   `bson:"amount" json:"amount"`
	ClientName  string    `bson:"clientName" json:"clientName"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}

type CreateReceiptRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	ClientName  string    `json:"clientName" binding:"required"`
	Description string    `json:"description"`
}

type UpdateReceiptRequest struct {
	Date        *time.Time `json:"date"`
	Amount      *float64   `json:"amount"`
	ClientName  *string    `json:"clientName"`
	Description *string    `json:"description"`
}
