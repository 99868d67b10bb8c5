package client

const (
	TypeBusiness = "business"
	TypePrivate  = "private"
)

type Client struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	CompanyID string `bson:"companyId,omitempty" json:"companyId,omitempty"`
	Type      string `bson:"type,omitempty" json:"type,omitempty"`
}

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CompanyID string `json:"companyId"`
	Type      string `json:"type" binding:"omitempty,oneof=business private"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	CompanyID *string `json:"companyId"`
	Type      *string `json:"type" binding:"omitempty,oneof=business private"`
}
