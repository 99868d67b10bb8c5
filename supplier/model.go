package supplier

type Supplier struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	CompanyID string `bson:"companyId,omitempty" json:"companyId,omitempty"`
}

type CreateSupplierRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CompanyID string `json:"companyId"`
}

type UpdateSupplierRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	CompanyID *string `json:"companyId"`
}
