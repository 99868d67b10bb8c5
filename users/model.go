package users

// Business registration types recognized by the Israeli tax authority.
const (
	BusinessTypeZair    = "זעיר"
	BusinessTypePatur   = "פטור"
	BusinessTypeMursheh = "מורשה"
)

// User carries the password exactly as submitted. Hashing is out of scope
// here together with the rest of authentication.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	Password     string `bson:"password" json:"password"`
	BusinessType string `bson:"businessType" json:"businessType"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
}

type CreateUserRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	BusinessType string `json:"businessType" binding:"required,oneof=זעיר פטור מורשה"`
	Email        string `json:"email"`
}

type UpdateUserRequest struct {
	Username     *string `json:"username"`
	Password     *string `json:"password"`
	BusinessType *string `json:"businessType" binding:"omitempty,oneof=זעיר פטור מורשה"`
	Email        *string `json:"email"`
}
