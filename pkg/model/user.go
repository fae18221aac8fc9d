package model

// Role names understood by the gateway.
const (
	RoleAdmin    = "admin"
	RoleFullUser = "full_user"
	RoleSimple   = "simple_user"
)

// User is an account that can sign in and act on documents.
type User struct {
	UserKey      string   `json:"userKey" bson:"_id"`
	Username     string   `json:"username" bson:"username"`
	Email        string   `json:"email" bson:"email"`
	FirstName    string   `json:"firstName,omitempty" bson:"first_name,omitempty"`
	LastName     string   `json:"lastName,omitempty" bson:"last_name,omitempty"`
	PasswordHash string   `json:"-" bson:"password_hash"`
	PasswordAlgo string   `json:"-" bson:"password_algo"`
	Roles        []string `json:"roles" bson:"roles"`
	IsActive     bool     `json:"isActive" bson:"is_active"`
	CreatedAt    int64    `json:"createdAt" bson:"created_at"`
	UpdatedAt    int64    `json:"updatedAt" bson:"updated_at"`
}

func (u User) Key() string { return u.UserKey }

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
