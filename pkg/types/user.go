package types

// User roles. Admins see every row; clients are scoped to rows they own.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// validRoles is the set of recognized role values.
var validRoles = map[string]bool{
	RoleAdmin:  true,
	RoleClient: true,
}

// ValidRole reports whether role is a recognized user role.
func ValidRole(role string) bool {
	return validRoles[role]
}

// User is an account that owns business entities. Password holds the bcrypt
// hash; it is stripped before a User leaves the API facade.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"-"`
}
