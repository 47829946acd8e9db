package client

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Status    Status `json:"status"`
}

// AdminUser is the shape the admin user listing returns.
type AdminUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Status    Status `json:"status"`
}

type ShareInfo struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Contact struct {
	ID            string      `json:"_id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	ContactNumber string      `json:"contactNumber"`
	EmailAddress  string      `json:"emailAddress"`
	Photo         string      `json:"photo,omitempty"`
	Owner         string      `json:"owner"`
	SharedWith    []ShareInfo `json:"sharedWith"`
}

// IsAdmin reports whether the user may perform admin operations.
func IsAdmin(user *User) bool {
	return user != nil && (user.Role == RoleAdmin || user.Role == RoleSuperAdmin)
}

// IsSelf reports whether the given id names the user themself.
func IsSelf(user *User, id string) bool {
	return user != nil && user.ID == id
}
