package domain

// Role is the business role assigned to a console user.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleExecutive        Role = "executive"
	RoleBusinessManager  Role = "business_manager"
	RoleMarketingManager Role = "marketing_manager"
	RoleProductManager   Role = "product_manager"
	RoleDeveloper        Role = "developer"
	RoleAnalyst          Role = "analyst"
)

// Roles lists every role the platform knows about.
var Roles = []Role{
	RoleAdmin,
	RoleExecutive,
	RoleBusinessManager,
	RoleMarketingManager,
	RoleProductManager,
	RoleDeveloper,
	RoleAnalyst,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models an authenticated console user as returned by the platform API.
// The client never mutates it; a fresh copy arrives with every login or /auth/me call.
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	Role       Role       `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  Timestamp  `json:"created_at"`
	UpdatedAt  *Timestamp `json:"updated_at,omitempty"`
	LastLogin  *Timestamp `json:"last_login,omitempty"`
}

// Clone returns a deep copy of u, or nil when u is nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		c.UpdatedAt = &t
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}
