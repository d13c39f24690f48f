package domain

// Role is an admin console role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User is an admin console account. The ID is a string because
// optimistically created users carry a client-generated uuid until the
// backend assigns the real id.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`

	// Pending marks records written optimistically and not yet
	// confirmed by the backend.
	Pending bool `json:"pending,omitempty"`
}
