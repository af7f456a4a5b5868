package user

type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Full access, manages sectors and admins
	RoleAdmin      Role = "admin"       // Manages workers, exceptions and reports
	RoleUser       Role = "user"        // Reads own attendance table
	RoleTerminal   Role = "terminal"    // Capture device, records punches only
)

// Principal is the authenticated caller as decoded from the access token.
type Principal struct {
	ID        string
	Role      Role
	SubjectID *string
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleTerminal:
		return true
	}
	return false
}

// IsAdmin checks if the role administers attendance data
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
