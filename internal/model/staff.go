package model

import "time"

// Staff roles stored in staff.role and carried in the JWT role claim.
const (
	RoleHost    = "HOST"
	RoleManager = "MANAGER"
)

// Staff represents a restaurant employee allowed to use the API, as
// stored in the `staff` table.  The json tags are omitted because the
// handlers answer with their own response shapes.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique, lower-cased address used to sign in.
//  PasswordHash – bcrypt hash of the password.
//  Role         – HOST or MANAGER.
//  IsActive     – inactive staff cannot sign in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Staff struct {
	ID           uint64    // staff.id
	Email        string    // staff.email
	PasswordHash string    // staff.password_hash
	Role         string    // staff.role
	IsActive     bool      // staff.is_active
	CreatedAt    time.Time // staff.created_at
	UpdatedAt    time.Time // staff.updated_at
}

// NormalizeRole maps free input onto a known role, defaulting to HOST.
func NormalizeRole(role string) string {
	if role == RoleManager {
		return RoleManager
	}
	return RoleHost
}
