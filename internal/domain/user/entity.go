package user

import "time"

type Role string

const (
	RolePayroll Role = "payroll" // Prepares and submits settlements, processes payments
	RoleTax     Role = "tax"     // Reviews, approves and rejects settlements
)

type User struct {
	ID                 string
	Username           string
	PasswordHash       *string
	Role               Role
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsPayrollTeam checks if user can prepare settlements and process payments
func (u *User) IsPayrollTeam() bool {
	return u.Role == RolePayroll
}

// IsTaxTeam checks if user can review settlements
func (u *User) IsTaxTeam() bool {
	return u.Role == RoleTax
}

// NeedsPasswordSetup reports whether login must be followed by a password
// change before any other action.
func (u *User) NeedsPasswordSetup() bool {
	return u.PasswordHash == nil || u.MustChangePassword
}
