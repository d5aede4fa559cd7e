package user

type Permission string

const (
	// Employee master
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeImport Permission = "employee.import"

	// Settlement preparation
	PermissionSettlementCompute Permission = "settlement.compute"
	PermissionSettlementSubmit  Permission = "settlement.submit"
	PermissionSettlementView    Permission = "settlement.view"

	// Tax review
	PermissionSettlementReview Permission = "settlement.review"

	// Payout
	PermissionSettlementProcessPayment Permission = "settlement.process_payment"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RolePayroll: {
		PermissionEmployeeView,
		PermissionEmployeeImport,
		PermissionSettlementCompute,
		PermissionSettlementSubmit,
		PermissionSettlementView,
		PermissionSettlementProcessPayment,
	},
	RoleTax: {
		PermissionEmployeeView,
		PermissionSettlementView,
		PermissionSettlementReview,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
