package model

import "fmt"

// Role is the access level attached to every authenticated request.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// DashboardView describes which dashboard sections a role sees. Role is a
// finite enum driving this pure mapping; views never branch on role ad hoc.
type DashboardView struct {
	Role            Role     `json:"role"`
	Sections        []string `json:"sections"`
	ShowRevenue     bool     `json:"show_revenue"`
	ShowSuppliers   bool     `json:"show_suppliers"`
	ShowTaskQueue   bool     `json:"show_task_queue"`
	CanManageStock  bool     `json:"can_manage_stock"`
	CanManageOrders bool     `json:"can_manage_orders"`
}

// ViewForRole maps a role to its dashboard view configuration.
func ViewForRole(r Role) DashboardView {
	switch r {
	case RoleAdmin:
		return DashboardView{
			Role:            r,
			Sections:        []string{"overview", "analytics", "suppliers", "orders", "users"},
			ShowRevenue:     true,
			ShowSuppliers:   true,
			CanManageStock:  true,
			CanManageOrders: true,
		}
	case RoleManager:
		return DashboardView{
			Role:            r,
			Sections:        []string{"overview", "analytics", "suppliers", "orders"},
			ShowRevenue:     true,
			ShowSuppliers:   true,
			CanManageStock:  true,
			CanManageOrders: true,
		}
	default:
		return DashboardView{
			Role:          RoleStaff,
			Sections:      []string{"overview", "tasks"},
			ShowTaskQueue: true,
		}
	}
}
