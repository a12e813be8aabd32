package auth

import "github.com/shubh1628/Dabba-delight/internal/domain"

const (
	HomePath      = "/"
	LoginPath     = "/login"
	SignupPath    = "/signup"
	DashboardPath = "/dashboard"
)

var dashboards = map[domain.UserType]string{
	domain.UserTypeCustomer:        "/dashboard/customer",
	domain.UserTypeHousewife:       "/dashboard/housewife",
	domain.UserTypeVendor:          "/dashboard/vendor",
	domain.UserTypeDeliveryPartner: "/dashboard/delivery",
	domain.UserTypeAdmin:           "/dashboard/admin",
}

// DashboardFor maps a role to its dashboard. Unknown roles go home.
func DashboardFor(userType domain.UserType) string {
	if path, ok := dashboards[userType]; ok {
		return path
	}
	return HomePath
}
