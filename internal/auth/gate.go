package auth

import "github.com/shubh1628/Dabba-delight/internal/domain"

// Route is one entry of the static page table.
type Route struct {
	Path  string
	Page  string
	Title string
	// Allowed is nil for public pages.
	Allowed []domain.UserType
}

// Guarded reports whether the route requires a session.
func (r Route) Guarded() bool {
	return r.Allowed != nil
}

// Permits reports whether a visitor holding record may view the route.
func (r Route) Permits(record *domain.SessionRecord) bool {
	if !r.Guarded() {
		return true
	}
	if record == nil {
		return false
	}
	for _, allowed := range r.Allowed {
		if record.UserType == allowed {
			return true
		}
	}
	return false
}

var routes = []Route{
	{Path: HomePath, Page: "home", Title: "Home"},
	{Path: "/about", Page: "about", Title: "About Us"},
	{Path: "/products", Page: "products", Title: "Products"},
	{Path: "/feedback", Page: "feedback", Title: "Feedback"},
	{Path: "/contact", Page: "contact", Title: "Contact Us"},
	{Path: "/terms", Page: "terms", Title: "Terms & Conditions"},
	{Path: LoginPath, Page: "login", Title: "Sign in to Dabba Delight"},
	{Path: SignupPath, Page: "signup", Title: "Create your account"},
	{Path: "/dashboard/customer", Page: "customer-dashboard", Title: "Customer Dashboard", Allowed: []domain.UserType{domain.UserTypeCustomer}},
	{Path: "/dashboard/housewife", Page: "housewife-dashboard", Title: "Housewife Dashboard", Allowed: []domain.UserType{domain.UserTypeHousewife}},
	{Path: "/dashboard/vendor", Page: "vendor-dashboard", Title: "Vendor Dashboard", Allowed: []domain.UserType{domain.UserTypeVendor}},
	{Path: "/dashboard/delivery", Page: "delivery-dashboard", Title: "Delivery Partner Dashboard", Allowed: []domain.UserType{domain.UserTypeDeliveryPartner}},
	{Path: "/dashboard/admin", Page: "admin-dashboard", Title: "Admin Dashboard", Allowed: []domain.UserType{domain.UserTypeAdmin}},
}

// Routes returns a copy of the page table.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Decision is the gate's verdict for one navigation.
type Decision struct {
	Render   bool
	Redirect string
}

// Decide applies the gate to a requested path. Paths outside the table and
// not the dashboard alias are left to the router (Render with no redirect).
func Decide(path string, record *domain.SessionRecord) Decision {
	if path == DashboardPath {
		if record == nil {
			return Decision{Redirect: LoginPath}
		}
		return Decision{Redirect: DashboardFor(record.UserType)}
	}
	for _, route := range routes {
		if route.Path != path {
			continue
		}
		if !route.Permits(record) {
			return Decision{Redirect: LoginPath}
		}
		return Decision{Render: true}
	}
	return Decision{Render: true}
}
