package auth

import (
	"testing"

	"github.com/shubh1628/Dabba-delight/internal/domain"
)

func record(userType domain.UserType) *domain.SessionRecord {
	return &domain.SessionRecord{ID: "u", Email: "u@example.com", UserType: userType}
}

func TestDecideGuardedDashboards(t *testing.T) {
	for _, owner := range domain.UserTypes {
		path := DashboardFor(owner)

		if d := Decide(path, record(owner)); !d.Render || d.Redirect != "" {
			t.Errorf("%s with %s session: got %+v, want render", path, owner, d)
		}
		if d := Decide(path, nil); d.Render || d.Redirect != LoginPath {
			t.Errorf("%s without session: got %+v, want login redirect", path, d)
		}
		for _, other := range domain.UserTypes {
			if other == owner {
				continue
			}
			if d := Decide(path, record(other)); d.Render || d.Redirect != LoginPath {
				t.Errorf("%s with %s session: got %+v, want login redirect", path, other, d)
			}
		}
	}
}

func TestDecidePublicPages(t *testing.T) {
	for _, path := range []string{"/", "/about", "/products", "/feedback", "/contact", "/terms", "/login", "/signup"} {
		if d := Decide(path, nil); !d.Render {
			t.Errorf("%s should render without a session, got %+v", path, d)
		}
		if d := Decide(path, record(domain.UserTypeAdmin)); !d.Render {
			t.Errorf("%s should render with a session, got %+v", path, d)
		}
	}
}

func TestDecideDashboardAlias(t *testing.T) {
	cases := []struct {
		name   string
		record *domain.SessionRecord
		want   string
	}{
		{"vendor", record(domain.UserTypeVendor), "/dashboard/vendor"},
		{"delivery", record(domain.UserTypeDeliveryPartner), "/dashboard/delivery"},
		{"no session", nil, "/login"},
		{"unknown role", record("chef"), "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(DashboardPath, tc.record)
			if d.Render || d.Redirect != tc.want {
				t.Fatalf("got %+v, want redirect to %s", d, tc.want)
			}
		})
	}
}

func TestNoHierarchicalMatching(t *testing.T) {
	if d := Decide("/dashboard/vendor/orders", nil); !d.Render {
		t.Fatal("paths outside the table are not gated")
	}
	if d := Decide("/dashboard/customer", record(domain.UserTypeAdmin)); d.Render {
		t.Fatal("admin must not inherit other dashboards")
	}
}
