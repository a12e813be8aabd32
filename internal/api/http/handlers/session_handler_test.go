package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/events"
)

func TestFormatSignal(t *testing.T) {
	event := events.Event{
		ID:        "evt-1",
		Type:      events.EventSessionChanged,
		Scope:     "secret-scope",
		Action:    events.SessionActionClear,
		Origin:    "instance-a",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	got := string(FormatSignal(event))
	want := "id: evt-1\nevent: dabbaUserChanged\ndata: {\"action\":\"clear\",\"timestamp\":\"2024-01-02T03:04:05Z\"}\n\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if strings.Contains(got, "secret-scope") || strings.Contains(got, "instance-a") {
		t.Fatal("scope and origin must not leak to the client")
	}
}

func TestBuildNavAnonymous(t *testing.T) {
	nav := BuildNav("/login", nil)
	if nav.LoggedIn || nav.CanLogout || nav.Dashboard != nil {
		t.Fatalf("unexpected anonymous nav %+v", nav)
	}
	if nav.Login == nil || !nav.Login.Active {
		t.Fatalf("login link should be active on /login: %+v", nav.Login)
	}
	if len(nav.Links) != 6 {
		t.Fatalf("expected 6 public links, got %d", len(nav.Links))
	}
	for _, link := range nav.Links {
		if link.Active {
			t.Fatalf("%s should not be active", link.Path)
		}
	}
}

func TestBuildNavLoggedIn(t *testing.T) {
	nav := BuildNav("/products", &domain.SessionRecord{UserType: domain.UserTypeHousewife})
	if !nav.LoggedIn || !nav.CanLogout || nav.Login != nil {
		t.Fatalf("unexpected nav %+v", nav)
	}
	if nav.Dashboard.Path != "/dashboard/housewife" || nav.Dashboard.Active {
		t.Fatalf("unexpected dashboard link %+v", nav.Dashboard)
	}
	active := 0
	for _, link := range nav.Links {
		if link.Active {
			active++
			if link.Path != "/products" {
				t.Fatalf("wrong active link %s", link.Path)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active link, got %d", active)
	}

	unknown := BuildNav("/", &domain.SessionRecord{UserType: "chef"})
	if unknown.Dashboard.Path != "/" {
		t.Fatalf("unknown role should link home, got %s", unknown.Dashboard.Path)
	}
}
