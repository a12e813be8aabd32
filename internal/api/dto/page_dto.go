package dto

import "github.com/shubh1628/Dabba-delight/internal/domain"

// PageResponse describes the page rendered for a route.
type PageResponse struct {
	Page    string                `json:"page"`
	Title   string                `json:"title"`
	Path    string                `json:"path"`
	Session *domain.SessionRecord `json:"session,omitempty"`
}

// NavLink is one navbar entry.
type NavLink struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// NavResponse is the navbar model for the current visitor.
type NavResponse struct {
	Links     []NavLink `json:"links"`
	LoggedIn  bool      `json:"loggedIn"`
	Dashboard *NavLink  `json:"dashboard,omitempty"`
	Login     *NavLink  `json:"login,omitempty"`
	CanLogout bool      `json:"canLogout"`
}
