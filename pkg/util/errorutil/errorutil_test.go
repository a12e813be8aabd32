package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain", NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{"wrapped domain", fmt.Errorf("signup: %w", NewRoleMismatch("nope")), "ROLE_MISMATCH", http.StatusForbidden},
		{"fiber", fiber.NewError(http.StatusBadRequest, "invalid payload"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"generic", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			if de.Code != tc.code || de.HTTPStatus != tc.status {
				t.Fatalf("got %s/%d, want %s/%d", de.Code, de.HTTPStatus, tc.code, tc.status)
			}
		})
	}
	if ToDomainError(nil) != nil {
		t.Fatal("nil error should map to nil")
	}
}

func TestWithTitleKeepsOriginal(t *testing.T) {
	base := NewValidationError("Passwords do not match.", nil)
	titled := WithTitle(base, "Signup Failed")

	de := ToDomainError(titled)
	if de.Title != "Signup Failed" || de.Message != "Passwords do not match." {
		t.Fatalf("unexpected %+v", de)
	}
	if ToDomainError(base).Title != "" {
		t.Fatal("WithTitle must not mutate the original error")
	}
	if WithTitle(nil, "x") != nil {
		t.Fatal("nil stays nil")
	}
}
