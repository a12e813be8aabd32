package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/config"
	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/session"
)

const (
	scopeKey  = "session_scope"
	recordKey = "session_record"
)

// SessionMiddleware resolves the scope cookie and loads the scope's
// session record for downstream handlers.
type SessionMiddleware struct {
	tokens *TokenManager
	store  *session.Store
	cookie config.SessionConfig
	logger *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, store *session.Store, cookie config.SessionConfig, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{tokens: tokens, store: store, cookie: cookie, logger: logger}
}

// Handle never rejects a request: a missing or invalid cookie just means
// the visitor is logged out.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	value := c.Cookies(m.cookie.CookieName)
	if value == "" {
		return c.Next()
	}

	scope, err := m.tokens.ParseToken(value)
	if err != nil {
		m.logger.Debug("ignoring invalid scope cookie", zap.Error(err))
		return c.Next()
	}

	c.Locals(scopeKey, scope)
	if record, ok := m.store.Read(c.UserContext(), scope); ok {
		c.Locals(recordKey, record)
	}
	return c.Next()
}

// EnsureScope returns the caller's scope, issuing a new one and setting the
// cookie when the caller has none.
func (m *SessionMiddleware) EnsureScope(c *fiber.Ctx) (domain.Scope, error) {
	if scope, ok := ScopeFromContext(c); ok {
		return scope, nil
	}

	token, err := m.tokens.NewScope()
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookie.CookieName,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HTTPOnly: true,
		Secure:   m.cookie.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(scopeKey, token.Scope)
	return token.Scope, nil
}

// ForgetRecord drops the record loaded for this request after a logout.
func ForgetRecord(c *fiber.Ctx) {
	c.Locals(recordKey, nil)
}

// ScopeFromContext retrieves the caller's scope.
func ScopeFromContext(c *fiber.Ctx) (domain.Scope, bool) {
	scope, ok := c.Locals(scopeKey).(domain.Scope)
	return scope, ok && scope != ""
}

// RecordFromContext retrieves the caller's session record.
func RecordFromContext(c *fiber.Ctx) (*domain.SessionRecord, bool) {
	record, ok := c.Locals(recordKey).(*domain.SessionRecord)
	return record, ok && record != nil
}
