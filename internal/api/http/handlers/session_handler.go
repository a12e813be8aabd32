package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/api/dto"
	"github.com/shubh1628/Dabba-delight/internal/auth"
	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/events"
	"github.com/shubh1628/Dabba-delight/internal/session"
	apperrors "github.com/shubh1628/Dabba-delight/pkg/util/errorutil"
)

// A disconnected client is noticed on the next heartbeat write.
const defaultHeartbeat = 10 * time.Second

var navLinks = []dto.NavLink{
	{Name: "Home", Path: "/"},
	{Name: "About Us", Path: "/about"},
	{Name: "Products", Path: "/products"},
	{Name: "Feedback", Path: "/feedback"},
	{Name: "Contact Us", Path: "/contact"},
	{Name: "Terms & Conditions", Path: "/terms"},
}

// SessionHandler exposes the current session, the navbar model and the
// change-signal stream.
type SessionHandler struct {
	store     *session.Store
	sessions  *auth.SessionMiddleware
	logger    *zap.Logger
	heartbeat time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewSessionHandler constructs handler.
func NewSessionHandler(store *session.Store, sessions *auth.SessionMiddleware, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		store:     store,
		sessions:  sessions,
		logger:    logger,
		heartbeat: defaultHeartbeat,
		done:      make(chan struct{}),
	}
}

// Close ends every open event stream. Call it before shutting the app down,
// since open streams hold their connections.
func (h *SessionHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	record, _ := auth.RecordFromContext(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"session": record}})
}

// Nav handles GET /api/nav. The optional path query marks the active link.
func (h *SessionHandler) Nav(c *fiber.Ctx) error {
	record, _ := auth.RecordFromContext(c)
	return c.JSON(fiber.Map{"data": BuildNav(c.Query("path"), record)})
}

// BuildNav assembles the navbar model for a visitor on currentPath.
func BuildNav(currentPath string, record *domain.SessionRecord) dto.NavResponse {
	links := make([]dto.NavLink, 0, len(navLinks))
	for _, link := range navLinks {
		link.Active = currentPath == link.Path
		links = append(links, link)
	}

	nav := dto.NavResponse{Links: links, LoggedIn: record != nil}
	if record == nil {
		nav.Login = &dto.NavLink{Name: "Login", Path: auth.LoginPath, Active: currentPath == auth.LoginPath}
		return nav
	}
	nav.Dashboard = &dto.NavLink{
		Name:   "Dashboard",
		Path:   auth.DashboardFor(record.UserType),
		Active: strings.HasPrefix(currentPath, auth.DashboardPath),
	}
	nav.CanLogout = true
	return nav
}

// Events handles GET /api/session/events, a server-sent event stream that
// carries one message per change to the caller's session.
func (h *SessionHandler) Events(c *fiber.Ctx) error {
	scope, err := h.sessions.EnsureScope(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	signals := make(chan events.Event, 16)
	unsubscribe := h.store.Subscribe(func(_ context.Context, event events.Event) {
		if event.Scope != scope {
			return
		}
		select {
		case signals <- event:
		default:
			h.logger.Warn("dropping change signal for slow stream", zap.String("scope", string(scope)))
		}
	})

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		if _, err := w.WriteString(": connected\n\n"); err != nil || w.Flush() != nil {
			return
		}
		for {
			select {
			case event := <-signals:
				if _, err := w.Write(FormatSignal(event)); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
			case <-h.done:
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

type signalPayload struct {
	Action    events.SessionAction `json:"action"`
	Timestamp time.Time            `json:"timestamp"`
}

// FormatSignal encodes a change signal as one server-sent event.
func FormatSignal(event events.Event) []byte {
	data, _ := json.Marshal(signalPayload{Action: event.Action, Timestamp: event.Timestamp})

	var b strings.Builder
	b.WriteString("id: ")
	b.WriteString(event.ID)
	b.WriteString("\nevent: ")
	b.WriteString(string(events.EventSessionChanged))
	b.WriteString("\ndata: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String())
}
