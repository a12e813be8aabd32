package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/events"
	"github.com/shubh1628/Dabba-delight/internal/session"
)

// ActivityService logs session changes as they happen.
type ActivityService struct {
	store  *session.Store
	logger *zap.Logger
	stop   func()
}

// NewActivityService creates the service.
func NewActivityService(store *session.Store, logger *zap.Logger) *ActivityService {
	return &ActivityService{store: store, logger: logger}
}

// RegisterHandlers subscribes to session changes. Calling it twice has no
// further effect.
func (a *ActivityService) RegisterHandlers() {
	if a.store == nil || a.stop != nil {
		return
	}
	a.stop = a.store.Subscribe(a.handleSessionChanged)
}

// Close unsubscribes.
func (a *ActivityService) Close() {
	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
}

func (a *ActivityService) handleSessionChanged(ctx context.Context, event events.Event) {
	a.logger.Info("session changed",
		zap.String("event_id", event.ID),
		zap.String("action", string(event.Action)),
		zap.String("scope", maskScope(string(event.Scope))),
		zap.Time("at", event.Timestamp))
}

func maskScope(scope string) string {
	if len(scope) <= 8 {
		return "***"
	}
	return scope[:8] + "***"
}
