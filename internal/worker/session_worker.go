package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/service"
	"github.com/shubh1628/Dabba-delight/internal/session"
)

// StartSessionWorkers registers the activity log and starts relaying change
// signals from other instances. The relay stops when ctx is cancelled; the
// returned channel closes once it has.
func StartSessionWorkers(ctx context.Context, store *session.Store, activity *service.ActivityService, logger *zap.Logger) <-chan struct{} {
	if activity != nil {
		activity.RegisterHandlers()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := store.Run(ctx); err != nil {
			logger.Error("session relay stopped", zap.Error(err))
			return
		}
		logger.Info("session relay stopped")
	}()
	return done
}
