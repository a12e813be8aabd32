package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/events"
)

// DefaultKeyPrefix is the storage key under which session records live.
const DefaultKeyPrefix = "dabbaDelightUser"

// ChangeHandler observes session change signals.
type ChangeHandler func(ctx context.Context, event events.Event)

// Store holds one Session Record per scope. Reads never fail: missing,
// unreadable or malformed values all mean "no session". Every Write and
// Clear emits exactly one change signal to each subscriber, whichever
// process performed the mutation.
type Store struct {
	backend    Backend
	dispatcher events.Dispatcher
	logger     *zap.Logger
	prefix     string
	origin     string
	now        func() time.Time

	readyOnce sync.Once
	ready     chan struct{}
}

// NewStore builds a store over backend.
func NewStore(backend Backend, dispatcher events.Dispatcher, logger *zap.Logger, prefix string) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		backend:    backend,
		dispatcher: dispatcher,
		logger:     logger,
		prefix:     prefix,
		origin:     uuid.NewString(),
		now:        time.Now,
		ready:      make(chan struct{}),
	}
}

// ChannelName returns the pub/sub channel for change signals under prefix.
func ChannelName(prefix string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + ":changed"
}

// Read returns the record stored for scope.
func (s *Store) Read(ctx context.Context, scope domain.Scope) (*domain.SessionRecord, bool) {
	if scope == "" {
		return nil, false
	}

	raw, err := s.backend.Get(ctx, s.key(scope))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("session read failed", zap.String("scope", string(scope)), zap.Error(err))
		}
		return nil, false
	}

	var record *domain.SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil || record == nil {
		s.logger.Debug("discarding malformed session record", zap.String("scope", string(scope)), zap.Error(err))
		return nil, false
	}
	return record, true
}

// Write replaces the record stored for scope.
func (s *Store) Write(ctx context.Context, scope domain.Scope, record *domain.SessionRecord) error {
	if scope == "" {
		return errors.New("session: empty scope")
	}
	if record == nil {
		return errors.New("session: nil record")
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.backend.Set(ctx, s.key(scope), raw); err != nil {
		return err
	}

	s.emit(ctx, scope, events.SessionActionWrite)
	return nil
}

// Clear removes the record stored for scope.
func (s *Store) Clear(ctx context.Context, scope domain.Scope) error {
	if scope == "" {
		return errors.New("session: empty scope")
	}
	if err := s.backend.Delete(ctx, s.key(scope)); err != nil {
		return err
	}

	s.emit(ctx, scope, events.SessionActionClear)
	return nil
}

// Subscribe registers handler for change signals of every scope.
func (s *Store) Subscribe(handler ChangeHandler) (unsubscribe func()) {
	return s.dispatcher.Subscribe(events.EventSessionChanged, func(ctx context.Context, event events.Event) error {
		handler(ctx, event)
		return nil
	})
}

// Ready is closed once Run is relaying signals from other processes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Run relays change signals published by other processes to local
// subscribers until ctx is done. Signals this store published itself were
// already delivered locally and are dropped.
func (s *Store) Run(ctx context.Context) error {
	broadcaster, ok := s.backend.(Broadcaster)
	if !ok {
		s.markReady()
		<-ctx.Done()
		return nil
	}

	return broadcaster.Listen(ctx, s.markReady, func(payload []byte) {
		var event events.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			s.logger.Warn("discarding malformed change signal", zap.Error(err))
			return
		}
		if event.Origin == s.origin {
			return
		}
		_ = s.dispatcher.Publish(ctx, event)
	})
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

func (s *Store) emit(ctx context.Context, scope domain.Scope, action events.SessionAction) {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionChanged,
		Scope:     scope,
		Action:    action,
		Origin:    s.origin,
		Timestamp: s.now().UTC(),
	}

	_ = s.dispatcher.Publish(ctx, event)

	broadcaster, ok := s.backend.(Broadcaster)
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("encode change signal", zap.Error(err))
		return
	}
	if err := broadcaster.Publish(ctx, payload); err != nil {
		s.logger.Warn("broadcast change signal", zap.String("scope", string(scope)), zap.Error(err))
	}
}

func (s *Store) key(scope domain.Scope) string {
	return s.prefix + ":" + string(scope)
}
