package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shubh1628/Dabba-delight/internal/events"
)

func newRedisBackend(t *testing.T, mr *miniredis.Miniredis) *RedisBackend {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBackend(client, ChannelName(DefaultKeyPrefix))
}

func TestRedisBackendGetSetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	backend := newRedisBackend(t, mr)
	ctx := context.Background()

	if _, err := backend.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := backend.Set(ctx, "k", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := backend.Get(ctx, "k")
	if err != nil || string(val) != `{"id":"1"}` {
		t.Fatalf("get: %q %v", val, err)
	}
	if ttl := mr.TTL("k"); ttl != 0 {
		t.Fatalf("session values must not expire, ttl=%v", ttl)
	}
	if err := backend.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("k") {
		t.Fatal("key should be gone")
	}
}

func TestRedisStoreSharesRecordsAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	writer := NewStore(newRedisBackend(t, mr), nil, nil, "")
	reader := NewStore(newRedisBackend(t, mr), nil, nil, "")

	if err := writer.Write(ctx, "tab", sampleRecord()); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := reader.Read(ctx, "tab")
	if !ok || got.Email != "cook@example.com" {
		t.Fatalf("expected shared record, got %+v ok=%v", got, ok)
	}
}

func TestRedisChangeSignalDeliveredOncePerStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	origin := NewStore(newRedisBackend(t, mr), nil, nil, "")
	peer := NewStore(newRedisBackend(t, mr), nil, nil, "")

	for _, s := range []*Store{origin, peer} {
		s := s
		go func() { _ = s.Run(ctx) }()
		select {
		case <-s.Ready():
		case <-time.After(2 * time.Second):
			t.Fatal("relay never subscribed")
		}
	}

	var originCount, peerCount atomic.Int32
	peerGot := make(chan events.Event, 4)
	origin.Subscribe(func(context.Context, events.Event) { originCount.Add(1) })
	peer.Subscribe(func(_ context.Context, e events.Event) {
		peerCount.Add(1)
		peerGot <- e
	})

	if err := origin.Clear(context.Background(), "tab"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	select {
	case e := <-peerGot:
		if e.Scope != "tab" || e.Action != events.SessionActionClear {
			t.Fatalf("unexpected relayed event %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("peer never received the change signal")
	}

	// Give the origin's own relay time to see (and drop) its echo.
	time.Sleep(200 * time.Millisecond)

	if n := originCount.Load(); n != 1 {
		t.Fatalf("origin subscribers saw %d signals, want 1", n)
	}
	if n := peerCount.Load(); n != 1 {
		t.Fatalf("peer subscribers saw %d signals, want 1", n)
	}
}
