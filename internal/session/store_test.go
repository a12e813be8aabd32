package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shubh1628/Dabba-delight/internal/domain"
	"github.com/shubh1628/Dabba-delight/internal/events"
)

func newTestStore(backend Backend) *Store {
	return NewStore(backend, nil, nil, "")
}

func sampleRecord() *domain.SessionRecord {
	return &domain.SessionRecord{
		ID:        "7f1d3c2a-0000-4000-8000-000000000001",
		Email:     "cook@example.com",
		UserType:  domain.UserTypeHousewife,
		LoginTime: time.Date(2024, 5, 17, 8, 30, 15, 250000000, time.UTC),
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	want := sampleRecord()
	if err := store.Write(ctx, "scope-1", want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, ok := store.Read(ctx, "scope-1")
	if !ok {
		t.Fatal("expected a session after write")
	}
	if got.ID != want.ID || got.Email != want.Email || got.UserType != want.UserType || !got.LoginTime.Equal(want.LoginTime) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}

	stored, err := backend.Get(ctx, "dabbaDelightUser:scope-1")
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	reencoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(stored, reencoded) {
		t.Fatalf("serialized form changed:\nstored %s\nreread %s", stored, reencoded)
	}
	if !bytes.Contains(stored, []byte(`"loginTime":"2024-05-17T08:30:15.250Z"`)) {
		t.Fatalf("unexpected layout %s", stored)
	}
}

func TestReadFailsSoft(t *testing.T) {
	backend := NewMemoryBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	if _, ok := store.Read(ctx, "missing"); ok {
		t.Fatal("missing scope should read as no session")
	}
	if _, ok := store.Read(ctx, ""); ok {
		t.Fatal("empty scope should read as no session")
	}

	for name, raw := range map[string]string{
		"garbage": "{not json",
		"null":    "null",
		"array":   `["customer"]`,
	} {
		_ = backend.Set(ctx, "dabbaDelightUser:"+name, []byte(raw))
		if rec, ok := store.Read(ctx, domain.Scope(name)); ok {
			t.Fatalf("%s: expected no session, got %+v", name, rec)
		}
	}
}

func TestStoredRecordServedBackUnchanged(t *testing.T) {
	backend := NewMemoryBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	raw := []byte(`{"id":"9","email":"rider@example.com","userType":"deliveryPartner","loginTime":"2024-01-02T03:04:05.120Z"}`)
	_ = backend.Set(ctx, "dabbaDelightUser:s", raw)

	rec, ok := store.Read(ctx, "s")
	if !ok {
		t.Fatal("expected a session")
	}
	reencoded, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(raw, reencoded) {
		t.Fatalf("record changed:\nstored %s\nserved %s", raw, reencoded)
	}
}

func TestReadKeepsUnknownUserType(t *testing.T) {
	backend := NewMemoryBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	_ = backend.Set(ctx, "dabbaDelightUser:s", []byte(`{"id":"1","email":"x@y.z","userType":"chef","loginTime":"2024-01-01T00:00:00Z"}`))
	rec, ok := store.Read(ctx, "s")
	if !ok || rec.UserType != "chef" {
		t.Fatalf("expected record with raw user type, got %+v ok=%v", rec, ok)
	}
}

type failingBackend struct{ MemoryBackend }

func (f *failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (f *failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestBackendErrors(t *testing.T) {
	store := newTestStore(&failingBackend{})
	ctx := context.Background()

	if _, ok := store.Read(ctx, "s"); ok {
		t.Fatal("backend failure should read as no session")
	}

	signals := 0
	store.Subscribe(func(context.Context, events.Event) { signals++ })
	if err := store.Write(ctx, "s", sampleRecord()); err == nil {
		t.Fatal("expected write error")
	}
	if signals != 0 {
		t.Fatal("failed write must not emit a change signal")
	}
}

func TestWriteValidatesArguments(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	ctx := context.Background()
	if err := store.Write(ctx, "", sampleRecord()); err == nil {
		t.Fatal("expected error for empty scope")
	}
	if err := store.Write(ctx, "s", nil); err == nil {
		t.Fatal("expected error for nil record")
	}
	if err := store.Clear(ctx, ""); err == nil {
		t.Fatal("expected error for empty scope")
	}
}

func TestChangeSignals(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	ctx := context.Background()

	var received []events.Event
	unsubscribe := store.Subscribe(func(_ context.Context, e events.Event) {
		received = append(received, e)
	})

	if err := store.Write(ctx, "s", sampleRecord()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Clear(ctx, "s"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(received))
	}
	if received[0].Action != events.SessionActionWrite || received[1].Action != events.SessionActionClear {
		t.Fatalf("unexpected actions %v, %v", received[0].Action, received[1].Action)
	}
	for _, e := range received {
		if e.Type != events.EventSessionChanged || e.Scope != "s" {
			t.Fatalf("unexpected event %+v", e)
		}
	}
	if _, ok := store.Read(ctx, "s"); ok {
		t.Fatal("expected no session after clear")
	}

	unsubscribe()
	_ = store.Write(ctx, "s", sampleRecord())
	if len(received) != 2 {
		t.Fatal("unsubscribed handler should not be called")
	}
}

func TestWriteReplacesPreviousRecord(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	ctx := context.Background()

	first := sampleRecord()
	second := sampleRecord()
	second.ID = "other"
	second.UserType = domain.UserTypeVendor

	_ = store.Write(ctx, "s", first)
	_ = store.Write(ctx, "s", second)

	got, ok := store.Read(ctx, "s")
	if !ok || got.ID != "other" || got.UserType != domain.UserTypeVendor {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestRunWithoutBroadcasterStopsOnCancel(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.Run(ctx) }()

	select {
	case <-store.Ready():
	case <-time.After(time.Second):
		t.Fatal("store never became ready")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}
