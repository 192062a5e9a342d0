package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute, nil)
}

func TestGetMissThenHit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "appointments", "status=pending"); err != ErrMiss {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	payload := []byte(`[{"id":"a1"}]`)
	if err := s.Set(ctx, "appointments", "status=pending", payload); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "appointments", "status=pending")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, got)
	}
}

func TestInvalidateDiscardsAllFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "appointments", "", []byte(`all`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "appointments", "status=confirmed", []byte(`confirmed`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "services", "", []byte(`services`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Invalidate(ctx, "appointments"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if _, err := s.Get(ctx, "appointments", ""); err != ErrMiss {
		t.Fatalf("expected unfiltered appointments to be discarded, got %v", err)
	}
	if _, err := s.Get(ctx, "appointments", "status=confirmed"); err != ErrMiss {
		t.Fatalf("expected filtered appointments to be discarded, got %v", err)
	}
	// Other entities keep their cached results.
	if _, err := s.Get(ctx, "services", ""); err != nil {
		t.Fatalf("expected services to survive, got %v", err)
	}
}

func TestInvalidateDiscardsDependentComposites(t *testing.T) {
	s := newTestStore(t)
	s.DependOn("site", "settings", "services", "gallery")
	ctx := context.Background()

	if err := s.Set(ctx, "site", "", []byte(`payload`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "settings", "", []byte(`settings`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "customers", "", []byte(`customers`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Invalidate(ctx, "settings"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if _, err := s.Get(ctx, "settings", ""); err != ErrMiss {
		t.Fatalf("expected settings to be discarded, got %v", err)
	}
	if _, err := s.Get(ctx, "site", ""); err != ErrMiss {
		t.Fatalf("expected dependent site payload to be discarded, got %v", err)
	}

	// Entities the composite does not depend on leave it alone.
	if err := s.Set(ctx, "site", "", []byte(`payload`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Invalidate(ctx, "customers"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := s.Get(ctx, "site", ""); err != nil {
		t.Fatalf("expected site payload to survive, got %v", err)
	}
}

func TestDisabledStoreIsPassThrough(t *testing.T) {
	s := New(nil, time.Minute, nil)
	ctx := context.Background()

	if s.Enabled() {
		t.Fatal("expected store without redis to be disabled")
	}
	if _, err := s.Get(ctx, "gallery", ""); err != ErrMiss {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
	if err := s.Set(ctx, "gallery", "", []byte(`x`)); err != nil {
		t.Fatalf("expected no-op set, got %v", err)
	}
	if err := s.Invalidate(ctx, "gallery"); err != nil {
		t.Fatalf("expected no-op invalidate, got %v", err)
	}
}
