package hook_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/xraph/qyu/hook"
	"github.com/xraph/qyu/ratelimit"
)

// ──────────────────────────────────────────────────
// Test hooks
// ──────────────────────────────────────────────────

// allEventsHook implements every event for testing.
type allEventsHook struct {
	calls []string
}

func (h *allEventsHook) Name() string { return "all-events" }

func (h *allEventsHook) OnJobDone(_ context.Context, _ int64, _ any) error {
	h.calls = append(h.calls, "OnJobDone")
	return nil
}

func (h *allEventsHook) OnJobFailed(_ context.Context, _ int64, _ error) error {
	h.calls = append(h.calls, "OnJobFailed")
	return nil
}

func (h *allEventsHook) OnDrain(_ context.Context) error {
	h.calls = append(h.calls, "OnDrain")
	return nil
}

func (h *allEventsHook) OnStats(_ context.Context, _ ratelimit.Stats) error {
	h.calls = append(h.calls, "OnStats")
	return nil
}

// doneOnlyHook only implements JobDone.
type doneOnlyHook struct {
	calls int
}

func (h *doneOnlyHook) Name() string { return "done-only" }

func (h *doneOnlyHook) OnJobDone(_ context.Context, _ int64, _ any) error {
	h.calls++
	return nil
}

// failingHook returns errors from every event it implements.
type failingHook struct{}

func (h *failingHook) Name() string { return "failing" }

func (h *failingHook) OnJobDone(_ context.Context, _ int64, _ any) error {
	return errors.New("boom")
}

func (h *failingHook) OnDrain(_ context.Context) error {
	return errors.New("drain boom")
}

// ──────────────────────────────────────────────────
// Registry
// ──────────────────────────────────────────────────

func TestRegistry_EmitsToImplementers(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	all := &allEventsHook{}
	done := &doneOnlyHook{}
	r.Register(all)
	r.Register(done)

	ctx := context.Background()
	r.EmitJobDone(ctx, 1, "v")
	r.EmitJobFailed(ctx, 2, errors.New("x"))
	r.EmitDrain(ctx)
	r.EmitStats(ctx, ratelimit.Stats{JobsPerSecond: 1})

	want := []string{"OnJobDone", "OnJobFailed", "OnDrain", "OnStats"}
	if len(all.calls) != len(want) {
		t.Fatalf("all-events calls = %v, want %v", all.calls, want)
	}
	for i := range want {
		if all.calls[i] != want[i] {
			t.Fatalf("call %d = %s, want %s", i, all.calls[i], want[i])
		}
	}

	if done.calls != 1 {
		t.Fatalf("done-only calls = %d, want 1", done.calls)
	}
}

func TestRegistry_ErrorsAreSwallowed(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	r.Register(&failingHook{})
	after := &doneOnlyHook{}
	r.Register(after)

	// Must not panic and must still reach later hooks.
	r.EmitJobDone(context.Background(), 1, nil)
	r.EmitDrain(context.Background())

	if after.calls != 1 {
		t.Fatalf("hook after failing one not notified, calls = %d", after.calls)
	}
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	r := hook.NewRegistry(slog.Default())

	var order []string
	r.Register(&hook.Funcs{HookName: "first", Done: func(int64, any) {
		order = append(order, "first")
	}})
	r.Register(&hook.Funcs{HookName: "second", Done: func(int64, any) {
		order = append(order, "second")
	}})

	r.EmitJobDone(context.Background(), 1, nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order = %v, want [first second]", order)
	}
}

// ──────────────────────────────────────────────────
// Funcs adapter
// ──────────────────────────────────────────────────

func TestFuncs_NilFieldsAreNoops(t *testing.T) {
	r := hook.NewRegistry(slog.Default())
	var drains int
	r.Register(&hook.Funcs{Drain: func() { drains++ }})

	ctx := context.Background()
	r.EmitJobDone(ctx, 1, nil) // Done field nil: no-op, no panic
	r.EmitDrain(ctx)
	r.EmitDrain(ctx)

	if drains != 2 {
		t.Fatalf("drains = %d, want 2", drains)
	}
}

func TestFuncs_DefaultName(t *testing.T) {
	f := &hook.Funcs{}
	if f.Name() != "funcs" {
		t.Fatalf("Name = %q, want %q", f.Name(), "funcs")
	}
	named := &hook.Funcs{HookName: "custom"}
	if named.Name() != "custom" {
		t.Fatalf("Name = %q, want %q", named.Name(), "custom")
	}
}
