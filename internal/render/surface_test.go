package render

import (
	"errors"
	"testing"

	"github.com/smallbiznis/storefront/internal/reconcile"
)

func sampleOverlay(key string) reconcile.LineOverlay {
	return reconcile.LineOverlay{
		LineKey:               key,
		OriginalUnitPrice:     "100.00",
		SubscriptionUnitPrice: "60.00",
		OriginalLineTotal:     "100.00",
		SubscriptionLineTotal: "60.00",
	}
}

func TestApplyLineRejectsEmptyKey(t *testing.T) {
	surface := NewMemorySurface()
	err := surface.ApplyLine(reconcile.LineOverlay{})
	if !errors.Is(err, reconcile.ErrOverlayTargetNotFound) {
		t.Fatalf("expected overlay_target_not_found, got %v", err)
	}
}

func TestApplyLineIdenticalIsNoOp(t *testing.T) {
	surface := NewMemorySurface()
	if err := surface.ApplyLine(sampleOverlay("lk1")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before := surface.Mutations()

	if err := surface.ApplyLine(sampleOverlay("lk1")); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if surface.Mutations() != before {
		t.Fatalf("identical overlay must not mutate the surface")
	}

	changed := sampleOverlay("lk1")
	changed.SubscriptionUnitPrice = "59.99"
	if err := surface.ApplyLine(changed); err != nil {
		t.Fatalf("apply changed: %v", err)
	}
	if surface.Mutations() != before+1 {
		t.Fatalf("changed overlay must mutate the surface")
	}
}

func TestApplyTotalIdenticalIsNoOp(t *testing.T) {
	surface := NewMemorySurface()
	total := reconcile.TotalOverlay{OriginalTotal: "300.00", DisplayTotal: "220.00"}

	surface.ApplyTotal(total)
	before := surface.Mutations()
	surface.ApplyTotal(total)
	if surface.Mutations() != before {
		t.Fatalf("identical total must not mutate the surface")
	}
}

func TestClearLinesPrunes(t *testing.T) {
	surface := NewMemorySurface()
	if err := surface.ApplyLine(sampleOverlay("keep")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := surface.ApplyLine(sampleOverlay("stale")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	surface.ApplyTotal(reconcile.TotalOverlay{OriginalTotal: "200.00", DisplayTotal: "120.00"})

	surface.ClearLines(map[string]struct{}{"keep": {}})
	state := surface.Snapshot()
	if _, ok := state.Lines["stale"]; ok {
		t.Fatalf("expected stale overlay pruned")
	}
	if _, ok := state.Lines["keep"]; !ok {
		t.Fatalf("expected kept overlay to remain")
	}
	if state.Total == nil {
		t.Fatalf("total must survive while kept lines exist")
	}

	surface.ClearLines(map[string]struct{}{})
	state = surface.Snapshot()
	if len(state.Lines) != 0 || state.Total != nil {
		t.Fatalf("expected empty surface after full clear")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	surface := NewMemorySurface()
	if err := surface.ApplyLine(sampleOverlay("lk1")); err != nil {
		t.Fatalf("apply: %v", err)
	}

	state := surface.Snapshot()
	delete(state.Lines, "lk1")

	if _, ok := surface.Snapshot().Lines["lk1"]; !ok {
		t.Fatalf("mutating a snapshot must not affect the surface")
	}
}
