package approval

import (
	"context"
	"testing"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
)

func TestGate_DisabledNeverRequiresApproval(t *testing.T) {
	g := New(false, []fsop.Type{fsop.Delete}, 30)
	if g.RequiresApproval(fsop.Delete) {
		t.Fatal("disabled gate must never require approval")
	}
}

func TestGate_EnabledRequiresApprovalOnlyForListedOps(t *testing.T) {
	g := New(true, []fsop.Type{fsop.Delete}, 30)
	if !g.RequiresApproval(fsop.Delete) {
		t.Fatal("expected delete to require approval")
	}
	if g.RequiresApproval(fsop.Read) {
		t.Fatal("read was not listed, should not require approval")
	}
}

func TestGate_AskDeniesNonInteractiveSession(t *testing.T) {
	g := New(true, []fsop.Type{fsop.Delete}, 1)
	d := g.Ask(context.Background(), Request{OpType: fsop.Delete, Path: "/tmp/x"})
	if d != Denied {
		t.Fatalf("expected auto-deny in non-interactive test environment, got %v", d)
	}
}
