package policy

import (
	"testing"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

func TestEngine_NoMatchDenies(t *testing.T) {
	e := NewEngine(map[string]*Policy{
		"rust": {Name: "rust", Patterns: []string{"**/*.rs"}, Operations: []fsop.Type{fsop.Read, fsop.Write}, Risk: risk.Low},
	})
	d := e.Evaluate(fsop.Read, "/home/u/project/a.txt")
	if d.Allowed {
		t.Fatal("expected deny when no policy matches")
	}
	if d.Reason == "" {
		t.Fatal("expected a reason")
	}
}

func TestEngine_MatchGrantsOp(t *testing.T) {
	e := NewEngine(map[string]*Policy{
		"rust": {Name: "rust", Patterns: []string{"**/*.rs"}, Operations: []fsop.Type{fsop.Read, fsop.Write}, Risk: risk.Low},
	})
	d := e.Evaluate(fsop.Write, "/home/u/project/src/a.rs")
	if !d.Allowed || d.PolicyName != "rust" {
		t.Fatalf("expected allow via rust policy, got %+v", d)
	}
}

func TestEngine_MatchButOpNotGrantedDenies(t *testing.T) {
	e := NewEngine(map[string]*Policy{
		"rust": {Name: "rust", Patterns: []string{"**/*.rs"}, Operations: []fsop.Type{fsop.Read}, Risk: risk.Low},
	})
	d := e.Evaluate(fsop.Delete, "/home/u/project/src/a.rs")
	if d.Allowed {
		t.Fatal("expected deny: policy matches but does not grant delete")
	}
	if len(d.MatchedPolicies) != 1 || d.MatchedPolicies[0] != "rust" {
		t.Fatalf("expected matched policies to include rust, got %v", d.MatchedPolicies)
	}
}

func TestEngine_HighestRiskAmongMatches(t *testing.T) {
	e := NewEngine(map[string]*Policy{
		"broad":    {Name: "broad", Patterns: []string{"**/*.rs"}, Operations: []fsop.Type{fsop.Read}, Risk: risk.Low},
		"critical": {Name: "critical", Patterns: []string{"**/*.rs"}, Operations: []fsop.Type{fsop.Read}, Risk: risk.Critical},
	})
	d := e.Evaluate(fsop.Delete, "/p/a.rs")
	if d.Risk != risk.Critical {
		t.Fatalf("expected highest matching risk (critical), got %v", d.Risk)
	}
}
