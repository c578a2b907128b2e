package permission

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/pathvalidate"
	"github.com/gzhole/mcpfsbridge/internal/policy"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

// Mode selects how the Validator treats a path with no matching rule.
type Mode int

const (
	// Strict denies by default when no rule matches. This is the
	// security-hardened default spec.md prefers.
	Strict Mode = iota
	// Permissive allows (at ReadWrite) when no rule matches at all. Test
	// and development tooling only — never the production default.
	Permissive
)

// riskSource pairs a compiled glob set with the risk level it contributes,
// used only for the independent risk-level computation in Evaluate.
type riskSource struct {
	globs *pathvalidate.GlobSet
	risk  risk.Level
}

// Validator holds the ordered rule list (sorted by descending priority) and
// the risk sources derived from configured policies. Both are immutable
// after construction: concurrent Evaluate calls need no locking.
type Validator struct {
	rules       []*Rule
	riskSources []riskSource
	mode        Mode
}

// New builds a Validator from an explicit rule list (already compiled via
// DeriveRules or hand-authored) and the policies used for independent risk
// scoring.
func New(rules []*Rule, policies map[string]*policy.Policy, mode Mode) *Validator {
	sorted := make([]*Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	var sources []riskSource
	for _, p := range policies {
		sources = append(sources, riskSource{
			globs: pathvalidate.CompileGlobSet(p.Patterns),
			risk:  p.Risk,
		})
	}

	return &Validator{rules: sorted, riskSources: sources, mode: mode}
}

// Result is the outcome of evaluating a path against the rule set (§4.4).
type Result struct {
	Allowed        bool
	EffectiveLevel Level
	Matched        []string
	Risk           risk.Level
	Reason         string
	Timestamp      time.Time
}

// Evaluate implements §4.4's algorithm: walk rules in priority order,
// computing each matching rule's contribution (its Level if it grants every
// requested op, else None), track the maximum level seen, then apply the
// strict/permissive decision rule.
func (v *Validator) Evaluate(path string, ops []fsop.Type, now time.Time) Result {
	effective := None
	var matched []string

	anyMatched := false
	for _, r := range v.rules {
		if !r.Enabled || !r.globs.Match(path) {
			continue
		}
		anyMatched = true
		matched = append(matched, r.Description)

		ruleLevel := None
		if r.AllowedOps.ContainsAll(ops...) {
			ruleLevel = r.Level
		}
		if ruleLevel > effective {
			effective = ruleLevel
		}
	}

	riskLevel := risk.Low
	for _, src := range v.riskSources {
		if src.globs.Match(path) {
			riskLevel = risk.Max(riskLevel, src.risk)
		}
	}

	allowed := effective != None && effective.Grants(ops...)
	reason := ""
	if !allowed {
		reason = "no rule grants the requested operations at a sufficient level"
	}

	if v.mode == Permissive && !anyMatched {
		effective = ReadWrite
		allowed = true
		reason = ""
	}

	return Result{
		Allowed:        allowed,
		EffectiveLevel: effective,
		Matched:        matched,
		Risk:           riskLevel,
		Reason:         reason,
		Timestamp:      now,
	}
}

// ParentLevel walks up the directory chain from path looking for the first
// ancestor whose matching rule's AllowedOps includes op. This is a
// debugging/coverage auxiliary query (§4.4) — it is not part of normal
// evaluation.
func (v *Validator) ParentLevel(path string, op fsop.Type) (Level, bool) {
	dir := filepath.Dir(path)
	for {
		for _, r := range v.rules {
			if r.Enabled && r.globs.Match(dir) && r.AllowedOps.Contains(op) {
				return r.Level, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return None, false
		}
		dir = parent
	}
}
