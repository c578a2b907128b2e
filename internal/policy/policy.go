// Package policy implements the Policy Engine: named, declarative grants of
// operations to glob-matched paths, with an attached risk level. The engine
// is the last line of defense in the pipeline — earlier stages can only
// remove operations from consideration, never grant beyond what a policy
// positively allows.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/pathvalidate"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

// Policy is a named grant: paths matching any of Patterns may perform any
// operation in Operations, at the given Risk level.
type Policy struct {
	Name        string
	Patterns    []string    `yaml:"patterns"`
	Operations  []fsop.Type `yaml:"operations"`
	Risk        risk.Level  `yaml:"risk_level"`
	Description string      `yaml:"description,omitempty"`
}

// Allows reports whether op is in the policy's operation list.
func (p *Policy) Allows(op fsop.Type) bool {
	for _, o := range p.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// compiledPolicy pairs a Policy with its precompiled glob set.
type compiledPolicy struct {
	policy *Policy
	globs  *pathvalidate.GlobSet
}

// Engine matches operations against a fixed, compiled set of policies.
// Policies and their compiled glob sets are immutable after construction,
// so concurrent Evaluate calls require no locking.
type Engine struct {
	compiled []compiledPolicy
}

// NewEngine compiles the given named policies into an Engine. Policies are
// ordered by name for deterministic "matched policies" reporting.
func NewEngine(policies map[string]*Policy) *Engine {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Engine{}
	for _, name := range names {
		p := policies[name]
		e.compiled = append(e.compiled, compiledPolicy{
			policy: p,
			globs:  pathvalidate.CompileGlobSet(p.Patterns),
		})
	}
	return e
}

// Decision is the outcome of evaluating one operation against the engine.
type Decision struct {
	Allowed        bool
	PolicyName     string     // the policy that granted, when Allowed
	Risk           risk.Level // risk of the granting/highest matching policy
	MatchedPolicies []string
	Reason         string
}

// Evaluate implements §4.5: collect policies whose patterns match path; if
// none match, deny; among matches, if any lists op, allow with that
// policy's name and risk; otherwise deny naming the non-granting matches.
func (e *Engine) Evaluate(op fsop.Type, path string) Decision {
	var matched []compiledPolicy
	var matchedNames []string
	for _, cp := range e.compiled {
		if cp.globs.Match(path) {
			matched = append(matched, cp)
			matchedNames = append(matchedNames, cp.policy.Name)
		}
	}

	if len(matched) == 0 {
		return Decision{
			Allowed: false,
			Reason:  "no policy matches path for this op",
		}
	}

	var highestRisk risk.Level = risk.Low
	for _, cp := range matched {
		highestRisk = risk.Max(highestRisk, cp.policy.Risk)
	}

	for _, cp := range matched {
		if cp.policy.Allows(op) {
			return Decision{
				Allowed:         true,
				PolicyName:      cp.policy.Name,
				Risk:            cp.policy.Risk,
				MatchedPolicies: matchedNames,
			}
		}
	}

	return Decision{
		Allowed:         false,
		Risk:            highestRisk,
		MatchedPolicies: matchedNames,
		Reason: fmt.Sprintf("path matches policies [%s] but none allow %s",
			strings.Join(matchedNames, ", "), op),
	}
}

// AnyAllows reports whether any policy matching path grants op — used by
// the Security Manager's write/delete gating helpers (§4.6), which only
// need a yes/no answer, not the full Decision.
func (e *Engine) AnyAllows(op fsop.Type, path string) bool {
	for _, cp := range e.compiled {
		if cp.globs.Match(path) && cp.policy.Allows(op) {
			return true
		}
	}
	return false
}
