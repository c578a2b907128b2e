package permission

import (
	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/pathvalidate"
	"github.com/gzhole/mcpfsbridge/internal/policy"
)

// Rule is a compiled, prioritized glob pattern paired with a permission
// level and an allowed operation set (§3 PathRule).
type Rule struct {
	Pattern     string
	Level       Level
	AllowedOps  fsop.Set
	Priority    int
	Enabled     bool
	Description string

	globs *pathvalidate.GlobSet
}

// policyDerivedPriority is the uniform priority given to rules derived from
// configured policies, leaving headroom above and below for future
// hand-authored rules (§4.3).
const policyDerivedPriority = 100

// compile precompiles the rule's glob pattern for repeated matching.
func (r *Rule) compile() *Rule {
	r.globs = pathvalidate.CompileGlobSet([]string{r.Pattern})
	return r
}

// Matches reports whether the rule applies to path: it must be enabled,
// its pattern must match, and every op in ops must be in AllowedOps.
func (r *Rule) Matches(path string, ops ...fsop.Type) bool {
	if !r.Enabled {
		return false
	}
	if !r.globs.Match(path) {
		return false
	}
	return r.AllowedOps.ContainsAll(ops...)
}

// DeriveRules builds one PathRule per (policy name, pattern) pair, per the
// table in §4.3: a policy granting delete derives Full, granting write (but
// not delete) derives ReadWrite, granting only read derives ReadOnly,
// anything else derives None. All policy-derived rules share a uniform
// priority, reserving room above for hand-authored rules a future
// configuration format might add.
func DeriveRules(policies map[string]*policy.Policy) []*Rule {
	var rules []*Rule
	for name, p := range policies {
		level := deriveLevel(p)
		ops := fsop.NewSet(p.Operations...)
		for _, pattern := range p.Patterns {
			rules = append(rules, (&Rule{
				Pattern:     pattern,
				Level:       level,
				AllowedOps:  ops,
				Priority:    policyDerivedPriority,
				Enabled:     true,
				Description: "derived from policy " + name,
			}).compile())
		}
	}
	return rules
}

func deriveLevel(p *policy.Policy) Level {
	hasDelete, hasWrite, hasRead := false, false, false
	for _, op := range p.Operations {
		switch op {
		case fsop.Delete:
			hasDelete = true
		case fsop.Write:
			hasWrite = true
		case fsop.Read:
			hasRead = true
		}
	}
	switch {
	case hasDelete:
		return Full
	case hasWrite:
		return ReadWrite
	case hasRead:
		return ReadOnly
	default:
		return None
	}
}
