package policy

import (
	"sort"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

// ComplianceTag labels an audit event with the external framework item it
// maps to, so a reviewer of the audit trail understands why an operation
// was classified as risky without re-deriving it from the policy.
type ComplianceTag string

// complianceRule is one entry in the embedded annotation table: operations
// at or above MinRisk get tagged with Tags.
type complianceRule struct {
	Op      fsop.Type
	MinRisk risk.Level
	Tags    []ComplianceTag
}

// complianceTable is grounded on the teacher's taxonomy package, which
// loads OWASP/MITRE style standard mappings from YAML. Here the mapping is
// small and fixed enough to embed directly rather than load from disk —
// there is no equivalent of the teacher's per-weakness taxonomy corpus in
// this domain, just a handful of operation/risk combinations.
var complianceTable = []complianceRule{
	{Op: fsop.Delete, MinRisk: risk.High, Tags: []ComplianceTag{"owasp-llm:LLM06", "excessive-agency"}},
	{Op: fsop.Write, MinRisk: risk.Critical, Tags: []ComplianceTag{"owasp-llm:LLM06", "excessive-agency"}},
	{Op: fsop.Move, MinRisk: risk.High, Tags: []ComplianceTag{"owasp-llm:LLM06"}},
	{Op: fsop.Read, MinRisk: risk.Critical, Tags: []ComplianceTag{"owasp-llm:LLM02", "sensitive-info-disclosure"}},
}

// Annotate returns the compliance tags (if any) that apply to an operation
// of op evaluated at risk level r. Purely advisory: it never changes an
// allow/deny decision, only what the audit trail records about it.
func Annotate(op fsop.Type, r risk.Level) []string {
	seen := make(map[ComplianceTag]bool)
	var tags []string
	for _, rule := range complianceTable {
		if rule.Op != op {
			continue
		}
		if !r.AtLeast(rule.MinRisk) {
			continue
		}
		for _, t := range rule.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, string(t))
			}
		}
	}
	sort.Strings(tags)
	return tags
}
