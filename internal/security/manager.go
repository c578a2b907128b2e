// Package security implements the Security Manager (H): the top-level
// orchestrator that composes the Binary Gate, Path Validator, Permission
// Validator, the operation-class switch, the Approval Gate, and the Policy
// Engine for every inbound operation, emitting an audit trail at each
// stage.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/gzhole/mcpfsbridge/internal/approval"
	"github.com/gzhole/mcpfsbridge/internal/audit"
	"github.com/gzhole/mcpfsbridge/internal/binarygate"
	"github.com/gzhole/mcpfsbridge/internal/config"
	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/pathvalidate"
	"github.com/gzhole/mcpfsbridge/internal/permission"
	"github.com/gzhole/mcpfsbridge/internal/policy"
)

// Operation is the unit of work the Dispatcher hands to the Manager (§3).
type Operation struct {
	OpType fsop.Type
	Path   string
}

// Decision is the Manager's final verdict on an Operation.
type Decision struct {
	Allowed        bool
	ResolvedPath   string
	Reason         string
	CorrelationID  string
	EffectiveLevel permission.Level
	Compliance     []string
}

// Manager composes the whole pipeline. All fields are immutable after
// construction and safe for the concurrent use mcp-go's per-request
// goroutines require, except the Approval Gate, which serializes its own
// terminal access internally.
type Manager struct {
	validator  *pathvalidate.Validator
	permission *permission.Validator
	engine     *policy.Engine
	ops        config.OperationConfig
	gate       *approval.Gate
	auditLog   *audit.Logger
}

// New builds a Manager from a loaded Config and an open audit Logger.
func New(cfg *config.Config, auditLog *audit.Logger) *Manager {
	pv := pathvalidate.New(pathvalidate.Config{
		AllowedPaths: cfg.Filesystem.AllowedPaths,
		DeniedPaths:  cfg.Filesystem.DeniedPaths,
	})

	policies := make(map[string]*policy.Policy, len(cfg.Policies))
	for name, p := range cfg.Policies {
		policies[name] = &policy.Policy{
			Name:        name,
			Patterns:    p.Patterns,
			Operations:  p.Operations,
			Risk:        p.RiskLevel,
			Description: p.Description,
		}
	}

	rules := permission.DeriveRules(policies)
	pval := permission.New(rules, policies, permission.Strict)
	engine := policy.NewEngine(policies)
	gate := approval.New(cfg.Approval.Enabled, cfg.Approval.RequiresApprovalFor, cfg.Approval.TimeoutSeconds)

	return &Manager{
		validator:  pv,
		permission: pval,
		engine:     engine,
		ops:        cfg.Operations,
		gate:       gate,
		auditLog:   auditLog,
	}
}

// Evaluate runs op through the full pipeline (§4.6), emitting an audit
// event at every stage, and returns the final Decision.
func (m *Manager) Evaluate(ctx context.Context, op Operation) Decision {
	cid := audit.NewCorrelationID()
	m.auditLog.Requested(cid, string(op.OpType), op.Path)

	if gate, err := binarygate.Gate(op.Path); err != nil {
		return m.fail(cid, op, fmt.Sprintf("binary gate error: %v", err))
	} else if gate.Denied {
		m.auditLog.Violation(cid, string(op.OpType), op.Path, gate.Reason)
		return m.fail(cid, op, gate.Reason)
	}

	resolved, err := m.validator.Validate(op.Path)
	if err != nil {
		m.auditLog.Violation(cid, string(op.OpType), op.Path, err.Error())
		return m.fail(cid, op, err.Error())
	}

	permResult := m.permission.Evaluate(resolved, []fsop.Type{op.OpType}, time.Now().UTC())
	if !permResult.Allowed {
		return m.fail(cid, op, permResult.Reason)
	}

	if reason, ok := m.checkOperationClass(resolved, op.OpType); !ok {
		m.auditLog.Violation(cid, string(op.OpType), resolved, reason)
		return m.fail(cid, op, reason)
	}

	if m.gate.RequiresApproval(op.OpType) {
		decision := m.gate.Ask(ctx, approval.Request{OpType: op.OpType, Path: resolved})
		if decision != approval.Approved {
			return m.fail(cid, op, fmt.Sprintf("approval gate: %s", decision))
		}
	}

	policyDecision := m.engine.Evaluate(op.OpType, resolved)
	compliance := policy.Annotate(op.OpType, policyDecision.Risk)
	m.auditLog.PolicyResult(cid, string(op.OpType), resolved, policyDecision.Allowed, policyDecision.Reason, compliance)

	if !policyDecision.Allowed {
		m.auditLog.Failed(cid, string(op.OpType), resolved, policyDecision.Reason)
		return Decision{
			Allowed:       false,
			ResolvedPath:  resolved,
			Reason:        policyDecision.Reason,
			CorrelationID: cid,
			Compliance:    compliance,
		}
	}

	m.auditLog.Completed(cid, string(op.OpType), resolved)
	return Decision{
		Allowed:        true,
		ResolvedPath:   resolved,
		CorrelationID:  cid,
		EffectiveLevel: permResult.EffectiveLevel,
		Compliance:     compliance,
	}
}

// checkOperationClass implements §4.6 step 5: the per-class toggles and the
// two policy-match helpers for write/delete gating.
func (m *Manager) checkOperationClass(resolved string, op fsop.Type) (string, bool) {
	switch op {
	case fsop.Read:
		if !m.ops.ReadAllowed {
			return "read operations are disabled", false
		}
	case fsop.Write:
		if m.ops.WriteRequiresPolicy && !m.engine.AnyAllows(fsop.Write, resolved) {
			return "write requires an explicit granting policy", false
		}
	case fsop.Delete:
		if m.ops.DeleteRequiresExplicitAllow && !m.engine.AnyAllows(fsop.Delete, resolved) {
			return "delete requires an explicit granting policy", false
		}
	case fsop.CreateDir:
		if !m.ops.CreateDirAllowed {
			return "directory creation is disabled", false
		}
	case fsop.List, fsop.Move, fsop.Copy:
		// always allowed at this stage; the policy engine still gates them.
	}
	return "", true
}

func (m *Manager) fail(cid string, op Operation, reason string) Decision {
	m.auditLog.Failed(cid, string(op.OpType), op.Path, reason)
	return Decision{Allowed: false, Reason: reason, CorrelationID: cid}
}

// EvaluatePathPermissions exposes the Permission Validator directly for
// debugging/coverage tooling (§4.6 auxiliary query), bypassing the binary
// gate and policy engine.
func (m *Manager) EvaluatePathPermissions(path string, ops []fsop.Type) permission.Result {
	return m.permission.Evaluate(path, ops, time.Now().UTC())
}

// CoverageStats reports how many policies are configured (§4.6 auxiliary
// query). Rule counts are not included.
type CoverageStats struct {
	PolicyCount int
}

func ComputeCoverageStats(cfg *config.Config) CoverageStats {
	return CoverageStats{PolicyCount: len(cfg.Policies)}
}
