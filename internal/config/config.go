// Package config implements the Config Loader (J): reads the bridge's YAML
// configuration, validates it per spec §6.2, and returns an immutable
// Config, grounded on the teacher's internal/config.Load plus its
// internal/policy YAML loading idiom.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

const (
	DefaultConfigDir  = ".mcpfsbridge"
	DefaultConfigFile = "config.yaml"
	DefaultLogFile    = "audit.jsonl"
)

// FilesystemConfig is security.filesystem in the YAML schema.
type FilesystemConfig struct {
	AllowedPaths []string `yaml:"allowed_paths"`
	DeniedPaths  []string `yaml:"denied_paths"`
}

// OperationConfig is security.operations — the global operation-class
// toggles consulted by the Security Manager (§4.6).
type OperationConfig struct {
	ReadAllowed                 bool `yaml:"read_allowed"`
	WriteRequiresPolicy         bool `yaml:"write_requires_policy"`
	DeleteRequiresExplicitAllow bool `yaml:"delete_requires_explicit_allow"`
	CreateDirAllowed            bool `yaml:"create_dir_allowed"`
}

// PolicyConfig is one entry of security.policies.<name>.
type PolicyConfig struct {
	Patterns    []string    `yaml:"patterns"`
	Operations  []fsop.Type `yaml:"operations"`
	RiskLevel   risk.Level  `yaml:"risk_level"`
	Description string      `yaml:"description,omitempty"`
}

// ApprovalConfig gates the Approval Gate (O).
type ApprovalConfig struct {
	Enabled             bool        `yaml:"enabled"`
	RequiresApprovalFor []fsop.Type `yaml:"requires_approval_for"`
	TimeoutSeconds      int         `yaml:"timeout_seconds"`
}

// ServerConfig identifies this bridge to the MCP client during initialize.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// AuditConfig locates and bounds the JSONL audit sink.
type AuditConfig struct {
	Path         string `yaml:"path"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

// fileSchema is the raw shape the YAML file is unmarshalled into, nested
// under the security/approval/server/audit top-level keys per §6.2.
type fileSchema struct {
	Security struct {
		Filesystem FilesystemConfig        `yaml:"filesystem"`
		Operations OperationConfig         `yaml:"operations"`
		Policies   map[string]PolicyConfig `yaml:"policies"`
	} `yaml:"security"`
	Approval ApprovalConfig `yaml:"approval"`
	Server   ServerConfig   `yaml:"server"`
	Audit    AuditConfig    `yaml:"audit"`
}

// Config is the fully validated, immutable result of loading a config file.
type Config struct {
	Filesystem FilesystemConfig
	Operations OperationConfig
	Policies   map[string]PolicyConfig
	Approval   ApprovalConfig
	Server     ServerConfig
	Audit      AuditConfig

	Path string
}

// Warning is a non-fatal validation finding, logged to stderr but never
// aborting startup.
type Warning string

// Load reads and validates the config file at path (or the default
// location under the user's home directory when path is empty), returning
// the Config and any warnings. Validation errors abort with a descriptive,
// non-sensitive message — never echoing raw file contents, which could
// contain secrets pasted into a policy description.
func Load(path string) (*Config, []Warning, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse config: malformed YAML")
	}

	cfg := &Config{
		Filesystem: raw.Security.Filesystem,
		Operations: raw.Security.Operations,
		Policies:   raw.Security.Policies,
		Approval:   raw.Approval,
		Server:     raw.Server,
		Audit:      raw.Audit,
		Path:       resolved,
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, warnings(cfg), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "mcpfsbridge"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "dev"
	}
	if cfg.Audit.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Audit.Path = filepath.Join(home, DefaultConfigDir, DefaultLogFile)
		}
	}
	if cfg.Audit.MaxSizeBytes <= 0 {
		cfg.Audit.MaxSizeBytes = 10 * 1024 * 1024
	}
	if cfg.Approval.TimeoutSeconds <= 0 {
		cfg.Approval.TimeoutSeconds = 30
	}
}

// validate implements §6.2's abort-on-error rules.
func validate(cfg *Config) error {
	if len(cfg.Filesystem.AllowedPaths) == 0 {
		return fmt.Errorf("config error: security.filesystem.allowed_paths must be non-empty")
	}
	if len(cfg.Policies) == 0 {
		return fmt.Errorf("config error: security.policies must define at least one policy")
	}
	for name, p := range cfg.Policies {
		if len(p.Patterns) == 0 {
			return fmt.Errorf("config error: policy %q must define at least one pattern", name)
		}
		if len(p.Operations) == 0 {
			return fmt.Errorf("config error: policy %q must define at least one operation", name)
		}
		for _, op := range p.Operations {
			if !op.Valid() {
				return fmt.Errorf("config error: policy %q names unknown operation %q", name, op)
			}
		}
	}
	return nil
}

// warnings implements §6.2's non-fatal findings.
func warnings(cfg *Config) []Warning {
	var out []Warning

	for _, pattern := range cfg.Filesystem.AllowedPaths {
		if pattern == "**" || (strings.HasSuffix(pattern, "/**") && strings.Count(pattern, "/") <= 1) {
			out = append(out, Warning(fmt.Sprintf("allowed_paths pattern %q is extremely broad", pattern)))
		}
	}

	allowSet := make(map[string]bool, len(cfg.Filesystem.AllowedPaths))
	for _, p := range cfg.Filesystem.AllowedPaths {
		allowSet[p] = true
	}
	for _, d := range cfg.Filesystem.DeniedPaths {
		if allowSet[d] {
			out = append(out, Warning(fmt.Sprintf("pattern %q appears in both allowed_paths and denied_paths", d)))
		}
	}

	if cfg.Operations.WriteRequiresPolicy && !anyPolicyGrants(cfg, fsop.Write) {
		out = append(out, Warning("write_requires_policy=true but no policy grants write"))
	}
	if cfg.Operations.DeleteRequiresExplicitAllow && !anyPolicyGrants(cfg, fsop.Delete) {
		out = append(out, Warning("delete_requires_explicit_allow=true but no policy grants delete"))
	}

	for name, p := range cfg.Policies {
		if p.RiskLevel == risk.High || p.RiskLevel == risk.Critical {
			for _, op := range p.Operations {
				if op == fsop.Write || op == fsop.Delete || op == fsop.Move {
					out = append(out, Warning(fmt.Sprintf("policy %q grants %s at %s risk", name, op, p.RiskLevel)))
				}
			}
		}
	}

	return out
}

func anyPolicyGrants(cfg *Config, op fsop.Type) bool {
	for _, p := range cfg.Policies {
		for _, o := range p.Operations {
			if o == op {
				return true
			}
		}
	}
	return false
}
