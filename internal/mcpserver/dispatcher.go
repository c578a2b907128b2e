// Package mcpserver implements the Tool Dispatcher (I): the MCP-facing
// wrapper around the Security Manager, registering the three filesystem
// tools on a github.com/mark3labs/mcp-go stdio server and performing the
// actual I/O once an operation is approved. Grounded on the mcp-go usage
// pattern found in the pack's standalone fs-mcp-go example.
package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gzhole/mcpfsbridge/internal/config"
	"github.com/gzhole/mcpfsbridge/internal/fsio"
	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/security"
)

// Dispatcher wires the Security Manager into an mcp-go server.
type Dispatcher struct {
	manager *security.Manager
}

// New builds a Dispatcher over an already-constructed Security Manager.
func New(manager *security.Manager) *Dispatcher {
	return &Dispatcher{manager: manager}
}

// Build constructs the mcp-go server with all three tools registered
// (§4.8).
func (d *Dispatcher) Build(cfg *config.ServerConfig) *server.MCPServer {
	s := server.NewMCPServer(cfg.Name, cfg.Version)

	readTool := mcp.NewTool(
		"read_file",
		mcp.WithDescription("Read a file's contents, subject to the bridge's security policy."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute or home-relative path to read")),
		mcp.WithString("encoding", mcp.Enum("utf8", "base64", "auto"), mcp.Description("Rendering of the returned content; default auto")),
		mcp.WithNumber("max_size_mb", mcp.Min(1), mcp.Description("Size cap in MiB; default 100, capped at 1024")),
		mcp.WithOutputSchema[ReadFileResult](),
	)
	s.AddTool(readTool, mcp.NewStructuredToolHandler(d.handleRead))

	writeTool := mcp.NewTool(
		"write_file",
		mcp.WithDescription("Write content to a file, subject to the bridge's security policy."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute or home-relative path to write")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to write")),
		mcp.WithString("encoding", mcp.Enum("utf8", "base64"), mcp.Description("Encoding of content; default utf8")),
		mcp.WithBoolean("create_directories", mcp.Description("Create the parent directory chain if missing; default false")),
		mcp.WithBoolean("backup_existing", mcp.Description("Back up the existing file before overwriting; default false")),
		mcp.WithOutputSchema[WriteFileResult](),
	)
	s.AddTool(writeTool, mcp.NewStructuredToolHandler(d.handleWrite))

	listTool := mcp.NewTool(
		"list_directory",
		mcp.WithDescription("List a directory's entries, subject to the bridge's security policy."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory to list")),
		mcp.WithBoolean("include_hidden", mcp.Description("Include dotfiles; default false")),
		mcp.WithBoolean("include_metadata", mcp.Description("Include size/modified metadata; default true")),
		mcp.WithBoolean("recursive", mcp.Description("Recurse into subdirectories; default false")),
		mcp.WithNumber("max_depth", mcp.Min(1), mcp.Description("Recursion depth cap; default 10")),
		mcp.WithOutputSchema[ListDirectoryResult](),
	)
	s.AddTool(listTool, mcp.NewStructuredToolHandler(d.handleList))

	return s
}

// Serve runs the dispatcher's server over stdio until the client
// disconnects or an unrecoverable transport error occurs.
func (d *Dispatcher) Serve(cfg *config.ServerConfig) error {
	return server.ServeStdio(d.Build(cfg))
}

// ReadFileArgs mirrors read_file's argument schema (§6.1).
type ReadFileArgs struct {
	Path      string `json:"path"`
	Encoding  string `json:"encoding,omitempty"`
	MaxSizeMB int    `json:"max_size_mb,omitempty"`
}

// ReadFileResult is read_file's single content item, flattened for the
// structured-output schema.
type ReadFileResult struct {
	Content string `json:"content"`
}

func (d *Dispatcher) handleRead(ctx context.Context, req mcp.CallToolRequest, args ReadFileArgs) (ReadFileResult, error) {
	if args.Path == "" {
		return ReadFileResult{}, fmt.Errorf("invalid_request: path is required")
	}
	if strings.ContainsRune(args.Path, 0) {
		return ReadFileResult{}, fmt.Errorf("invalid_request: path contains a NUL byte")
	}

	maxMB := args.MaxSizeMB
	if maxMB <= 0 {
		maxMB = fsio.DefaultMaxSizeMB
	}
	if maxMB > fsio.MaxSizeCapMB {
		return ReadFileResult{}, fmt.Errorf("invalid_request: max_size_mb exceeds the %d MiB cap", fsio.MaxSizeCapMB)
	}

	encoding := fsio.Encoding(args.Encoding)
	if encoding == "" {
		encoding = fsio.EncodingAuto
	}
	if encoding != fsio.EncodingUTF8 && encoding != fsio.EncodingBase64 && encoding != fsio.EncodingAuto {
		return ReadFileResult{}, fmt.Errorf("invalid_request: unsupported encoding %q", args.Encoding)
	}

	decision := d.manager.Evaluate(ctx, security.Operation{OpType: fsop.Read, Path: args.Path})
	if !decision.Allowed {
		return ReadFileResult{}, fmt.Errorf("invalid_request: Security validation failed: %s", decision.Reason)
	}

	result, err := fsio.ReadFile(decision.ResolvedPath, encoding, maxMB, false)
	if err != nil {
		return ReadFileResult{}, fmt.Errorf("internal_error: %w", err)
	}

	return ReadFileResult{Content: result.Text}, nil
}

// WriteFileArgs mirrors write_file's argument schema (§6.1).
type WriteFileArgs struct {
	Path              string `json:"path"`
	Content           string `json:"content"`
	Encoding          string `json:"encoding,omitempty"`
	CreateDirectories bool   `json:"create_directories,omitempty"`
	BackupExisting    bool   `json:"backup_existing,omitempty"`
}

// WriteFileResult confirms the write (§6.1).
type WriteFileResult struct {
	Message string `json:"message"`
}

func (d *Dispatcher) handleWrite(ctx context.Context, req mcp.CallToolRequest, args WriteFileArgs) (WriteFileResult, error) {
	if err := validateWriteArgs(args); err != nil {
		return WriteFileResult{}, err
	}

	decision := d.manager.Evaluate(ctx, security.Operation{OpType: fsop.Write, Path: args.Path})
	if !decision.Allowed {
		return WriteFileResult{}, fmt.Errorf("invalid_request: Security validation failed: %s", decision.Reason)
	}

	encoding := fsio.WriteEncoding(args.Encoding)
	if encoding == "" {
		encoding = fsio.WriteUTF8
	}

	result, err := fsio.WriteFile(decision.ResolvedPath, args.Content, fsio.WriteOptions{
		Encoding:          encoding,
		CreateDirectories: args.CreateDirectories,
		BackupExisting:    args.BackupExisting,
	})
	if err != nil {
		return WriteFileResult{}, fmt.Errorf("internal_error: %w", err)
	}

	unit := "characters"
	if encoding == fsio.WriteBase64 {
		unit = "bytes"
	}
	return WriteFileResult{
		Message: fmt.Sprintf("File written successfully: %s (%d %s)", decision.ResolvedPath, result.BytesWritten, unit),
	}, nil
}

// validateWriteArgs implements §4.8 step 2's input-validation rules.
func validateWriteArgs(args WriteFileArgs) error {
	if args.Path == "" {
		return fmt.Errorf("invalid_request: path is required")
	}
	if strings.ContainsRune(args.Path, 0) {
		return fmt.Errorf("invalid_request: path contains a NUL byte")
	}
	if strings.ContainsRune(args.Content, 0) {
		return fmt.Errorf("invalid_request: content contains a NUL byte")
	}
	if len(args.Content) > fsio.MaxContentBytes {
		return fmt.Errorf("invalid_request: content exceeds the 100 MiB cap")
	}
	for _, r := range args.Content {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid_request: content contains a disallowed control character")
		}
	}
	return nil
}

// ListDirectoryArgs mirrors list_directory's argument schema (§6.1).
type ListDirectoryArgs struct {
	Path            string `json:"path"`
	IncludeHidden   bool   `json:"include_hidden,omitempty"`
	IncludeMetadata bool   `json:"include_metadata,omitempty"`
	Recursive       bool   `json:"recursive,omitempty"`
	MaxDepth        int    `json:"max_depth,omitempty"`
}

// ListDirectoryResult mirrors list_directory's reply shape (§6.1):
// {directory, total_entries, entries[], options}.
type ListDirectoryResult struct {
	Directory    string           `json:"directory"`
	TotalEntries int              `json:"total_entries"`
	Entries      []fsio.Entry     `json:"entries"`
	Options      fsio.ListOptions `json:"options"`
}

func (d *Dispatcher) handleList(ctx context.Context, req mcp.CallToolRequest, args ListDirectoryArgs) (ListDirectoryResult, error) {
	if args.Path == "" {
		return ListDirectoryResult{}, fmt.Errorf("invalid_request: path is required")
	}

	decision := d.manager.Evaluate(ctx, security.Operation{OpType: fsop.List, Path: args.Path})
	if !decision.Allowed {
		return ListDirectoryResult{}, fmt.Errorf("invalid_request: Security validation failed: %s", decision.Reason)
	}

	maxDepth := args.MaxDepth
	if maxDepth <= 0 {
		maxDepth = fsio.DefaultMaxDepth
	}

	result, err := fsio.ListDirectory(decision.ResolvedPath, fsio.ListOptions{
		IncludeHidden:   args.IncludeHidden,
		IncludeMetadata: args.IncludeMetadata,
		Recursive:       args.Recursive,
		MaxDepth:        maxDepth,
	})
	if err != nil {
		return ListDirectoryResult{}, fmt.Errorf("internal_error: %w", err)
	}

	return ListDirectoryResult{
		Directory:    result.Directory,
		TotalEntries: result.TotalEntries,
		Entries:      result.Entries,
		Options:      result.Options,
	}, nil
}
