package fsio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// EntryType discriminates a listing entry.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "directory"
)

// Entry is one row of a list_directory reply (§6.1).
type Entry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Type         EntryType `json:"type"`
	Size         int64     `json:"size"`
	Modified     string    `json:"modified"`
	RelativePath string    `json:"relative_path,omitempty"`
	Depth        int       `json:"depth,omitempty"`
}

// ListOptions mirrors list_directory's optional arguments (§6.1) and is
// echoed back verbatim in ListResult.Options so a caller can see which
// defaults were applied.
type ListOptions struct {
	IncludeHidden   bool `json:"include_hidden"`
	IncludeMetadata bool `json:"include_metadata"`
	Recursive       bool `json:"recursive"`
	MaxDepth        int  `json:"max_depth"`
}

// DefaultMaxDepth matches list_directory's default max_depth.
const DefaultMaxDepth = 10

// ListResult is the full reply payload for list_directory.
type ListResult struct {
	Directory    string      `json:"directory"`
	TotalEntries int         `json:"total_entries"`
	Entries      []Entry     `json:"entries"`
	Options      ListOptions `json:"options"`
}

// ListDirectory walks dir (recursively, bounded by opts.MaxDepth, when
// opts.Recursive is set) and returns entries sorted ascending by name within
// each directory, depth-first — the order §8's S6 scenario requires. Size
// and Modified are left zero-valued unless opts.IncludeMetadata is set.
func ListDirectory(dir string, opts ListOptions) (ListResult, error) {
	var entries []Entry

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var walk func(path string, depth int) error
	walk = func(path string, depth int) error {
		items, err := os.ReadDir(path)
		if err != nil {
			return err
		}

		sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

		for _, item := range items {
			name := item.Name()
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				continue
			}

			full := filepath.Join(path, name)
			info, err := item.Info()
			if err != nil {
				continue
			}

			rel, _ := filepath.Rel(dir, full)
			entryType := EntryFile
			if item.IsDir() {
				entryType = EntryDir
			}

			e := Entry{
				Name:         name,
				Path:         full,
				Type:         entryType,
				RelativePath: rel,
				Depth:        depth,
			}
			if opts.IncludeMetadata {
				e.Size = info.Size()
				e.Modified = info.ModTime().UTC().Format(time.RFC3339)
			}
			entries = append(entries, e)

			if item.IsDir() && opts.Recursive && depth < maxDepth {
				if err := walk(full, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(dir, 1); err != nil {
		return ListResult{}, err
	}

	resolved := opts
	resolved.MaxDepth = maxDepth

	return ListResult{
		Directory:    dir,
		TotalEntries: len(entries),
		Entries:      entries,
		Options:      resolved,
	}, nil
}
