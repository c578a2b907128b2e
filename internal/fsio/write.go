package fsio

import (
	"encoding/base64"
	"fmt"
	"os"
)

// WriteEncoding selects how write_file's content argument is decoded.
type WriteEncoding string

const (
	WriteUTF8   WriteEncoding = "utf8"
	WriteBase64 WriteEncoding = "base64"
)

// MaxContentBytes is write_file's hard content-size cap (§4.8 step 2).
const MaxContentBytes = 100 * 1024 * 1024

// WriteOptions mirrors write_file's optional arguments (§6.1).
type WriteOptions struct {
	Encoding          WriteEncoding
	CreateDirectories bool
	BackupExisting    bool
}

// WriteResult reports what was written, for the dispatcher's confirmation
// message.
type WriteResult struct {
	BytesWritten int
	BackupPath   string
}

// WriteFile decodes content per opts.Encoding, optionally backs up any
// existing file at path, optionally creates path's parent directory chain,
// then writes atomically enough that a failed backup or directory creation
// aborts before any byte of the new content is written (§7 "no partial
// successes").
func WriteFile(path, content string, opts WriteOptions) (WriteResult, error) {
	var data []byte
	if opts.Encoding == WriteBase64 {
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return WriteResult{}, fmt.Errorf("invalid base64 content: %w", err)
		}
		data = decoded
	} else {
		data = []byte(content)
	}

	if len(data) > MaxContentBytes {
		return WriteResult{}, fmt.Errorf("content is %d bytes, exceeds the 100 MiB write cap", len(data))
	}

	var backupPath string
	if opts.BackupExisting {
		bp, err := Backup(path)
		if err != nil {
			return WriteResult{}, fmt.Errorf("backup existing file: %w", err)
		}
		backupPath = bp
	}

	if opts.CreateDirectories {
		if err := EnsureParentDir(path); err != nil {
			return WriteResult{}, fmt.Errorf("create parent directories: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WriteResult{}, fmt.Errorf("write %s: %w", path, err)
	}

	return WriteResult{BytesWritten: len(data), BackupPath: backupPath}, nil
}
