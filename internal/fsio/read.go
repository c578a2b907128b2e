package fsio

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
)

// Encoding selects how ReadFile renders its result.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingBase64 Encoding = "base64"
	EncodingAuto   Encoding = "auto"
)

// DefaultMaxSizeMB and MaxSizeCapMB bound read_file's max_size_mb argument
// (§6.1): default 100 MiB, hard cap 1024 MiB regardless of what the caller
// requests.
const (
	DefaultMaxSizeMB = 100
	MaxSizeCapMB     = 1024
)

// ReadResult is the rendered content of a read_file call.
type ReadResult struct {
	Text     string
	IsBase64 bool
	Bytes    int64
}

// ReadFile streams path up to maxSizeMB (already clamped by the caller),
// refusing to read a single byte beyond the cap rather than truncating
// silently. isBinary selects base64 rendering in "auto" mode.
func ReadFile(path string, encoding Encoding, maxSizeMB int, isBinary bool) (ReadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("stat %s: %w", path, err)
	}

	limit := int64(maxSizeMB) * 1024 * 1024
	if info.Size() > limit {
		return ReadResult{}, fmt.Errorf("file %s is %d bytes, exceeds max_size_mb cap of %d MiB", path, info.Size(), maxSizeMB)
	}

	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return ReadResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return ReadResult{}, fmt.Errorf("file %s exceeded max_size_mb cap of %d MiB during read", path, maxSizeMB)
	}

	useBase64 := encoding == EncodingBase64 || (encoding == EncodingAuto && isBinary)
	if useBase64 {
		return ReadResult{
			Text:     fmt.Sprintf("Base64 encoded content (%d bytes):\n%s", len(data), base64.StdEncoding.EncodeToString(data)),
			IsBase64: true,
			Bytes:    int64(len(data)),
		}, nil
	}

	return ReadResult{Text: string(data), Bytes: int64(len(data))}, nil
}
