// Package binarygate rejects operations on binary content before any other
// security stage runs, so a binary denial is always logged even when a
// later stage would also deny the same request.
package binarygate

import (
	"io"
	"os"

	"github.com/gzhole/mcpfsbridge/internal/format"
)

// SampleSize is the number of leading bytes read from an existing file to
// classify its content.
const SampleSize = 512

// Decision is the outcome of gating a single path.
type Decision struct {
	Denied bool
	Reason string
	Format format.Format
}

// Gate checks a path (and, if it exists, its content) against the binary
// policy: any known-binary extension or any binary magic-number match in
// the head of an existing file is denied. Unknown-typed content is denied
// unless every byte in the sample is printable/whitespace UTF-8. Empty
// files always pass. Directories carry no content to classify and always
// pass, so that list_directory against an existing directory never trips
// a binary-content read error.
func Gate(path string) (Decision, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Decision{}, nil
	}

	if extFormat := format.ByExtension(path); extFormat.IsBinary() {
		return Decision{Denied: true, Reason: "binary_denied", Format: extFormat}, nil
	}

	sample, err := readSample(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Decision{}, nil // new file: nothing to sample yet
		}
		return Decision{}, err
	}
	if len(sample) == 0 {
		return Decision{}, nil
	}

	contentFormat := format.ByContent(sample)
	if contentFormat.IsBinary() {
		return Decision{Denied: true, Reason: "binary_content_denied", Format: contentFormat}, nil
	}
	if contentFormat == format.Unknown {
		return Decision{Denied: true, Reason: "unknown_binary_denied", Format: contentFormat}, nil
	}

	return Decision{Format: contentFormat}, nil
}

func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
