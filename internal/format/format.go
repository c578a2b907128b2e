// Package format classifies file content and extensions for the binary
// gate: text, a known image family, PDF, or unknown.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is a coarse content classification.
type Format string

const (
	Jpeg    Format = "jpeg"
	Png     Format = "png"
	Gif     Format = "gif"
	WebP    Format = "webp"
	Tiff    Format = "tiff"
	Bmp     Format = "bmp"
	Pdf     Format = "pdf"
	Text    Format = "text"
	Unknown Format = "unknown"
)

// IsBinary reports whether f is one of the known binary families (not Text
// or Unknown).
func (f Format) IsBinary() bool {
	switch f {
	case Jpeg, Png, Gif, WebP, Tiff, Bmp, Pdf:
		return true
	}
	return false
}

var extensionFormats = map[string]Format{
	".jpg":  Jpeg,
	".jpeg": Jpeg,
	".png":  Png,
	".gif":  Gif,
	".webp": WebP,
	".tif":  Tiff,
	".tiff": Tiff,
	".bmp":  Bmp,
	".pdf":  Pdf,
}

// ByExtension classifies a path by its extension alone. Returns Unknown for
// extensions not in the known binary set or a small set of recognized text
// extensions.
func ByExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f
	}
	if isTextExtension(ext) {
		return Text
	}
	return Unknown
}

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".go": true, ".rs": true, ".py": true,
	".js": true, ".ts": true, ".json": true, ".yaml": true, ".yml": true,
	".toml": true, ".ini": true, ".cfg": true, ".conf": true, ".sh": true,
	".html": true, ".css": true, ".csv": true, ".xml": true, ".log": true,
}

func isTextExtension(ext string) bool {
	return textExtensions[ext]
}

// magicPrefix pairs a byte signature with the format it identifies.
type magicPrefix struct {
	format Format
	bytes  []byte
}

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
var tiffMagicBE = []byte{0x4D, 0x4D, 0x00, 0x2A}
var tiffMagicLE = []byte{0x49, 0x49, 0x2A, 0x00}
var bmpMagic = []byte{0x42, 0x4D}
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

// ByContent classifies a byte sample (the first 512 bytes of a file is
// sufficient) by magic-number prefix, falling back to a text/unknown
// distinction via UTF-8 printability when no magic number matches.
func ByContent(sample []byte) Format {
	if len(sample) == 0 {
		return Text // empty files are not binary
	}

	switch {
	case bytes.HasPrefix(sample, jpegMagic):
		return Jpeg
	case bytes.HasPrefix(sample, pngMagic):
		return Png
	case isGif(sample):
		return Gif
	case isWebP(sample):
		return WebP
	case bytes.HasPrefix(sample, tiffMagicBE), bytes.HasPrefix(sample, tiffMagicLE):
		return Tiff
	case bytes.HasPrefix(sample, bmpMagic):
		return Bmp
	case bytes.HasPrefix(sample, pdfMagic):
		return Pdf
	}

	if isPrintableUTF8(sample) {
		return Text
	}
	return Unknown
}

func isGif(sample []byte) bool {
	if len(sample) < 6 {
		return false
	}
	if !bytes.HasPrefix(sample, []byte("GIF87")) && !bytes.HasPrefix(sample, []byte("GIF89")) {
		return false
	}
	return sample[5] == 'a'
}

func isWebP(sample []byte) bool {
	if len(sample) < 12 {
		return false
	}
	return bytes.Equal(sample[0:4], []byte("RIFF")) && bytes.Equal(sample[8:12], []byte("WEBP"))
}

// isPrintableUTF8 reports whether sample decodes as valid UTF-8 containing
// only printable characters plus common whitespace (tab, newline, CR).
func isPrintableUTF8(sample []byte) bool {
	if !utf8.Valid(sample) {
		return false
	}
	for len(sample) > 0 {
		r, size := utf8.DecodeRune(sample)
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if r == '\t' || r == '\n' || r == '\r' {
			sample = sample[size:]
			continue
		}
		if r < 0x20 || r == 0x7F {
			return false
		}
		sample = sample[size:]
	}
	return true
}
