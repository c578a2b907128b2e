package format

import "testing"

func TestByExtension(t *testing.T) {
	cases := map[string]Format{
		"photo.JPG":  Jpeg,
		"icon.png":   Png,
		"doc.pdf":    Pdf,
		"readme.md":  Text,
		"main.go":    Text,
		"data.bin":   Unknown,
	}
	for path, want := range cases {
		if got := ByExtension(path); got != want {
			t.Errorf("ByExtension(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestByContent_JpegMagic(t *testing.T) {
	sample := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
	if got := ByContent(sample); got != Jpeg {
		t.Errorf("ByContent(jpeg head) = %q, want jpeg", got)
	}
}

func TestByContent_PngMagic(t *testing.T) {
	sample := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if got := ByContent(sample); got != Png {
		t.Errorf("ByContent(png head) = %q, want png", got)
	}
}

func TestByContent_EmptyIsText(t *testing.T) {
	if got := ByContent(nil); got != Text {
		t.Errorf("ByContent(empty) = %q, want text", got)
	}
}

func TestByContent_PlainTextIsText(t *testing.T) {
	if got := ByContent([]byte("hello world\n")); got != Text {
		t.Errorf("ByContent(plain text) = %q, want text", got)
	}
}

func TestByContent_NullBytesAreUnknown(t *testing.T) {
	sample := []byte{0x00, 0x01, 0x02, 0x03, 0xDE, 0xAD}
	if got := ByContent(sample); got != Unknown {
		t.Errorf("ByContent(garbage) = %q, want unknown", got)
	}
}

func TestFormat_IsBinary(t *testing.T) {
	if !Jpeg.IsBinary() {
		t.Error("expected jpeg to be binary")
	}
	if Text.IsBinary() {
		t.Error("expected text not to be binary")
	}
	if Unknown.IsBinary() {
		t.Error("expected unknown not to be binary")
	}
}
