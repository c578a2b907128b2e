package policy

import (
	"reflect"
	"sort"
	"testing"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
	"github.com/gzhole/mcpfsbridge/internal/risk"
)

func TestAnnotate_DeleteAtHighRiskTagged(t *testing.T) {
	tags := Annotate(fsop.Delete, risk.High)
	if len(tags) == 0 {
		t.Fatal("expected compliance tags for high-risk delete")
	}
}

func TestAnnotate_ReadAtLowRiskUntagged(t *testing.T) {
	tags := Annotate(fsop.Read, risk.Low)
	if len(tags) != 0 {
		t.Fatalf("expected no tags for low-risk read, got %v", tags)
	}
}

func TestAnnotate_NoDuplicateTags(t *testing.T) {
	tags := Annotate(fsop.Delete, risk.Critical)
	seen := make(map[string]bool)
	for _, tag := range tags {
		if seen[tag] {
			t.Fatalf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
	sorted := append([]string{}, tags...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(tags, sorted) {
		t.Fatal("expected tags to already be sorted")
	}
}
