// Package permission implements PathRule (D) and the Permission Validator
// (E): a prioritized set of glob-pattern rules, each granting a permission
// level and operation set, evaluated against a path and a requested set of
// operations.
package permission

import "github.com/gzhole/mcpfsbridge/internal/fsop"

// Level is a totally ordered permission capability class.
type Level int

const (
	None Level = iota
	ReadOnly
	ReadBasic
	ReadWrite
	Full
)

// String renders the level for audit/display purposes.
func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case ReadOnly:
		return "read_only"
	case ReadBasic:
		return "read_basic"
	case ReadWrite:
		return "read_write"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// allowedByLevel names the operation classes each level authorizes (§4.4).
var allowedByLevel = map[Level]fsop.Set{
	None:      fsop.NewSet(),
	ReadOnly:  fsop.NewSet(fsop.Read),
	ReadBasic: fsop.NewSet(fsop.Read, fsop.List),
	ReadWrite: fsop.NewSet(fsop.Read, fsop.List, fsop.Write, fsop.Copy),
}

// Grants reports whether level authorizes every operation in ops. Full
// authorizes anything.
func (l Level) Grants(ops ...fsop.Type) bool {
	if l == Full {
		return true
	}
	set, ok := allowedByLevel[l]
	if !ok {
		return false
	}
	return set.ContainsAll(ops...)
}
