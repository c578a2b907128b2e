// Package approval implements the Approval Gate (O): a synchronous
// terminal prompt the Security Manager blocks on for operation classes
// configured to require human sign-off, grounded on the teacher's
// internal/approval package.
package approval

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/gzhole/mcpfsbridge/internal/fsop"
)

// Decision is the tagged outcome of an approval prompt (§3 ApprovalDecision).
type Decision string

const (
	Approved  Decision = "approved"
	Denied    Decision = "denied"
	Timeout   Decision = "timeout"
	Cancelled Decision = "cancelled"
)

// Request describes the operation a human is being asked to approve.
type Request struct {
	OpType fsop.Type
	Path   string
	Reason string
}

// Gate serializes concurrent approval requests behind a single terminal —
// there is only one human to ask, so operations needing approval queue
// rather than interleaving prompts (§5).
type Gate struct {
	mu               sync.Mutex
	timeout          time.Duration
	requiresApproval map[fsop.Type]bool
	enabled          bool
}

// New builds a Gate. When enabled is false, RequiresApproval always
// reports false and Ask is never reachable — wiring the Open Question stub
// to a real, config-gated prompt without ever invoking it for disabled
// configurations (§8 property 11).
func New(enabled bool, ops []fsop.Type, timeoutSeconds int) *Gate {
	set := make(map[fsop.Type]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	return &Gate{
		enabled:          enabled,
		requiresApproval: set,
		timeout:          time.Duration(timeoutSeconds) * time.Second,
	}
}

// RequiresApproval reports whether op needs a human decision under this
// gate's configuration.
func (g *Gate) RequiresApproval(op fsop.Type) bool {
	return g.enabled && g.requiresApproval[op]
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask blocks on a terminal prompt for req, bounded by the gate's
// configured timeout, and returns the human's decision. Non-interactive
// sessions (no TTY on stdin) are auto-denied rather than hanging forever —
// a filesystem bridge run from a script should never block indefinitely on
// an unreachable human.
func (g *Gate) Ask(ctx context.Context, req Request) Decision {
	if !isInteractive() {
		return Denied
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "=== APPROVAL REQUIRED ===")
	fmt.Fprintf(os.Stderr, "Operation: %s\n", req.OpType)
	fmt.Fprintf(os.Stderr, "Path: %s\n", req.Path)
	if req.Reason != "" {
		fmt.Fprintf(os.Stderr, "Reason: %s\n", req.Reason)
	}
	fmt.Fprintln(os.Stderr, "Approve? [y/n]")

	result := make(chan Decision, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			input, err := reader.ReadString('\n')
			if err != nil {
				result <- Cancelled
				return
			}
			switch strings.TrimSpace(strings.ToLower(input)) {
			case "y", "yes":
				result <- Approved
				return
			case "n", "no":
				result <- Denied
				return
			default:
				fmt.Fprintln(os.Stderr, "Please answer y or n.")
			}
		}
	}()

	timeout := g.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	select {
	case d := <-result:
		return d
	case <-time.After(timeout):
		return Timeout
	case <-ctx.Done():
		return Cancelled
	}
}
