// Command mcpfsbridge runs the policy-gated filesystem MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/gzhole/mcpfsbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mcpfsbridge: %v\n", err)
		os.Exit(1)
	}
}
