// Package output holds the labctl result writers: indented JSON for
// --json mode, aligned tables for listings, and warnings on stderr.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// JSON writes v to stdout as indented JSON. Under --json this is the
// only thing a command prints, so labctl pipes cleanly into jq.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table returns an aligned table writer on stdout. Flush it once all
// rows are written.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// Warn prints a warning to stderr, keeping stdout clean for results.
func Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
