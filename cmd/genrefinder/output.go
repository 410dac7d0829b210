package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printRows writes a bordered table on terminals and tab-separated lines on
// pipes, so command output stays script-friendly.
func printRows(cmd *cobra.Command, title string, headers []string, rows [][]string, aligns []columnAlignment) {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		fmt.Fprintln(out, renderTable(title, headers, rows, aligns))
		return
	}
	if title != "" {
		fmt.Fprintf(out, "# %s\n", title)
	}
	fmt.Fprintln(out, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}
