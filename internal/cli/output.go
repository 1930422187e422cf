package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/lineage/internal/graph"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
// In text mode the payload is printed with %v; commands wanting richer text
// output format it themselves and pass a string.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Reject outputs a guard rejection. Rejections are expected outcomes, not
// command failures: the process still exits non-zero (the caller returns the
// error), but the output is structured rather than a bare error line.
func (f *OutputFormatter) Reject(le *graph.LinkError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    string(le.Code),
				Message: le.Error(),
			},
		})
	}
	fmt.Fprintf(f.Writer, "rejected [%s]: %s -> %s\n", le.Code, le.Input, le.Output)
	return nil
}

// NodeList renders a node projection (ancestors / descendants).
func (f *OutputFormatter) NodeList(nodes []graph.NodeID) error {
	if f.Format == "json" {
		return f.Success(nodes)
	}
	for _, n := range nodes {
		fmt.Fprintln(f.Writer, n)
	}
	return nil
}

// Entries renders closure rows.
func (f *OutputFormatter) Entries(entries []graph.ClosureEntry) error {
	if f.Format == "json" {
		type row struct {
			ID         graph.ClosureID `json:"id"`
			Parent     graph.NodeID    `json:"parent"`
			Child      graph.NodeID    `json:"child"`
			Depth      int             `json:"depth"`
			EntryEdge  graph.ClosureID `json:"entry_edge"`
			DirectEdge graph.ClosureID `json:"direct_edge"`
			ExitEdge   graph.ClosureID `json:"exit_edge"`
		}
		rows := make([]row, len(entries))
		for i, e := range entries {
			rows[i] = row{e.ID, e.Parent, e.Child, e.Depth, e.EntryEdge, e.DirectEdge, e.ExitEdge}
		}
		return f.Success(rows)
	}
	for _, e := range entries {
		fmt.Fprintf(f.Writer, "%d\t%s -> %s\tdepth=%d\tlineage=(%d,%d,%d)\n",
			e.ID, e.Parent, e.Child, e.Depth, e.EntryEdge, e.DirectEdge, e.ExitEdge)
	}
	return nil
}
