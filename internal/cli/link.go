package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// NewLinkCommand creates the link command: insert a direct edge.
func NewLinkCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link <input> <output>",
		Short: "Insert a direct edge from input to output",
		Long: "Insert a direct edge and extend the materialized closure with every\n" +
			"path the edge completes. Self-loops, duplicate edges, and edges that\n" +
			"would close a cycle are rejected.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			input := graph.NodeID(args[0])
			output := graph.NodeID(args[1])
			logger.Debug("linking", "input", input, "output", output)

			id, err := st.InsertEdge(cmd.Context(), input, output)
			if err != nil {
				var le *graph.LinkError
				if errors.As(err, &le) {
					if werr := out.Reject(le); werr != nil {
						return werr
					}
					return err
				}
				return err
			}

			logger.Debug("edge inserted", "id", id)
			if opts.Format == "json" {
				return out.Success(map[string]any{"edge_id": id, "input": input, "output": output})
			}
			return out.Success(fmt.Sprintf("linked %s -> %s (edge %d)", input, output, id))
		},
	}
}

// NewUnlinkCommand creates the unlink command: remove a direct edge and every
// closure row its presence justified.
func NewUnlinkCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <input> <output>",
		Short: "Remove a direct edge and purge dependent closure rows",
		Long: "Remove the direct edge from input to output. Closure rows that were\n" +
			"only reachable through that edge are purged. Unlinking an edge that\n" +
			"does not exist is a no-op.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			input := graph.NodeID(args[0])
			output := graph.NodeID(args[1])
			logger.Debug("unlinking", "input", input, "output", output)

			if err := st.Unlink(cmd.Context(), input, output); err != nil {
				return err
			}

			if opts.Format == "json" {
				return out.Success(map[string]any{"input": input, "output": output})
			}
			return out.Success(fmt.Sprintf("unlinked %s -> %s", input, output))
		},
	}
}
