package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// NewReachesCommand creates the reaches command: test whether a path exists.
func NewReachesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "reaches <from> <to>",
		Short:         "Test whether any path leads from one node to another",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			ok, err := st.Reaches(cmd.Context(), graph.NodeID(args[0]), graph.NodeID(args[1]))
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return out.Success(map[string]any{"reaches": ok})
			}
			return out.Success(ok)
		},
	}
}

// NewAncestorsCommand creates the ancestors command: list nodes that reach n.
func NewAncestorsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ancestors <node>",
		Short:         "List every node with a path to the given node",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			nodes, err := st.Ancestors(cmd.Context(), graph.NodeID(args[0]))
			if err != nil {
				return err
			}
			return out.NodeList(nodes)
		},
	}
}

// NewDescendantsCommand creates the descendants command: list nodes reachable
// from n.
func NewDescendantsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "descendants <node>",
		Short:         "List every node reachable from the given node",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			nodes, err := st.Descendants(cmd.Context(), graph.NodeID(args[0]))
			if err != nil {
				return err
			}
			return out.NodeList(nodes)
		},
	}
}
