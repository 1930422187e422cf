package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// NewDumpCommand creates the dump command: print the full closure table.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	var edgesOnly bool

	cmd := &cobra.Command{
		Use:           "dump",
		Short:         "Print the closure table (or the direct edge list)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			if edgesOnly {
				edges, err := st.Edges(cmd.Context())
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return out.Success(edges)
				}
				for _, e := range edges {
					if err := out.Success(formatEdge(e)); err != nil {
						return err
					}
				}
				return nil
			}

			entries, err := st.Entries(cmd.Context())
			if err != nil {
				return err
			}
			return out.Entries(entries)
		},
	}

	cmd.Flags().BoolVar(&edgesOnly, "edges", false, "print direct edges instead of closure rows")
	return cmd
}

func formatEdge(e graph.Edge) string {
	return fmt.Sprintf("%d\t%s -> %s", e.ID, e.Input, e.Output)
}
