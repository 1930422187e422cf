package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/lineage/internal/graph"
)

// NewMintCommand creates the mint command: print a fresh node id.
func NewMintCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mint",
		Short: "Mint a fresh node id",
		Long: "Print a new time-sortable node id. Useful when registering artifacts\n" +
			"that do not bring their own identifier.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			id := graph.UUIDv7Generator{}.Generate()
			if opts.Format == "json" {
				return out.Success(map[string]any{"node_id": id})
			}
			return out.Success(id)
		},
	}
}
