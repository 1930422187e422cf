package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/manifest"
	"github.com/roach88/lineage/internal/store"
)

// NewApplyCommand creates the apply command: import a manifest of nodes and
// links into the graph.
func NewApplyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <manifest.yaml>",
		Short: "Apply a manifest of nodes and links to the graph",
		Long: "Load a YAML manifest, validate it against the schema, and insert its\n" +
			"links in order. Declared nodes without an explicit id are minted fresh\n" +
			"ids. Application stops at the first rejected link.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			m, err := manifest.LoadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("manifest loaded", "name", m.Name, "links", len(m.Links))

			st, err := store.Open(opts.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := manifest.Apply(cmd.Context(), st, graph.UUIDv7Generator{}, m)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return out.Success(map[string]any{
					"manifest": m.Name,
					"nodes":    res.NodeIDs,
					"edges":    res.EdgeIDs,
				})
			}

			refs := make([]string, 0, len(res.NodeIDs))
			for ref := range res.NodeIDs {
				refs = append(refs, ref)
			}
			sort.Strings(refs)
			for _, ref := range refs {
				fmt.Fprintf(out.Writer, "node %s = %s\n", ref, res.NodeIDs[ref])
			}
			return out.Success(fmt.Sprintf("applied %s: %d links", m.Name, len(res.EdgeIDs)))
		},
	}
}
