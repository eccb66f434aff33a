package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/golden-vcr/icongen"
)

func NewStylesCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the available icon styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL")
			for _, style := range icongen.Styles {
				fmt.Fprintf(w, "%s\t%s\n", style.ID, style.Label)
			}
			return w.Flush()
		},
	}
}
