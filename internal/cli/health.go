package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewHealthCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the icon generation API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !root.Client().Health(cmd.Context()) {
				return fmt.Errorf("icon generation API at %s is unavailable", root.apiURL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
