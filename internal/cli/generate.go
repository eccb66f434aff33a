package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golden-vcr/icongen/internal/icons"
)

func NewGenerateCommand(root *RootCommand) *cobra.Command {
	var (
		styleID string
		colors  []string
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <theme>",
		Short: "Generate four icons for a theme",
		Example: `  # Four pastel coffee icons
  icongen generate coffee --style pastel-flat

  # Use a custom palette and open the results in a browser
  icongen generate "paper plane" --style clay-3d --color "#FF5733" --color "#1E90FF" --open`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := icons.Request{
				Prompt:  strings.Join(args, " "),
				StyleID: styleID,
				Colors:  colors,
			}
			return runGenerate(cmd.Context(), root, cmd.OutOrStdout(), r, open)
		},
	}

	cmd.Flags().StringVarP(&styleID, "style", "s", "pastel-flat", "Icon style ID (see 'icongen styles')")
	cmd.Flags().StringArrayVarP(&colors, "color", "c", nil, "Palette color in #RRGGBB form; may be repeated")
	cmd.Flags().BoolVar(&open, "open", false, "Open each generated icon in a web browser")

	return cmd
}

func runGenerate(ctx context.Context, root *RootCommand, out io.Writer, r icons.Request, open bool) error {
	result, err := root.Client().GenerateIcons(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to generate icons: %w", err)
	}
	for _, url := range result.Images {
		fmt.Fprintln(out, url)
		if open {
			if err := root.openURL(url); err != nil {
				return fmt.Errorf("failed to open %s: %w", url, err)
			}
		}
	}
	return nil
}
