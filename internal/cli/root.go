package cli

import (
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/golden-vcr/icongen/internal/client"
)

const defaultAPIURL = "http://localhost:4000"

// RootCommand holds state shared by all subcommands
type RootCommand struct {
	apiURL  string
	openURL func(url string) error
}

func (r *RootCommand) Client() *client.Client {
	return client.NewClient(r.apiURL)
}

func NewRootCommand() *cobra.Command {
	root := &RootCommand{
		openURL: browser.OpenURL,
	}
	return newRootCommand(root)
}

func newRootCommand(root *RootCommand) *cobra.Command {
	defaultURL := os.Getenv("ICONGEN_API_URL")
	if defaultURL == "" {
		defaultURL = defaultAPIURL
	}

	cmd := &cobra.Command{
		Use:           "icongen",
		Short:         "Generate sets of icons from a theme and a visual style",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&root.apiURL, "api-url", defaultURL, "Base URL of the icon generation API (env: ICONGEN_API_URL)")

	cmd.AddCommand(NewGenerateCommand(root))
	cmd.AddCommand(NewStylesCommand(root))
	cmd.AddCommand(NewHealthCommand(root))
	return cmd
}
