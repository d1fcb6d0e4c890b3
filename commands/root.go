package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corona-spread-gif/config"
	"corona-spread-gif/utils"
)

// NewRootCommand builds the CLI. Flag defaults come from cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	var verbose bool
	opts := cfg.Options()

	root := &cobra.Command{
		Use:           "corona-spread-gif",
		Short:         "Render an animated map of COVID-19 cases and deaths over time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLoggerTo(os.Stderr, verbose)
			return runRender(cmd.Context(), cfg, opts, nil, logger, cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	bindRenderFlags(root, opts)

	root.AddCommand(newRenderCommand(cfg, &verbose))
	root.AddCommand(newUpdateCommand(cfg, &verbose))
	return root
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context, cfg *config.Config) {
	if err := NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
