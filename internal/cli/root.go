package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geofacet/pkg/buildinfo"
)

// configPath is the --config persistent flag, shared by all commands.
var configPath string

// Execute runs the geofacet CLI and returns an error if any command
// fails. The context carries signal cancellation from main.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "geofacet",
		Short:        "geofacet renders per-entity plots arranged geographically",
		Long:         `geofacet arranges per-entity plots ("facets") into a grid whose cell positions approximate the entities' real-world geographic arrangement, such as US states.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/geofacet/config.toml)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newGridsCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
