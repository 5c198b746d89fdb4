package cli

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/branding"
	"github.com/agentdex-labs/agentdex/internal/config"
	"github.com/agentdex-labs/agentdex/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scans a directory tree of agent plugin sources and publishes a
static catalog manifest: extracted declarations, category assignments, and
suggested presets, recomputed from scratch on every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logging.Init(logging.Config{
			Level:  logging.ParseLevel(config.Get(config.KeyLogLevel)),
			Pretty: !strings.EqualFold(config.Get(config.KeyLogFormat), "json"),
		})
		// Every invocation gets a fresh run id so interleaved logs from
		// concurrent runs can be told apart.
		logging.Logger = logging.With().Str("run_id", ulid.Make().String()).Logger()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
