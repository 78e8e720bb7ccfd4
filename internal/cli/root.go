package cli

import (
	"github.com/pyboot-dev/pyboot/internal/branding"
	"github.com/pyboot-dev/pyboot/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps Python src-layout projects: it sanitizes the
project name, writes the package skeleton transactionally, provisions a
virtual environment with uv (falling back to copy mode on synced or
cross-device filesystems), and can initialize git. Any failure leaves the
target directory exactly as it was found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
