package cli

import (
	"fmt"
	"runtime"

	"github.com/pyboot-dev/pyboot/internal/branding"
	"github.com/spf13/cobra"
)

var versionShort bool

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Println(buildVersion)
			return nil
		}
		fmt.Printf("%s %s\n", branding.CLIName(), buildVersion)
		fmt.Printf("  commit: %s\n", buildCommit)
		fmt.Printf("  built:  %s\n", buildDate)
		fmt.Printf("  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
