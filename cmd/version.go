package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/configs"
	"github.com/yeisme/raml2doc/pkg/utils/version"
)

var (
	// Version command flags
	versionDetailed bool
	versionJSON     bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `
Display version information for raml2doc.

Examples:
  # Show short version info (default)
  raml2doc version

  # Show detailed version info
  raml2doc version --detailed

  # Show version info in JSON format
  raml2doc version --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		switch {
		case versionJSON:
			return configs.OutputData(version.GetVersion(), configs.FormatJSON, out)
		case versionDetailed:
			fmt.Fprintln(out, version.GetVersionString())
		default:
			fmt.Fprintln(out, version.GetShortVersionString())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionDetailed, "detailed", "d", false, "show detailed version information")
	versionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "output version information in JSON format")
}
