package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/generator"
	"github.com/yeisme/raml2doc/pkg/style"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show the resource tree and the CRUDN matrix",
	Long: `raml2doc resources prints the resources of a RAML file as a tree,
followed by the CRUDN table of the selected resources.

Examples:
  raml2doc resources --raml BinarySwitch.raml
  raml2doc resources --raml BinarySwitch.raml --resource BinarySwitchResURI`,
	Aliases: []string{"res"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		job, api, cleanup, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		selected := api.Select(job.Resource)
		out := cmd.OutOrStdout()
		if err := style.PrintResourceTree(out, api, selected); err != nil {
			return err
		}
		if err := style.PrintHeading(out, "CRUDN behavior"); err != nil {
			return err
		}
		return style.PrintTable(out, generator.CRUDNHeaders, generator.CRUDNRows(selected), 0)
	},
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}
