package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/style"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the JSON examples against their schemas",
	Long: `raml2doc validate checks every request and response example of the
selected resources against its JSON schema and prints a report.
The command exits with status 1 when an example does not validate.

Examples:
  raml2doc validate --raml BinarySwitch.raml
  raml2doc validate --raml BinarySwitch.raml --resource BinarySwitchResURI --schemadir schemas`,
	Aliases: []string{"check"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		job, api, cleanup, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		reports := job.NewGenerator(api, log).ValidateExamples(r2dCtx)
		out := cmd.OutOrStdout()
		if err := style.PrintHeading(out, "Examples"); err != nil {
			return err
		}
		if err := style.PrintReports(out, reports); err != nil {
			return err
		}

		failed := 0
		for _, r := range reports {
			if r.Failed() {
				failed++
			}
		}
		fmt.Fprintf(out, "%d examples checked, %d failed\n", len(reports), failed)
		if failed > 0 {
			return &exitError{}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
