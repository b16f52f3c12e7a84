package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/configs"
	"github.com/yeisme/raml2doc/pkg/jsonprop"
	"github.com/yeisme/raml2doc/pkg/resolve"
	"github.com/yeisme/raml2doc/pkg/style"
)

var (
	propertiesFile string
	propertiesJSON bool

	propertiesCmd = &cobra.Command{
		Use:   "properties",
		Short: "Show the property definition table",
		Long: `raml2doc properties prints the property table that would be written to
the document, either for a resource of a RAML file or for one JSON schema.

Examples:
  raml2doc properties --raml BinarySwitch.raml --resource BinarySwitchResURI
  raml2doc properties --raml BinarySwitch.raml --resource BinarySwitchResURI --put --sensor
  raml2doc properties --file oic.r.switch.binary.json --json`,
		Aliases: []string{"props"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var props []jsonprop.Property
			if propertiesFile != "" {
				job := buildJob(cmd)
				res := resolve.New(nil, job.SchemaDir, nil, log)
				text, located, err := res.ReadFile(r2dCtx, propertiesFile)
				if err != nil {
					return err
				}
				props, err = jsonprop.ExtractProperties(text)
				if err != nil {
					return fmt.Errorf("%s: %w", located, err)
				}
			} else {
				job, api, cleanup, err := prepare(cmd)
				if err != nil {
					return err
				}
				defer cleanup()
				props = job.NewGenerator(api, log).Properties(r2dCtx)
			}

			if propertiesJSON {
				return configs.OutputData(props, configs.FormatJSON, cmd.OutOrStdout())
			}
			rows := make([][]string, 0, len(props))
			for _, p := range props {
				rows = append(rows, p.Row())
			}
			return style.PrintTable(cmd.OutOrStdout(), jsonprop.Headers, rows, 0)
		},
	}
)

func init() {
	rootCmd.AddCommand(propertiesCmd)

	propertiesCmd.Flags().StringVarP(&propertiesFile, "file", "f", "", "JSON schema file instead of a RAML resource")
	propertiesCmd.Flags().BoolVarP(&propertiesJSON, "json", "j", false, "output the properties as JSON")
}
