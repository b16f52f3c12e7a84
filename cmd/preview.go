package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/generator"
	"github.com/yeisme/raml2doc/pkg/style"
)

var (
	previewRaw bool

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Render the document section as Markdown in the terminal",
		Long: `raml2doc preview generates the same section as the conversion and
renders it as Markdown in the terminal instead of writing a .docx file.

Examples:
  raml2doc preview --raml BinarySwitch.raml --resource BinarySwitchResURI
  raml2doc preview --raml BinarySwitch.raml --annex --raw > section.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, api, cleanup, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			sink := generator.NewMarkdownSink()
			if err := job.NewGenerator(api, log).Generate(r2dCtx, sink); err != nil {
				var unknown *generator.UnknownResourceError
				if errors.As(err, &unknown) {
					return unknownResource(api, unknown.Name)
				}
				return err
			}

			if previewRaw {
				_, err := cmd.OutOrStdout().Write([]byte(sink.String()))
				return err
			}
			return style.RenderMarkdown(cmd.OutOrStdout(), sink.String(), r2dCtx.Config.Preview)
		},
	}
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "print the Markdown source without rendering")
}
