// Package cmd provides command-line interface commands for raml2doc
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/context"
	"github.com/yeisme/raml2doc/pkg/generator"
	log2 "github.com/yeisme/raml2doc/pkg/utils/log"
	"github.com/yeisme/raml2doc/pkg/utils/version"
)

var (
	r2dCtx *context.Raml2docContext
	log    log2.Logger

	// Global flags
	globalFlags = context.GlobalFlags{}

	// Conversion flags，子命令共用
	jobFlags = convertFlags{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "raml2doc",
	Short: "raml2doc converts a RAML 0.8 resource into a Word document section",
	Long: `raml2doc reads a RAML 0.8 API description and writes the documentation
section of one resource (or all resources) into a .docx file based on a
Word template: introduction, URIs, resource type, the reproduced RAML,
the property table and the CRUDN table.

Examples:
  raml2doc --raml BinarySwitch.raml --resource BinarySwitchResURI
  raml2doc --raml BinarySwitch.raml --docx ResourceTemplate.docx --outdocx out.docx
  raml2doc --raml BinarySwitch.raml --pick --schema oic.baseResource.json
  raml2doc --heading1 Resource_Types --docx ResourceTemplate.docx --outdocx title.docx`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.VersionEnable {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}

		if jobFlags.heading1 != "" {
			job := buildJob(cmd)
			if job.Output == "" && job.RAML == "" {
				return fmt.Errorf("--heading1 needs --outdocx or --raml")
			}
			return generator.AddTitle(job.Template, job.OutputName(), jobFlags.heading1, job.Annex, log)
		}

		if jobFlags.raml == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No RAML file provided")
			return cmd.Help()
		}
		return runConvert(cmd)
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := context.InitRaml2docContext(cmd.Context(), globalFlags)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		r2dCtx = ctx
		log = ctx.Logger

		log.Info().Msgf("Execute Command: %s %s", "raml2doc", strings.Join(os.Args[1:], " "))
		return nil
	},
}

func runConvert(cmd *cobra.Command) error {
	job, api, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	banner(job)

	g, err := generator.Convert(r2dCtx, job, api, log)
	if err != nil {
		var unknown *generator.UnknownResourceError
		if errors.As(err, &unknown) {
			return unknownResource(api, unknown.Name)
		}
		return err
	}

	failed := 0
	for _, rep := range g.Reports() {
		if rep.Failed() {
			failed++
		}
	}
	if failed > 0 {
		log.Warn().Int("failed", failed).Int("checked", len(g.Reports())).Msg("examples not valid against their schema")
	}
	fmt.Fprintln(cmd.OutOrStdout(), job.OutputName())
	return nil
}

// banner 输出生效的选项以及模板需要的样式
func banner(job generator.Job) {
	log.Info().
		Str("raml", job.RAML).
		Str("docx", job.Template).
		Str("outdocx", job.OutputName()).
		Str("schemadir", job.SchemaDir).
		Str("resource", job.Resource).
		Bool("annex", job.Annex).
		Bool("put", job.Put).
		Bool("composite", job.Composite).
		Bool("sensor", job.Sensor).
		Strs("schema", job.Schemas).
		Strs("schemaWT", job.SchemasWT).
		Msg("options")
	log.Info().Strs("styles", generator.StyleContract).Msg("template styles used")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signalContext()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var exit *exitError
		if !errors.As(err, &exit) || exit.msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")

	jobFlags.register(rootCmd.PersistentFlags())
	jobFlags.registerOutput(rootCmd.Flags())
}
