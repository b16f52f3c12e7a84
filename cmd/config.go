package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/raml2doc/pkg/configs"
	"github.com/yeisme/raml2doc/pkg/utils/schema"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage raml2doc configuration",
		Long:    `raml2doc config allows you to view and manage your raml2doc configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate raml2doc configuration",
		Long:  `raml2doc config validate checks the validity of your configuration file and environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 检查配置文件加载
			if err := r2dCtx.Viper.ReadInConfig(); err != nil {
				return fmt.Errorf("config file error: %w", err)
			}

			var cfg configs.Config
			if err := r2dCtx.Viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("config file error: %w", err)
			}
			if cfg.Proxy.Port < 0 || cfg.Proxy.Port > 65535 {
				return fmt.Errorf("proxy.port out of range: %d", cfg.Proxy.Port)
			}

			fileUsed := r2dCtx.Viper.ConfigFileUsed()
			log.Info().Msgf("Config file used: %s", fileUsed)
			fmt.Fprintln(cmd.OutOrStdout(), fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List raml2doc configuration",
		Long: `raml2doc config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - convert: Template, schema directory and heading style settings
  - proxy: Local schema proxy settings
  - validate: Example validation settings
  - preview: Terminal preview settings

Examples:
  raml2doc config list                    # Show all configuration (viper raw data)
  raml2doc config list --all              # Show all configuration with defaults
  raml2doc config list proxy              # Show only proxy settings
  raml2doc config list --format json      # Output in JSON format
  raml2doc config list --yaml             # Output in YAML format (shorthand)
  raml2doc config list convert --all --toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			// 确定输出格式
			format := configs.GetOutputFormatFromFlags(cmd)

			// 检查是否显示完整配置（包含默认值）
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(r2dCtx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("get config section: %w", err)
			}

			return configs.OutputData(data, format, cmd.OutOrStdout())
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize raml2doc configuration",
		Long: `raml2doc config init creates a new configuration file with default settings.

Examples:
  raml2doc config init                    # Create .raml2doc.yaml in current directory
  raml2doc config init --path ~/.config/raml2doc/.raml2doc.yaml
  raml2doc config init --format toml      # Create TOML format config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if format == configs.FormatText {
				return fmt.Errorf("text format is not supported for config files")
			}

			// 如果没有指定路径，使用默认路径
			if path == "" {
				path = ".raml2doc." + string(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return fmt.Errorf("create config file: %w", err)
			}

			log.Info().Msgf("Config file created successfully: %s", path)
			return nil
		},
		Args: cobra.NoArgs,
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Long: `raml2doc config schema prints the JSON Schema describing the configuration
file, usable by editors for completion and validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return schema.GenConfigSchema(cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	// 添加 config list 标志
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	// 添加 config init 标志
	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
