package commands

import (
	"fmt"

	"github.com/leapstack-labs/exupdate/internal/cli/config"
	"github.com/leapstack-labs/exupdate/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration exupdate would use, after merging defaults,
exupdate.yaml, EXUPDATE_* environment variables and flags.`,
		Example: `  # Show configuration as YAML
  exupdate config

  # Show configuration as JSON
  exupdate config --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd)
		},
	}
}

func runConfig(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	configFile := config.GetConfigFileUsed()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.ConfigOutput{ConfigFile: configFile, Config: cmdCtx.Cfg})
	}

	data, err := yaml.Marshal(cmdCtx.Cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	source := configFile
	if source == "" {
		source = "(none)"
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Configuration"))
		r.Println("")
		r.Println(output.FormatKeyValue("Config file", source))
		r.Println("")
		r.Println("```yaml")
		r.Printf("%s", data)
		r.Println("```")
		return nil
	}

	r.Header(1, "Configuration")
	r.KeyValue("Config file", source)
	r.Println("")
	r.Printf("%s", data)
	return nil
}
