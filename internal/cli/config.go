// internal/cli/config.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Long: `Print the configuration after applying the config file and global flags.
With --save, write it back to --config (default $HOME/.config/arm64xfwd/config.yaml).

Examples:
  arm64xfwd config
  arm64xfwd config --save --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), config, cfgFile, configSave)
	},
}

func init() {
	configCmd.Flags().BoolVar(&configSave, "save", false, "write the effective configuration to the config file")
}

func showConfig(w io.Writer, cfg *core.Config, path string, save bool) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := core.SaveConfig(cfg, path); err != nil {
		return err
	}
	if path == "" {
		path, _ = core.DefaultConfigPath()
	}
	fmt.Fprintf(w, "✓ Saved %s\n", path)
	return nil
}
