// internal/cli/gen.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/pipeline"
	"github.com/arc-language/arm64xfwd/pkg/version"
)

var (
	genBranding    string
	genVersionFile string
	genOutputDir   string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Write the module definitions and resource script",
	Long: `Write the .def and .rc inputs of the forwarder build into a directory.
Files whose content is unchanged are left alone.

Examples:
  arm64xfwd gen --version_file=version.txt --output_dir=out`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gen(cmd, stringFlag(cmd, "branding", config.Branding), genVersionFile, genOutputDir)
	},
}

func init() {
	genCmd.Flags().StringVar(&genBranding, "branding", "Mozc", "branding (Mozc, GoogleJapaneseInput)")
	genCmd.Flags().StringVar(&genVersionFile, "version_file", "", "the path to version.txt")
	genCmd.Flags().StringVar(&genOutputDir, "output_dir", ".", "directory receiving the generated files")
	_ = genCmd.MarkFlagRequired("version_file")
}

func gen(cmd *cobra.Command, branding, versionFile, dir string) error {
	if _, err := descriptor.ParseBranding(branding); err != nil {
		return err
	}
	v, err := version.Load(versionFile)
	if err != nil {
		return err
	}
	d, err := descriptor.New(branding, v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	written, err := pipeline.WriteSources(dir, d)
	if err != nil {
		return err
	}
	for _, name := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", name)
	}
	if len(written) == 0 {
		logger.Printf("All files in %s are up to date", dir)
	}
	return nil
}
