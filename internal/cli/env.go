// internal/cli/env.go
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/runner"
	"github.com/arc-language/arm64xfwd/pkg/vs"
)

var (
	toolchainTarget    string
	toolchainHost      string
	toolchainVcvarsall string
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the MSVC toolchain environment as JSON",
	Long: `Run vcvarsall.bat for --target and print the resulting environment
as a JSON object, in the order the variables were captured.

Examples:
  arm64xfwd env
  arm64xfwd env --target=x64 --host=arm64`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		x := newExtractor(cmd)
		env, err := x.Extract(context.Background(), toolchainTarget, stringFlag(cmd, "vcvarsall_path", config.VcvarsallPath))
		if err != nil {
			return err
		}
		return env.WriteJSON(cmd.OutOrStdout())
	},
}

func init() {
	for _, c := range []*cobra.Command{envCmd, locateCmd} {
		c.Flags().StringVar(&toolchainTarget, "target", string(platform.ARM64), "target architecture (x86, x64, arm64)")
		c.Flags().StringVar(&toolchainHost, "host", "", "the architecture of the host environment")
		c.Flags().StringVar(&toolchainVcvarsall, "vcvarsall_path", "", "the path to vcvarsall.bat")
	}
}

func newExtractor(cmd *cobra.Command) *vs.Extractor {
	x := vs.NewExtractor(&runner.Exec{Stderr: cmd.ErrOrStderr()}, logger)
	x.Host = stringFlag(cmd, "host", config.Host)
	x.Locator.VswherePath = config.VswherePath
	return x
}
