// internal/cli/locate.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/platform"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the vcvarsall.bat path for a target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		x := newExtractor(cmd)
		pair, err := platform.ResolvePair(x.Detector, x.Host, toolchainTarget)
		if err != nil {
			return err
		}
		path, err := x.Locator.Locate(context.Background(), pair.Token(), stringFlag(cmd, "vcvarsall_path", config.VcvarsallPath))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
