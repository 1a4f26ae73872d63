// internal/cli/host.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/platform"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Print the host architecture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printHost(cmd, platform.NewDetector())
	},
}

func printHost(cmd *cobra.Command, d *platform.Detector) error {
	machine, ok := d.Machine()
	if !ok {
		return core.Errorf("detect host", core.ErrEnvironment, "cannot identify the host architecture on %s", d.GOOS)
	}
	p := d.Platform()
	logger.Printf("Platform: %s", p)
	if p.Process != "" && p.Process != p.Host {
		logger.Printf("  ⚠️  This process runs as %s under emulation", p.Process)
	}
	fmt.Fprintln(cmd.OutOrStdout(), platform.Normalize(machine))
	return nil
}
