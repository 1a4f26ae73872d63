// internal/cli/dump_env.go
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/vs"
)

// dumpEnvCmd is the second half of the toolchain capture line. It runs
// after vcvarsall.bat in the same cmd.exe and reports what it set up.
var dumpEnvCmd = &cobra.Command{
	Use:    vs.DumpEnvCommand,
	Short:  "Print the process environment as a JSON object",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return vs.FromEnviron(os.Environ()).WriteJSON(cmd.OutOrStdout())
	},
}
