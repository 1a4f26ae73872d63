// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

var (
	cfgFile string
	debug   bool
	config  *core.Config
	logger  = log.New(io.Discard, "", 0)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arm64xfwd",
	Short: "ARM64X forwarder DLL builder",
	Long: `arm64xfwd - ARM64X forwarder DLL builder

Builds the ARM64X text input processor forwarder DLL with the MSVC toolchain.
The forwarder carries no code; it redirects COM entry points to the ARM64
or x64 implementation DLL depending on the caller.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/arm64xfwd/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(resourceHeaderCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpEnvCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
	if config.Debug {
		logger = log.New(os.Stderr, "[ARM64XFWD] ", log.LstdFlags)
	}
}

// stringFlag returns the flag value when it was given, else fallback
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return f.Value.String()
	}
	if fallback != "" {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
