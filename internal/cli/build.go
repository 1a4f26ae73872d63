// internal/cli/build.go
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd"
)

var (
	buildDryRun      bool
	buildVersionFile string
	buildBranding    string
	buildOutput      string
	buildHost        string
	buildVcvarsall   string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the ARM64X forwarder DLL",
	Long: `Build the ARM64X forwarder DLL and copy it to --output.

Examples:
  arm64xfwd build --version_file=version.txt --output=out/mozc_tip64x.dll
  arm64xfwd build --branding=GoogleJapaneseInput --version_file=version.txt --output=GoogleIMEJaTIP64X.dll
  arm64xfwd build --dryrun --version_file=version.txt --output=mozc_tip64x.dll`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildDryRun, "dryrun", false, "print the tool invocations instead of running them")
	buildCmd.Flags().StringVar(&buildVersionFile, "version_file", "", "the path to version.txt")
	buildCmd.Flags().StringVar(&buildBranding, "branding", "Mozc", "branding (Mozc, GoogleJapaneseInput)")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "the path of the generated forwarder DLL file")
	buildCmd.Flags().StringVar(&buildHost, "host", "", "the architecture of the host environment")
	buildCmd.Flags().StringVar(&buildVcvarsall, "vcvarsall_path", "", "the path to vcvarsall.bat")
	_ = buildCmd.MarkFlagRequired("version_file")
	_ = buildCmd.MarkFlagRequired("output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts := &arm64xfwd.Options{
		Branding:      stringFlag(cmd, "branding", config.Branding),
		VersionFile:   buildVersionFile,
		Output:        buildOutput,
		Host:          stringFlag(cmd, "host", config.Host),
		VcvarsallPath: stringFlag(cmd, "vcvarsall_path", config.VcvarsallPath),
		VswherePath:   config.VswherePath,
		DryRun:        buildDryRun,
		DryRunOut:     cmd.OutOrStdout(),
		Stdout:        cmd.OutOrStdout(),
		Stderr:        cmd.ErrOrStderr(),
		Logger:        logger,
	}
	return build(context.Background(), runtime.GOOS, opts)
}

func build(ctx context.Context, goos string, opts *arm64xfwd.Options) error {
	if goos != "windows" && !opts.DryRun {
		logger.Printf("Skipping: ARM64X forwarders can only be built on Windows (host OS %s)", goos)
		return nil
	}

	res, err := arm64xfwd.BuildForwarder(ctx, opts)
	if err != nil {
		return err
	}
	if !opts.DryRun {
		fmt.Fprintf(opts.Stdout, "✓ Built %s\n", res.Output)
	}
	return nil
}
