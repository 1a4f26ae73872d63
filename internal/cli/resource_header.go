// internal/cli/resource_header.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/textfile"
	"github.com/arc-language/arm64xfwd/pkg/version"
)

type resourceHeaderOptions struct {
	VersionFile string
	Output      string
	Main        string
	Template    string
	UTF8        bool
}

var rhOpts resourceHeaderOptions

var resourceHeaderCmd = &cobra.Command{
	Use:   "resource-header",
	Short: "Generate a bootstrapping Win32 resource script with version info",
	Long: `Concatenate version #defines, --main and --template into --output with
@MAJOR@, @MINOR@, @BUILD@ and @REVISION@ substituted. The output is
UTF-16LE unless --utf8 is given, and is only rewritten when it changes.

Examples:
  arm64xfwd resource-header --version_file=version.txt --main=main.rc --template=template.rc --output=out.rc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := writeResourceHeader(rhOpts)
		return err
	},
}

func init() {
	f := resourceHeaderCmd.Flags()
	f.StringVar(&rhOpts.VersionFile, "version_file", "", "the path to version.txt")
	f.StringVar(&rhOpts.Output, "output", "", "the generated resource script")
	f.StringVar(&rhOpts.Main, "main", "", "the main resource script")
	f.StringVar(&rhOpts.Template, "template", "", "the version template")
	f.BoolVar(&rhOpts.UTF8, "utf8", false, "write UTF-8 instead of UTF-16LE")
	for _, name := range []string{"version_file", "output", "main", "template"} {
		_ = resourceHeaderCmd.MarkFlagRequired(name)
	}
}

// writeResourceHeader reports whether the output was rewritten
func writeResourceHeader(opts resourceHeaderOptions) (bool, error) {
	v, err := version.Load(opts.VersionFile)
	if err != nil {
		return false, err
	}
	mainRC, err := os.ReadFile(opts.Main)
	if err != nil {
		return false, core.Errorf("resource header", core.ErrConfiguration, "reading %s: %v", opts.Main, err)
	}
	template, err := os.ReadFile(opts.Template)
	if err != nil {
		return false, core.Errorf("resource header", core.ErrConfiguration, "reading %s: %v", opts.Template, err)
	}

	enc := textfile.UTF16LE
	if opts.UTF8 {
		enc = textfile.UTF8
	}
	files := textfile.NewOS(filepath.Dir(opts.Output), textfile.WithEncoding(enc))

	content := descriptor.ResourceHeader(v, string(mainRC), string(template), "")
	changed, err := files.WriteIfChanged(filepath.Base(opts.Output), content)
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", opts.Output, err)
	}
	if changed {
		logger.Printf("✓ Updated %s", opts.Output)
	} else {
		logger.Printf("%s is up to date", opts.Output)
	}
	return changed, nil
}
