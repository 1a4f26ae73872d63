// pkg/vs/constants.go
package vs

const (
	// VcvarsallRelPath is what vswhere is asked to find inside an installation
	VcvarsallRelPath = "VC/Auxiliary/Build/vcvarsall.bat"

	// DefaultProgramFilesX86 is used when ProgramFiles(x86) is unset
	DefaultProgramFilesX86 = `C:\Program Files (x86)`

	// ComponentRedist is required for every architecture
	ComponentRedist = "Microsoft.VisualStudio.Component.VC.Redist.14.Latest"

	// ComponentARM64 is additionally required when targeting arm64
	ComponentARM64 = "Microsoft.VisualStudio.Component.VC.Tools.ARM64"

	// DumpEnvCommand is the hidden subcommand printing the environment as JSON
	DumpEnvCommand = "dump-env"
)

// Products accepted by the discovery query, any edition will do
var Products = []string{
	"Microsoft.VisualStudio.Product.Enterprise",
	"Microsoft.VisualStudio.Product.Professional",
	"Microsoft.VisualStudio.Product.Community",
	"Microsoft.VisualStudio.Product.BuildTools",
}

const vcvarsallHint = " Consider using --vcvarsall_path option e.g.\n" +
	` --vcvarsall_path=C:\VS\VC\Auxiliary\Build\vcvarsall.bat`
