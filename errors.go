// errors.go
package arm64xfwd

import (
	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/pipeline"
)

var (
	// ErrConfiguration indicates invalid options or an invalid config file
	ErrConfiguration = core.ErrConfiguration

	// ErrToolNotFound indicates vswhere, vcvarsall.bat or a build tool is missing
	ErrToolNotFound = core.ErrToolNotFound

	// ErrChildProcess indicates a tool exited with a failure status
	ErrChildProcess = core.ErrChildProcess

	// ErrEnvironment indicates the host could not be identified
	ErrEnvironment = core.ErrEnvironment
)

type (
	// Error wraps an error with the operation that failed
	Error = core.Error

	// ProcessError carries the command line and output of a failed tool
	ProcessError = core.ProcessError

	// StepError names the build step that failed
	StepError = pipeline.StepError
)
