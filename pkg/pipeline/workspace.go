// pkg/pipeline/workspace.go
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arc-language/arm64xfwd/pkg/textfile"
)

// Intermediate file names inside the workspace
const (
	stubSource    = "empty.cc"
	nativeObject  = "empty_arm64.obj"
	emulatedObj   = "empty_x64.obj"
	nativeDef     = "mozc_arm64.def"
	nativeLib     = "mozc_arm64.lib"
	emulatedDef   = "mozc_x64.def"
	emulatedLib   = "mozc_x64.lib"
	resourceRC    = "mozc_tip_shim.rc"
	resourceRES   = "mozc_tip_shim.res"
	workDirPrefix = "arm64xfwd-"
)

// workspace is a temporary directory owned by one pipeline run
type workspace struct {
	dir   string
	files *textfile.Store
}

func newWorkspace(parent string) (*workspace, error) {
	dir, err := os.MkdirTemp(parent, workDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &workspace{
		dir: dir,
		// .def and .rc files are read by Windows tools, keep CRLF.
		files: textfile.NewOS(dir, textfile.WithNewline("\r\n")),
	}, nil
}

// path returns the absolute path of name inside the workspace
func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *workspace) remove() error {
	return os.RemoveAll(w.dir)
}
