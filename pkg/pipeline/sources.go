// pkg/pipeline/sources.go
package pipeline

import (
	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/textfile"
)

// Source is a generated text input of the build
type Source struct {
	Name    string
	Content string
}

// Sources returns the module definitions and the resource script for d,
// named as they are inside the workspace.
func Sources(d *descriptor.Descriptor) ([]Source, error) {
	native, err := d.ExportDefinition(platform.ARM64)
	if err != nil {
		return nil, err
	}
	emulated, err := d.ExportDefinition(platform.X64)
	if err != nil {
		return nil, err
	}
	return []Source{
		{Name: nativeDef, Content: native},
		{Name: emulatedDef, Content: emulated},
		{Name: resourceRC, Content: d.ResourceScript()},
	}, nil
}

// WriteSources writes Sources(d) into dir with CRLF line endings, leaving
// files with identical content untouched. It returns the names it wrote.
func WriteSources(dir string, d *descriptor.Descriptor) ([]string, error) {
	srcs, err := Sources(d)
	if err != nil {
		return nil, err
	}
	files := textfile.NewOS(dir, textfile.WithNewline("\r\n"))
	var written []string
	for _, s := range srcs {
		changed, err := files.WriteIfChanged(s.Name, s.Content)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, s.Name)
		}
	}
	return written, nil
}
