// pkg/descriptor/header.go
package descriptor

import "strings"

// ResourceHeader builds the bootstrapping resource script that prefixes main
// and template with version #defines, then substitutes the version.
func ResourceHeader(version VersionProvider, main, template, buildDetails string) string {
	if buildDetails != "" {
		buildDetails = "  (" + buildDetails + ")"
	}
	var b strings.Builder
	b.WriteString("#define MOZC_RES_VERSION_NUMBER @MAJOR@,@MINOR@,@BUILD@,@REVISION@\n")
	b.WriteString(`#define MOZC_RES_VERSION_STRING "@MAJOR@.@MINOR@.@BUILD@.@REVISION@"` + "\n")
	b.WriteString(`#define MOZC_RES_SPECIFIC_VERSION_STRING "@MAJOR@.@MINOR@.@BUILD@.@REVISION@` + buildDetails + `"` + "\n")
	b.WriteString(main + "\n")
	b.WriteString(template + "\n")
	return version.Format(b.String())
}
