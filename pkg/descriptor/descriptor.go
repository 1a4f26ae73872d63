// Package descriptor derives every name and generated text of a forwarder
// DLL from a branding and a version. Nothing here touches the filesystem.
package descriptor

import (
	"fmt"
	"path"
	"strings"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/platform"
)

// VersionProvider substitutes @MAJOR@, @MINOR@, @BUILD@ and @REVISION@
type VersionProvider interface {
	Format(template string) string
}

// Exports are forwarded to the implementation DLL, in this order
var Exports = []string{"DllGetClassObject", "DllCanUnloadNow"}

// Copyright is used for both CompanyName and LegalCopyright
const Copyright = "Google LLC"

// Descriptor is the immutable description of one forwarder build
type Descriptor struct {
	branding Branding
	product  Product
	version  VersionProvider
}

// New validates branding and returns a Descriptor
func New(branding string, version VersionProvider) (*Descriptor, error) {
	b, err := ParseBranding(branding)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, core.Errorf("new descriptor", core.ErrConfiguration, "version is required")
	}
	return &Descriptor{
		branding: b,
		product:  products[b],
		version:  version,
	}, nil
}

// Branding returns the validated branding
func (d *Descriptor) Branding() Branding {
	return d.branding
}

// Product returns the branding's table entry
func (d *Descriptor) Product() Product {
	return d.product
}

// VersionString joins the four version components with separator
func (d *Descriptor) VersionString(separator string) string {
	return d.version.Format(strings.Join([]string{"@MAJOR@", "@MINOR@", "@BUILD@", "@REVISION@"}, separator))
}

// FileName returns the DLL name for role
func (d *Descriptor) FileName(role Role) (string, error) {
	return d.product.FileName(role)
}

// ForwarderName returns the forwarder DLL file name
func (d *Descriptor) ForwarderName() string {
	return d.product.ForwarderDLL
}

// ImplName returns the implementation DLL that arch calls are forwarded to
func (d *Descriptor) ImplName(arch platform.Architecture) (string, error) {
	switch arch {
	case platform.ARM64:
		return d.product.ARM64ImplDLL, nil
	case platform.X64:
		return d.product.X64ImplDLL, nil
	default:
		return "", core.Errorf("implementation name", core.ErrConfiguration,
			"no implementation DLL for architecture %q", arch)
	}
}

// ExportDefinition returns the module-definition body forwarding Exports
// to the arch implementation DLL.
func (d *Descriptor) ExportDefinition(arch platform.Architecture) (string, error) {
	impl, err := d.ImplName(arch)
	if err != nil {
		return "", err
	}
	return ExportDefinition(Stem(impl)), nil
}

// ExportDefinition lists Exports forwarded to target
func ExportDefinition(target string) string {
	width := 0
	for _, sym := range Exports {
		width = max(width, len(sym))
	}
	lines := []string{"EXPORTS"}
	for _, sym := range Exports {
		lines = append(lines, fmt.Sprintf("    %-*s = %s.%s", width, sym, target, sym))
	}
	return strings.Join(lines, "\n")
}

// ResourceScript returns the version resource of the forwarder DLL
func (d *Descriptor) ResourceScript() string {
	commaVersion := d.VersionString(",")
	dotVersion := d.VersionString(".")
	original := d.product.ForwarderDLL

	return strings.Join([]string{
		`#include "winres.h"`,
		`LANGUAGE LANG_JAPANESE, SUBLANG_DEFAULT`,
		``,
		`VS_VERSION_INFO VERSIONINFO`,
		`FILEVERSION ` + commaVersion,
		`PRODUCTVERSION ` + commaVersion,
		`FILEFLAGSMASK VS_FF_DEBUG | VS_FF_PRERELEASE | VS_FF_PATCHED | VS_FF_INFOINFERRED`,
		`FILEFLAGS 0x0L`,
		`FILEOS VOS__WINDOWS32`,
		`FILETYPE VFT_DLL`,
		`FILESUBTYPE VFT2_UNKNOWN`,
		`BEGIN`,
		`    BLOCK "StringFileInfo"`,
		`    BEGIN`,
		`        BLOCK "041104b0"`,
		`        BEGIN`,
		stringValue("CompanyName", Copyright),
		stringValue("FileDescription", d.product.FileDescription),
		stringValue("FileVersion", dotVersion),
		stringValue("InternalName", Stem(original)),
		stringValue("LegalCopyright", Copyright),
		stringValue("OriginalFilename", original),
		stringValue("ProductName", d.product.ProductName),
		stringValue("ProductVersion", dotVersion),
		`        END`,
		`    END`,
		`    BLOCK "VarFileInfo"`,
		`    BEGIN`,
		`        VALUE "Translation", 0x411, 1200`,
		`    END`,
		`END`,
		``,
	}, "\n")
}

func stringValue(key, value string) string {
	return fmt.Sprintf(`            VALUE "%s", "%s"`, key, value)
}

// Stem strips the directory and extension from a file name
func Stem(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
