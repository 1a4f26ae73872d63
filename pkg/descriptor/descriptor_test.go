package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/version"
)

func newDescriptor(t *testing.T, branding string) *Descriptor {
	t.Helper()
	d, err := New(branding, &version.Version{Major: 2, Minor: 30, Build: 1, Revision: 0})
	require.NoError(t, err)
	return d
}

func TestNewRejectsUnknownBranding(t *testing.T) {
	_, err := New("Chromium", &version.Version{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	_, err = New("Mozc", nil)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}

func TestBrandings(t *testing.T) {
	assert.Equal(t, []string{"GoogleJapaneseInput", "Mozc"}, Brandings())
}

func TestVersionString(t *testing.T) {
	d := newDescriptor(t, "Mozc")
	assert.Equal(t, "2.30.1.0", d.VersionString("."))
	assert.Equal(t, "2,30,1,0", d.VersionString(","))
}

func TestFileNames(t *testing.T) {
	d := newDescriptor(t, "GoogleJapaneseInput")

	name, err := d.FileName(RoleForwarder)
	require.NoError(t, err)
	assert.Equal(t, "GoogleIMEJaTIP64X.dll", name)

	name, err = d.FileName(RoleARM64Impl)
	require.NoError(t, err)
	assert.Equal(t, "GoogleIMEJaTIP64Arm.dll", name)

	name, err = d.FileName(RoleX64Impl)
	require.NoError(t, err)
	assert.Equal(t, "GoogleIMEJaTIP64.dll", name)

	_, err = d.FileName("x86-impl")
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	_, err = d.ImplName(platform.X86)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}

func TestExportDefinition(t *testing.T) {
	d := newDescriptor(t, "Mozc")

	def, err := d.ExportDefinition(platform.ARM64)
	require.NoError(t, err)
	assert.Equal(t, "EXPORTS\n"+
		"    DllGetClassObject = mozc_tip64arm.DllGetClassObject\n"+
		"    DllCanUnloadNow   = mozc_tip64arm.DllCanUnloadNow", def)
}

func TestExportDefinitionForwardsToArchStem(t *testing.T) {
	for _, branding := range Brandings() {
		d := newDescriptor(t, branding)
		for _, arch := range []platform.Architecture{platform.ARM64, platform.X64} {
			impl, err := d.ImplName(arch)
			require.NoError(t, err)

			def, err := d.ExportDefinition(arch)
			require.NoError(t, err)

			lines := strings.Split(def, "\n")
			require.Len(t, lines, 1+len(Exports))
			assert.Equal(t, "EXPORTS", lines[0])
			for i, sym := range Exports {
				_, target, ok := strings.Cut(lines[i+1], "= ")
				require.True(t, ok)
				assert.Equal(t, Stem(impl)+"."+sym, target)
			}
		}
	}
}

func TestResourceScript(t *testing.T) {
	d := newDescriptor(t, "Mozc")
	rc := d.ResourceScript()

	assert.True(t, strings.HasPrefix(rc, "#include \"winres.h\"\nLANGUAGE LANG_JAPANESE, SUBLANG_DEFAULT\n"))
	assert.True(t, strings.HasSuffix(rc, "END\n"))
	for _, want := range []string{
		"FILEVERSION 2,30,1,0\n",
		"PRODUCTVERSION 2,30,1,0\n",
		"        BLOCK \"041104b0\"\n",
		`            VALUE "CompanyName", "Google LLC"`,
		`            VALUE "FileDescription", "Mozc TIP Module Forwarder"`,
		`            VALUE "FileVersion", "2.30.1.0"`,
		`            VALUE "InternalName", "mozc_tip64x"`,
		`            VALUE "OriginalFilename", "mozc_tip64x.dll"`,
		`            VALUE "ProductVersion", "2.30.1.0"`,
		`        VALUE "Translation", 0x411, 1200`,
	} {
		assert.Contains(t, rc, want)
	}
}

func TestResourceScriptIsDeterministic(t *testing.T) {
	for _, branding := range Brandings() {
		a := newDescriptor(t, branding).ResourceScript()
		b := newDescriptor(t, branding).ResourceScript()
		assert.Equal(t, a, b)
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "mozc_tip64", Stem("mozc_tip64.dll"))
	assert.Equal(t, "GoogleIMEJaTIP64Arm", Stem(`C:\out\GoogleIMEJaTIP64Arm.dll`))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestResourceHeader(t *testing.T) {
	v := &version.Version{Major: 2, Minor: 30, Build: 1, Revision: 0}

	got := ResourceHeader(v, "#include \"main.h\"", "// @MAJOR@", "")
	assert.Equal(t, "#define MOZC_RES_VERSION_NUMBER 2,30,1,0\n"+
		"#define MOZC_RES_VERSION_STRING \"2.30.1.0\"\n"+
		"#define MOZC_RES_SPECIFIC_VERSION_STRING \"2.30.1.0\"\n"+
		"#include \"main.h\"\n"+
		"// 2\n", got)

	got = ResourceHeader(v, "", "", "dev")
	assert.Contains(t, got, "#define MOZC_RES_SPECIFIC_VERSION_STRING \"2.30.1.0  (dev)\"\n")
}
