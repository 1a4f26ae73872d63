package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/arm64xfwd"
	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/platform"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func versionFile(t *testing.T) string {
	return writeFile(t, t.TempDir(), "version.txt", "# comment\nMAJOR=2\nMINOR=30\nBUILD=5544\nREVISION=102\n")
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "arm64xfwd version 0.1.0")
}

func TestDumpEnvCommand(t *testing.T) {
	t.Setenv("ARM64XFWD_TEST_VAR", "vé")
	out := execute(t, "dump-env")

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "vé", got["ARM64XFWD_TEST_VAR"])
	assert.Contains(t, out, `\u00e9`)
}

func TestDumpEnvIsHidden(t *testing.T) {
	assert.True(t, dumpEnvCmd.Hidden)
}

func TestBuildSkipsOffWindows(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mozc_tip64x.dll")
	err := build(context.Background(), "linux", &arm64xfwd.Options{
		Branding:    "Mozc",
		VersionFile: filepath.Join(t.TempDir(), "missing.txt"),
		Output:      dest,
	})
	require.NoError(t, err)
	assert.NoFileExists(t, dest)
}

func TestBuildDryRun(t *testing.T) {
	var out bytes.Buffer
	err := build(context.Background(), "linux", &arm64xfwd.Options{
		Branding:    "Mozc",
		VersionFile: versionFile(t),
		Output:      filepath.Join(t.TempDir(), "mozc_tip64x.dll"),
		DryRun:      true,
		DryRunOut:   &out,
		Stdout:      &out,
		TempDir:     t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(out.String(), "dryrun: "))
	assert.Contains(t, out.String(), "/out:mozc_tip64x.dll")
	assert.NotContains(t, out.String(), "✓ Built")
}

func TestGen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, gen(cmd, "GoogleJapaneseInput", versionFile(t), dir))
	assert.Equal(t, 3, strings.Count(out.String(), "✓ wrote"))

	rc, err := os.ReadFile(filepath.Join(dir, "mozc_tip_shim.rc"))
	require.NoError(t, err)
	assert.Contains(t, string(rc), "FILEVERSION 2,30,5544,102\r\n")
	assert.Contains(t, string(rc), `"GoogleIMEJaTIP64X.dll"`)

	out.Reset()
	require.NoError(t, gen(cmd, "GoogleJapaneseInput", versionFile(t), dir))
	assert.Empty(t, out.String())
}

func TestGenUnknownBranding(t *testing.T) {
	err := gen(&cobra.Command{}, "Chromium", versionFile(t), t.TempDir())
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}

func TestGenChecksBrandingBeforeReadingVersion(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	err := gen(&cobra.Command{}, "Chromium", filepath.Join(t.TempDir(), "missing.txt"), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
	assert.Contains(t, err.Error(), "unknown branding")
	assert.NoDirExists(t, dir)
}

func TestResourceHeader(t *testing.T) {
	dir := t.TempDir()
	opts := resourceHeaderOptions{
		VersionFile: versionFile(t),
		Output:      filepath.Join(dir, "out.rc"),
		Main:        writeFile(t, dir, "main.rc", "// main @MAJOR@"),
		Template:    writeFile(t, dir, "template.rc", "// template @REVISION@"),
		UTF8:        true,
	}

	changed, err := writeResourceHeader(opts)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, "#define MOZC_RES_VERSION_NUMBER 2,30,5544,102\n"+
		"#define MOZC_RES_VERSION_STRING \"2.30.5544.102\"\n"+
		"#define MOZC_RES_SPECIFIC_VERSION_STRING \"2.30.5544.102\"\n"+
		"// main 2\n"+
		"// template 102\n", string(data))

	changed, err = writeResourceHeader(opts)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResourceHeaderUTF16(t *testing.T) {
	dir := t.TempDir()
	opts := resourceHeaderOptions{
		VersionFile: versionFile(t),
		Output:      filepath.Join(dir, "out.rc"),
		Main:        writeFile(t, dir, "main.rc", ""),
		Template:    writeFile(t, dir, "template.rc", ""),
	}
	// A UTF-8 file that does not decode as UTF-16LE counts as absent.
	writeFile(t, dir, "out.rc", "odd")

	changed, err := writeResourceHeader(opts)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, []byte{'#', 0, 'd', 0}, data[:4])
}

func TestResourceHeaderMissingMain(t *testing.T) {
	_, err := writeResourceHeader(resourceHeaderOptions{
		VersionFile: versionFile(t),
		Output:      filepath.Join(t.TempDir(), "out.rc"),
		Main:        filepath.Join(t.TempDir(), "missing.rc"),
	})
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}

func TestPrintHost(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	d := &platform.Detector{
		GOOS:   "windows",
		API:    func() (string, bool) { return "", false },
		Getenv: func(k string) string { return map[string]string{"PROCESSOR_ARCHITECTURE": "AMD64"}[k] },
	}
	require.NoError(t, printHost(cmd, d))
	assert.Equal(t, "x64\n", out.String())

	d.GOOS = "linux"
	err := printHost(cmd, d)
	assert.True(t, errors.Is(err, core.ErrEnvironment))
}

func TestShowConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm64xfwd", "config.yaml")
	cfg := core.DefaultConfig()
	cfg.Host = "x64"

	var out bytes.Buffer
	require.NoError(t, showConfig(&out, cfg, path, true))
	assert.Contains(t, out.String(), "host: x64")
	assert.Contains(t, out.String(), "✓ Saved "+path)

	got, err := core.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestShowConfigWithoutSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	require.NoError(t, showConfig(&out, core.DefaultConfig(), path, false))
	assert.Contains(t, out.String(), "branding: Mozc")
	assert.NoFileExists(t, path)
}
