package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

const sample = `MAJOR=2
MINOR=30
BUILD_OSS=5544
REVISION=102
# This version represents the version of the engine.
ENGINE_VERSION=24
DATA_VERSION=11
`

func TestParse(t *testing.T) {
	v, err := Parse(sample)
	require.NoError(t, err)
	assert.Equal(t, &Version{Major: 2, Minor: 30, Build: 5544, Revision: 102}, v)
	assert.Equal(t, "2.30.5544.102", v.String())
}

func TestParsePrefersBuild(t *testing.T) {
	v, err := Parse("MAJOR=2\nMINOR=30\nBUILD=1\nBUILD_OSS=5544\nREVISION=0\n")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Build)
}

func TestParseQuotedNumbers(t *testing.T) {
	v, err := Parse("MAJOR=\"3\"\nMINOR=0\nBUILD=7\nREVISION=1\n")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Major)
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"missing revision": "MAJOR=2\nMINOR=30\nBUILD=1\n",
		"not a number":     "MAJOR=\"two\"\nMINOR=30\nBUILD=1\nREVISION=0\n",
		"negative":         "MAJOR=-1\nMINOR=30\nBUILD=1\nREVISION=0\n",
		"float":            "MAJOR=2.5\nMINOR=30\nBUILD=1\nREVISION=0\n",
		"malformed":        "MAJOR==\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration))
		})
	}
}

func TestFormat(t *testing.T) {
	v := &Version{Major: 2, Minor: 30, Build: 1, Revision: 0}
	assert.Equal(t, "2,30,1,0", v.Format("@MAJOR@,@MINOR@,@BUILD@,@REVISION@"))
	assert.Equal(t, "v2 (r0) @OTHER@", v.Format("v@MAJOR@ (r@REVISION@) @OTHER@"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5544, v.Build)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}
