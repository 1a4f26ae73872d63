package runner

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

func TestCommandString(t *testing.T) {
	c := Command{Program: `C:\Program Files\cl.exe`, Args: []string{"/nologo", "/c", "empty.cc"}}
	assert.Equal(t, `"C:\Program Files\cl.exe" /nologo /c empty.cc`, c.String())

	c.CmdLine = `cmd.exe /c "x"`
	assert.Equal(t, `cmd.exe /c "x"`, c.String())
}

func TestDryRunRecords(t *testing.T) {
	var out bytes.Buffer
	d := NewDryRun(&out)

	res, err := d.Run(context.Background(), Command{Program: "link.exe", Args: []string{"/lib"}, Dir: "w"})
	require.NoError(t, err)
	assert.Equal(t, &Result{}, res)

	_, err = d.Run(context.Background(), Command{Program: "rc.exe"})
	require.NoError(t, err)

	cmds := d.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "link.exe", cmds[0].Program)
	assert.Equal(t, "rc.exe", cmds[1].Program)
	assert.Contains(t, out.String(), "dryrun: run link.exe /lib (cwd=w)\n")
}

func TestExecCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	e := &Exec{}
	res, err := e.Run(context.Background(), Command{Program: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	e := &Exec{}
	_, err := e.Run(context.Background(), Command{Program: "sh", Args: []string{"-c", "echo nope >&2; exit 3"}, Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrChildProcess))

	var pe *core.ProcessError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.ExitCode)
	assert.Equal(t, "nope\n", pe.Stderr)
	assert.Equal(t, []string{"sh", "-c", "echo nope >&2; exit 3"}, pe.Command)
}

func TestExecMissingProgram(t *testing.T) {
	e := &Exec{}
	_, err := e.Run(context.Background(), Command{Program: "definitely-not-a-real-tool-1234"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrToolNotFound))
}
