package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/letpl/internal/maincmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.letpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMainRunDefaultCommand(t *testing.T) {
	path := writeFile(t, "-(10,3)")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "7\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestMainTokenizeCommand(t *testing.T) {
	path := writeFile(t, "42")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"tokenize", path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "\tint\t\"42\"")
}

func TestMainCompileCommand(t *testing.T) {
	path := writeFile(t, "-(10,3)")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"compile", path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "SUBTRACT")
}

func TestMainTypeErrorExitsWithTypeErrorCode(t *testing.T) {
	path := writeFile(t, "-(true,1)")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.ExitCode(3), code)
	assert.Equal(t, "error: type error: expected type int, got bool\n", errOut.String())
}

func TestMainUndefinedNameExitsWithNameErrorCode(t *testing.T) {
	path := writeFile(t, "x")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.ExitCode(2), code)
	assert.Contains(t, errOut.String(), "error: name error:")
}

func TestMainAssertFailureExitsWithAssertErrorCode(t *testing.T) {
	path := writeFile(t, "assert zero?(-(3, 4)) then 42")
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.ExitCode(5), code)
	assert.Equal(t, "error: Assert at line 1\n", errOut.String())
}

func TestMainStepLimitExceededExitsWithRuntimeErrorCode(t *testing.T) {
	path := writeFile(t, `letrec int f(n: int) (f n) in (f 0)`)
	cfgPath := filepath.Join(t.TempDir(), "limits.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_steps = 10\n"), 0o644))
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{Config: cfgPath}
	code := c.Main([]string{path}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.ExitCode(4), code)
	assert.Contains(t, errOut.String(), "error: runtime error:")
}

func TestMainVersionFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{BuildVersion: "1.2.3", BuildDate: "2026-08-01"}
	code := c.Main([]string{"--version"}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "1.2.3")
}

func TestMainUnknownCommandArgIsTreatedAsPath(t *testing.T) {
	// "missing.letpl" is not a recognized subcommand name, so it is treated
	// as the path for the default "run" command and fails opening the file.
	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"missing.letpl"}, mainer.Stdio{Stdout: &out, Stderr: &errOut})
	assert.Equal(t, mainer.Failure, code)
}
