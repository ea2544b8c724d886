package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinylittleshell/elf/internal/core"
)

// newTestApp returns an app isolated from the user's home directory, plus
// its captured stdout.
func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"ELF_ROOT", "ELF_PREFIX", "ELF_MARKER", "ELF_PROMPT", "ELF_LOG_LEVEL", "ELF_INTERPRETERS", "ELF_BIN_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var stdout bytes.Buffer
	return &app{
		paths:      core.NewPaths(t.TempDir()),
		stdin:      strings.NewReader(""),
		stdout:     &stdout,
		stderr:     &stdout,
		isTerminal: func() bool { return false },
		executable: os.Executable,
		logger:     zaptest.NewLogger(t),
	}, &stdout
}

func writeCommand(t *testing.T, root, dir, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	path := filepath.Join(root, dir, "impl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures need a POSIX shell")
	}
}

func TestVersionFlag(t *testing.T) {
	a, stdout := newTestApp(t)

	code := a.execute([]string{"--version"})

	assert.Equal(t, 0, code)
	assert.Equal(t, BUILD_VERSION+"\n", stdout.String())
}

func TestDispatchForwardsArgsAndExitCode(t *testing.T) {
	skipWithoutShell(t)
	a, stdout := newTestApp(t)
	root := t.TempDir()
	writeCommand(t, root, "elf-greet", "#!/bin/sh\necho \"hello $1 $2\"\nexit 3\n")

	code := a.execute([]string{"--root", root, "greet", "big", "--world"})

	assert.Equal(t, 3, code)
	assert.Contains(t, stdout.String(), "hello big --world")
}

func TestDispatchUnknownCommand(t *testing.T) {
	a, stdout := newTestApp(t)
	root := t.TempDir()

	code := a.execute([]string{"--root", root, "nope"})

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Error: Command 'nope' not found.")
}

func TestDispatchHonorsPrefixFlag(t *testing.T) {
	skipWithoutShell(t)
	a, _ := newTestApp(t)
	root := t.TempDir()
	writeCommand(t, root, "tool-ok", "#!/bin/sh\nexit 0\n")

	code := a.execute([]string{"--root", root, "--prefix", "tool-", "ok"})

	assert.Equal(t, 0, code)
}

func TestConfigFileIsApplied(t *testing.T) {
	skipWithoutShell(t)
	a, _ := newTestApp(t)
	root := t.TempDir()
	writeCommand(t, root, "elf-seven", "#!/bin/sh\nexit 7\n")

	require.NoError(t, a.paths.EnsureDataDir())
	require.NoError(t, os.WriteFile(a.paths.ConfigFile, []byte("root: "+root+"\n"), 0644))

	code := a.execute([]string{"seven"})

	assert.Equal(t, 7, code)
}

func TestNoArgsWithoutTerminal(t *testing.T) {
	a, stdout := newTestApp(t)

	code := a.execute([]string{"--root", t.TempDir()})

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), ErrCommandRequired.Error())
}

func TestInvalidConfigFails(t *testing.T) {
	a, stdout := newTestApp(t)
	require.NoError(t, a.paths.EnsureDataDir())
	require.NoError(t, os.WriteFile(a.paths.ConfigFile, []byte("root: [unclosed\n"), 0644))

	code := a.execute([]string{"anything"})

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "elf: ")
}

func TestInstallFlag(t *testing.T) {
	skipWithoutShell(t)
	a, stdout := newTestApp(t)
	root := t.TempDir()
	binDir := filepath.Join(t.TempDir(), "bin")
	writeCommand(t, root, "elf-greet", "#!/bin/sh\nexit 0\n")

	self := filepath.Join(t.TempDir(), "elf")
	require.NoError(t, os.WriteFile(self, []byte("elf binary"), 0755))
	a.executable = func() (string, error) { return self, nil }

	code := a.execute([]string{"--install", "--root", root, "--bin-dir", binDir})

	require.Equal(t, 0, code, stdout.String())
	assert.FileExists(t, filepath.Join(binDir, "elf"))
	assert.FileExists(t, filepath.Join(binDir, "elf-greet"))
	assert.Contains(t, stdout.String(), "Installing ELF suite to "+binDir)
}

func TestInstallWithoutExecutable(t *testing.T) {
	a, _ := newTestApp(t)
	a.executable = func() (string, error) { return filepath.Join(t.TempDir(), "missing"), nil }

	code := a.execute([]string{"--install", "--root", t.TempDir(), "--bin-dir", t.TempDir()})

	assert.Equal(t, 1, code)
}
