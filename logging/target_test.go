package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterTarget_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher()
	d.AddTarget(NewWriterTarget(&buf), LevelDebug)

	d.Debugf("first")
	d.Errorf("second")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "DEBUG")
	require.Contains(t, lines[0], "first")
	require.Contains(t, lines[1], "ERROR")
	require.Contains(t, lines[1], "second")
}

func TestFileTarget_WritesAndRestrictsPermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "sequent.log")

	target, err := NewFileTarget(logPath)
	require.NoError(t, err)
	defer func() { _ = target.Close() }()

	d := NewDispatcher()
	d.AddTarget(target, LevelDebug)
	d.Warningf("persisted warning")

	require.NoError(t, target.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "WARNING")
	require.Contains(t, string(content), "persisted warning")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileTarget_TightensExistingPermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sequent.log")
	require.NoError(t, os.WriteFile(logPath, []byte("old\n"), 0644))

	target, err := NewFileTarget(logPath)
	require.NoError(t, err)
	defer func() { _ = target.Close() }()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileTarget_CloseNilIsSafe(t *testing.T) {
	var target *FileTarget
	require.NoError(t, target.Close())
}
