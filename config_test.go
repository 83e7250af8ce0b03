package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tab_width: 8
gap_size: 16
file_check_interval: 5s
motion:
  normal_terminated: 1
`), 0644))

	cfg := DefaultConfiguration()
	require.NoError(t, LoadConfigFile(path, &cfg))

	assert.Equal(t, 8, cfg.DefaultTabWidth)
	assert.Equal(t, 16, cfg.GapSize)
	assert.Equal(t, 5*time.Second, cfg.FileCheckInterval)
	assert.Equal(t, 1, cfg.Motion.NormalTerminated)
	assert.Equal(t, path, cfg.ConfigPath)

	// Keys missing from the file keep their defaults.
	assert.Equal(t, 7, cfg.GutterWidth)
	assert.Equal(t, 1, cfg.Motion.NormalFinal)
	assert.Equal(t, 1, cfg.Motion.InsertTerminated)
	assert.Equal(t, '\\', cfg.LeaderKey)
}

func TestLoadConfigFile_FixesInvalidSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap_size: 0\ntab_width: -2\n"), 0644))

	cfg := DefaultConfiguration()
	require.NoError(t, LoadConfigFile(path, &cfg))
	assert.Equal(t, defaultGapSize, cfg.GapSize)
	assert.Equal(t, 4, cfg.DefaultTabWidth)
}

func TestLoadConfigFile_RejectsNegativeMotion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("motion:\n  normal_terminated: -1\n  insert_final: 0\n"), 0644))

	cfg := DefaultConfiguration()
	cfg.Motion.InsertTerminated = 3
	require.NoError(t, LoadConfigFile(path, &cfg))
	assert.Equal(t, DefaultConfiguration().Motion, cfg.Motion)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfiguration()
	err := LoadConfigFile(filepath.Join(dir, "none.yaml"), &cfg)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tab_width: [1, 2"), 0644))
	err = LoadConfigFile(bad, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/kite/config.yaml", defaultConfigPath())
}

func TestMotionOffsetsFromConfig(t *testing.T) {
	Config.Motion.NormalTerminated = 1
	defer func() { Config = DefaultConfiguration() }()

	doc := NewDocument("abc\nxyz", "")
	c := Cursor{}
	c.Apply(MoveToLineEnd, doc, ModeNormal)
	assert.Equal(t, 3, c.Col, "caret may rest on the terminator")
}
