package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeCreatesLogFile(t *testing.T) {
	var dir = filepath.Join(t.TempDir(), "logs")

	exist, err := Initialize(dir, "train.log", struct{ Model string }{Model: "resnet8"}, "imgclsmob")
	require.NoError(t, err)
	require.False(t, exist)

	_, err = os.Stat(filepath.Join(dir, "train.log"))
	require.NoError(t, err)
}

func TestInitializeReportsExistingFile(t *testing.T) {
	var dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.log"), []byte("old run\n"), 0644))

	exist, err := Initialize(dir, "train.log", nil, "")
	require.NoError(t, err)
	require.True(t, exist)
}

func TestInitializeEmptyDirUsesWorkingDirectory(t *testing.T) {
	var wd, err = os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(wd)
	require.NoError(t, os.Chdir(t.TempDir()))

	exist, err := Initialize("", "eval.log", nil, "imgclsmob, logrus")
	require.NoError(t, err)
	require.False(t, exist)
	_, err = os.Stat("eval.log")
	require.NoError(t, err)
}
