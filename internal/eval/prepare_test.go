package eval

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/nishantsbi/imgclsmob/pkg/models"
)

type fakeStore struct {
	path string
	err  error
}

func (s *fakeStore) Fetch(modelName string) (string, error) {
	return s.path, s.err
}

func saveCheckpoint(t *testing.T, modelName string, cfg models.Config) string {
	t.Helper()
	net, err := models.Get(modelName, cfg)
	require.NoError(t, err)
	saver, ok := net.(interface{ SaveWeights(string) error })
	require.True(t, ok)
	var path = filepath.Join(t.TempDir(), modelName+".ckpt")
	require.NoError(t, saver.SaveWeights(path))
	return path
}

func TestPrepareModelFromResume(t *testing.T) {
	var cfg = models.Config{Classes: 10, InChannels: 3, InSize: 32}
	var path = saveCheckpoint(t, "mlp", cfg)

	net, err := PrepareModel("mlp", false, path, cfg, &fakeStore{})
	require.NoError(t, err)
	require.Equal(t, 10, net.Classes())
}

func TestPrepareModelFromZoo(t *testing.T) {
	var cfg = models.Config{Classes: 10, InChannels: 3, InSize: 32}
	var path = saveCheckpoint(t, "mlp", cfg)

	net, err := PrepareModel("mlp", true, "", cfg, &fakeStore{path: path})
	require.NoError(t, err)
	require.Equal(t, 10, net.Classes())
}

func TestPrepareModelZooFailure(t *testing.T) {
	var cfg = models.Config{Classes: 10, InChannels: 3, InSize: 32}
	_, err := PrepareModel("mlp", true, "", cfg, &fakeStore{err: errors.New("no such checkpoint")})
	require.Error(t, err)
}

func TestPrepareModelUnknownName(t *testing.T) {
	var cfg = models.Config{Classes: 10, InChannels: 3, InSize: 32}
	_, err := PrepareModel("resnet1001", false, "whatever.ckpt", cfg, &fakeStore{})
	require.Error(t, err)
}

func TestPrepareModelMissingCheckpoint(t *testing.T) {
	var cfg = models.Config{Classes: 10, InChannels: 3, InSize: 32}
	_, err := PrepareModel("mlp", false, filepath.Join(t.TempDir(), "gone.ckpt"), cfg, &fakeStore{})
	require.Error(t, err)
}
