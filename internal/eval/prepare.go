package eval

import (
	log "github.com/sirupsen/logrus"

	"github.com/nishantsbi/imgclsmob/pkg/models"
)

// CheckpointStore resolves a model name to a local checkpoint path.
type CheckpointStore interface {
	Fetch(modelName string) (string, error)
}

// PrepareModel constructs the named network and fills its weights from
// a local checkpoint or the pretrained zoo. The caller guarantees that
// exactly one of usePretrained / pretrainedPath is supplied.
func PrepareModel(
	modelName string,
	usePretrained bool,
	pretrainedPath string,
	netConfig models.Config,
	store CheckpointStore,
) (models.Model, error) {
	net, err := models.Get(modelName, netConfig)
	if err != nil {
		return nil, err
	}

	if pretrainedPath != "" {
		log.Infof("Loading model: %v", pretrainedPath)
		if err := net.LoadWeights(pretrainedPath); err != nil {
			return nil, err
		}
		return net, nil
	}

	if usePretrained {
		path, err := store.Fetch(modelName)
		if err != nil {
			return nil, err
		}
		log.Infof("Loading model: %v", path)
		if err := net.LoadWeights(path); err != nil {
			return nil, err
		}
	}
	return net, nil
}
