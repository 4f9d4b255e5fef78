// Package dataset resolves dataset metadata into streaming batch
// sources for the evaluation pass.
package dataset

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nishantsbi/imgclsmob/internal/metadata"
	"github.com/nishantsbi/imgclsmob/pkg/models"
)

// Batch pairs decoded inputs with their ground-truth labels. For
// classification each input has one label; for segmentation a single
// input carries one label per pixel.
type Batch struct {
	Inputs [][]float32
	Labels []int
}

// Provider streams the batches of one dataset subset, single pass.
type Provider interface {
	Len() int
	Load(ctx context.Context, batches chan<- Batch) error
}

// DataSource bundles the iterator, its known length and the predictor
// constructor for one evaluable subset.
type DataSource struct {
	Provider     Provider
	Len          int
	NewPredictor func(net models.Model, numGPUs int) Predictor
}

// GetValDataSource resolves the validation subset of a dataset.
func GetValDataSource(mi *metadata.DatasetMetaInfo, batchSize, numWorkers int) (*DataSource, error) {
	return getDataSource(mi, mi.ValSubset, batchSize, numWorkers)
}

// GetTestDataSource resolves the test subset of a dataset.
func GetTestDataSource(mi *metadata.DatasetMetaInfo, batchSize, numWorkers int) (*DataSource, error) {
	return getDataSource(mi, mi.TestSubset, batchSize, numWorkers)
}

func getDataSource(mi *metadata.DatasetMetaInfo, subset string, batchSize, numWorkers int) (*DataSource, error) {
	var provider Provider
	var err error
	switch mi.Loader {
	case metadata.LoaderImageFolder:
		provider, err = newImageFolderProvider(mi, subset, batchSize, numWorkers)
	case metadata.LoaderCIFAR10:
		provider, err = newCifarProvider(mi, subset, batchSize, 1)
	case metadata.LoaderCIFAR100:
		provider, err = newCifarProvider(mi, subset, batchSize, 2)
	case metadata.LoaderVOCSeg:
		provider, err = newVOCSegProvider(mi, subset, batchSize, numWorkers)
	default:
		return nil, errors.Errorf("dataset %v has unknown loader %v", mi.Name, mi.Loader)
	}
	if err != nil {
		return nil, err
	}

	var newPredictor func(net models.Model, numGPUs int) Predictor
	if mi.MLType == metadata.MLTypeSegmentation {
		newPredictor = func(net models.Model, numGPUs int) Predictor {
			return NewSegPredictor(net, numGPUs)
		}
	} else {
		newPredictor = func(net models.Model, numGPUs int) Predictor {
			return NewClsPredictor(net, numGPUs)
		}
	}

	return &DataSource{
		Provider:     provider,
		Len:          provider.Len(),
		NewPredictor: newPredictor,
	}, nil
}
