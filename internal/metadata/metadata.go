// Package metadata describes the datasets known to the evaluation
// harness. A DatasetMetaInfo is resolved once from the dataset name and
// is read-only afterwards apart from the flags it binds.
package metadata

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/nishantsbi/imgclsmob/pkg/models"
)

const (
	MLTypeClassification = "imgcls"
	MLTypeSegmentation   = "imgseg"
)

// Loader kinds understood by the dataset package.
const (
	LoaderImageFolder = "imagefolder"
	LoaderCIFAR10     = "cifar10"
	LoaderCIFAR100    = "cifar100"
	LoaderVOCSeg      = "vocseg"
)

type DatasetMetaInfo struct {
	Name       string
	MLType     string
	Classes    int
	InChannels int
	Loader     string

	// Normalization applied by the val transform.
	Mean [3]float32
	Std  [3]float32

	// Relative dataset directory under the work dir, used as the
	// --data-dir flag default.
	RootDirName string

	ValSubset  string
	TestSubset string

	ValMetricNames []string

	// Flag-bound settings.
	DataDir         string
	InSize          int
	ResizeInvFactor float64
}

// Get resolves dataset metadata by name.
func Get(name string) (*DatasetMetaInfo, error) {
	switch name {
	case "ImageNet1K":
		return &DatasetMetaInfo{
			Name:            name,
			MLType:          MLTypeClassification,
			Classes:         1000,
			InChannels:      3,
			Loader:          LoaderImageFolder,
			Mean:            [3]float32{0.485, 0.456, 0.406},
			Std:             [3]float32{0.229, 0.224, 0.225},
			RootDirName:     "imagenet",
			ValSubset:       "val",
			TestSubset:      "test",
			ValMetricNames:  []string{"err-top1", "err-top5"},
			InSize:          224,
			ResizeInvFactor: 0.875,
		}, nil
	case "CUB200_2011":
		return &DatasetMetaInfo{
			Name:            name,
			MLType:          MLTypeClassification,
			Classes:         200,
			InChannels:      3,
			Loader:          LoaderImageFolder,
			Mean:            [3]float32{0.485, 0.456, 0.406},
			Std:             [3]float32{0.229, 0.224, 0.225},
			RootDirName:     "CUB_200_2011",
			ValSubset:       "val",
			TestSubset:      "test",
			ValMetricNames:  []string{"err-top1", "err-top5"},
			InSize:          224,
			ResizeInvFactor: 0.875,
		}, nil
	case "CIFAR10":
		return &DatasetMetaInfo{
			Name:           name,
			MLType:         MLTypeClassification,
			Classes:        10,
			InChannels:     3,
			Loader:         LoaderCIFAR10,
			Mean:           [3]float32{0.4914, 0.4822, 0.4465},
			Std:            [3]float32{0.2023, 0.1994, 0.2010},
			RootDirName:    "cifar10",
			ValSubset:      "test_batch.bin",
			TestSubset:     "test_batch.bin",
			ValMetricNames: []string{"err-top1", "err-top5"},
			InSize:         32,
		}, nil
	case "CIFAR100":
		return &DatasetMetaInfo{
			Name:           name,
			MLType:         MLTypeClassification,
			Classes:        100,
			InChannels:     3,
			Loader:         LoaderCIFAR100,
			Mean:           [3]float32{0.5071, 0.4865, 0.4409},
			Std:            [3]float32{0.2673, 0.2564, 0.2762},
			RootDirName:    "cifar100",
			ValSubset:      "test.bin",
			TestSubset:     "test.bin",
			ValMetricNames: []string{"err-top1", "err-top5"},
			InSize:         32,
		}, nil
	case "SVHN":
		return &DatasetMetaInfo{
			Name:           name,
			MLType:         MLTypeClassification,
			Classes:        10,
			InChannels:     3,
			Loader:         LoaderImageFolder,
			Mean:           [3]float32{0.4377, 0.4438, 0.4728},
			Std:            [3]float32{0.1980, 0.2010, 0.1970},
			RootDirName:    "svhn",
			ValSubset:      "val",
			TestSubset:     "test",
			ValMetricNames: []string{"err-top1", "err-top5"},
			InSize:         32,
		}, nil
	case "VOC2012":
		return &DatasetMetaInfo{
			Name:            name,
			MLType:          MLTypeSegmentation,
			Classes:         21,
			InChannels:      3,
			Loader:          LoaderVOCSeg,
			Mean:            [3]float32{0.485, 0.456, 0.406},
			Std:             [3]float32{0.229, 0.224, 0.225},
			RootDirName:     filepath.Join("voc", "VOCdevkit", "VOC2012"),
			ValSubset:       "val",
			TestSubset:      "test",
			ValMetricNames:  []string{"err-top1", "err-top5"},
			InSize:          480,
			ResizeInvFactor: 1.0,
		}, nil
	}
	return nil, errors.Errorf("dataset %v is not registered", name)
}

// AddFlags contributes the dataset-specific flags to the evaluation
// command, with defaults preset from the work dir.
func (mi *DatasetMetaInfo) AddFlags(fs *pflag.FlagSet, workDir string) {
	fs.StringVar(&mi.DataDir, "data-dir", filepath.Join(workDir, mi.RootDirName),
		"path to directory with the dataset")
	fs.IntVar(&mi.InSize, "input-size", mi.InSize,
		"size of the input for model")
	if mi.Loader == LoaderImageFolder {
		fs.Float64Var(&mi.ResizeInvFactor, "resize-inv-factor", mi.ResizeInvFactor,
			"inverted ratio for input image crop")
	}
}

// NetConfig is the dataset contribution to model construction.
func (mi *DatasetMetaInfo) NetConfig() models.Config {
	return models.Config{
		Classes:    mi.Classes,
		InChannels: mi.InChannels,
		InSize:     mi.InSize,
	}
}
