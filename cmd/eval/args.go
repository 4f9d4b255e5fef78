package main

import (
	"path/filepath"

	"github.com/spf13/pflag"
)

// RunConfig is the flat record of CLI-derived settings, immutable once
// parsed.
type RunConfig struct {
	Model          string
	UsePretrained  bool
	Resume         string
	DataSubset     string
	NumGPUs        int
	NumWorkers     int
	BatchSize      int
	SaveDir        string
	LoggingFile    string
	LogPackages    string
	LogPipPackages string

	DisableCudnnAutotune bool
	ShowProgress         bool

	Dataset string
	WorkDir string
}

var defaultWorkDir = filepath.Join("..", "imgclsmob_data")

const (
	defaultLogPackages    = "imgclsmob"
	defaultLogPipPackages = "sirupsen/logrus, spf13/cobra, aws/aws-sdk-go"
)

// preParse reads --dataset and --work-dir ahead of the real parse, so
// the resolved dataset metadata can contribute its own flags before the
// command is executed. Unknown flags are ignored here.
func preParse(args []string) (datasetName, workDir string) {
	var fs = pflag.NewFlagSet("eval", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}

	var dataset = fs.String("dataset", "ImageNet1K",
		"dataset name. options are ImageNet1K, CUB200_2011, CIFAR10, CIFAR100, SVHN, VOC2012")
	var workDirFlag = fs.String("work-dir", defaultWorkDir,
		"path to working directory only for dataset root path preset")
	fs.IntP("num-data-workers", "j", 4, "")

	_ = fs.Parse(args)
	return *dataset, *workDirFlag
}

// addEvalFlags registers the generic evaluation flags.
func addEvalFlags(fs *pflag.FlagSet, cfg *RunConfig) {
	fs.StringVar(&cfg.Model, "model", "",
		"type of model to use. see the model registry for options")
	fs.BoolVar(&cfg.UsePretrained, "use-pretrained", false,
		"enable using pretrained model from the zoo")
	fs.StringVar(&cfg.Resume, "resume", "",
		"resume from previously saved parameters")
	fs.StringVar(&cfg.DataSubset, "data-subset", "val",
		"data subset. options are val and test")

	fs.IntVar(&cfg.NumGPUs, "num-gpus", 0,
		"number of gpus to use")
	fs.IntVarP(&cfg.NumWorkers, "num-data-workers", "j", 4,
		"number of preprocessing workers")

	fs.IntVar(&cfg.BatchSize, "batch-size", 512,
		"batch size per device (CPU/GPU)")

	fs.StringVar(&cfg.SaveDir, "save-dir", "",
		"directory of saved models and log-files")
	fs.StringVar(&cfg.LoggingFile, "logging-file-name", "train.log",
		"filename of evaluation log")

	fs.StringVar(&cfg.LogPackages, "log-packages", defaultLogPackages,
		"list of Go modules for logging")
	fs.StringVar(&cfg.LogPipPackages, "log-pip-packages", defaultLogPipPackages,
		"list of dependency modules for logging")

	fs.BoolVar(&cfg.DisableCudnnAutotune, "disable-cudnn-autotune", false,
		"disable cudnn autotune for segmentation models")
	fs.BoolVar(&cfg.ShowProgress, "show-progress", false,
		"show progress bar")

	fs.StringVar(&cfg.Dataset, "dataset", "ImageNet1K",
		"dataset name. options are ImageNet1K, CUB200_2011, CIFAR10, CIFAR100, SVHN, VOC2012")
	fs.StringVar(&cfg.WorkDir, "work-dir", defaultWorkDir,
		"path to working directory only for dataset root path preset")
}
