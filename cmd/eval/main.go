package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nishantsbi/imgclsmob/internal/dataset"
	"github.com/nishantsbi/imgclsmob/internal/eval"
	"github.com/nishantsbi/imgclsmob/internal/logging"
	"github.com/nishantsbi/imgclsmob/internal/metadata"
	"github.com/nishantsbi/imgclsmob/internal/zoo"
)

func main() {
	var datasetName, workDir = preParse(os.Args[1:])

	mi, err := metadata.Get(datasetName)
	if err != nil {
		log.Fatal(err)
	}

	var cfg RunConfig
	var cmd = &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a model for image classification/segmentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// flag errors are already behind us, keep usage out of
			// runtime failures
			cmd.SilenceUsage = true
			return run(&cfg, mi)
		},
	}
	addEvalFlags(cmd.Flags(), &cfg)
	mi.AddFlags(cmd.Flags(), workDir)
	if err := cmd.MarkFlagRequired("model"); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *RunConfig, mi *metadata.DatasetMetaInfo) error {
	if cfg.DisableCudnnAutotune {
		os.Setenv("MXNET_CUDNN_AUTOTUNE_DEFAULT", "0")
	}

	logFileExist, err := logging.Initialize(
		cfg.SaveDir, cfg.LoggingFile, cfg,
		cfg.LogPackages+","+cfg.LogPipPackages)
	if err != nil {
		log.Fatal(err)
	}
	if logFileExist {
		log.Info("Appending to an existing log file")
	}

	if err := validateConfig(cfg, mi); err != nil {
		return err
	}

	var numGPUs = prepareContext(cfg.NumGPUs)

	net, err := eval.PrepareModel(
		cfg.Model,
		cfg.UsePretrained,
		strings.TrimSpace(cfg.Resume),
		mi.NetConfig(),
		zoo.NewStore())
	if err != nil {
		return err
	}

	var testData *dataset.DataSource
	if cfg.DataSubset == "val" {
		testData, err = dataset.GetValDataSource(mi, cfg.BatchSize, cfg.NumWorkers)
	} else {
		testData, err = dataset.GetTestDataSource(mi, cfg.BatchSize, cfg.NumWorkers)
	}
	if err != nil {
		return err
	}

	_, err = eval.Test(
		context.Background(),
		net,
		testData,
		numGPUs,
		true, // calcWeightCount
		true, // extendedLog
		cfg.ShowProgress)
	return err
}

// validateConfig enforces the run preconditions before any model or
// dataset loading happens.
func validateConfig(cfg *RunConfig, mi *metadata.DatasetMetaInfo) error {
	if mi.MLType == metadata.MLTypeSegmentation && cfg.BatchSize != 1 {
		return errors.Errorf("dataset %v requires --batch-size 1", mi.Name)
	}
	if mi.MLType == metadata.MLTypeSegmentation && !cfg.DisableCudnnAutotune {
		return errors.Errorf("dataset %v requires --disable-cudnn-autotune", mi.Name)
	}
	var resume = strings.TrimSpace(cfg.Resume)
	if !cfg.UsePretrained && resume == "" {
		return errors.New("either --use-pretrained or --resume must be supplied")
	}
	if cfg.UsePretrained && resume != "" {
		return errors.New("--use-pretrained and --resume are mutually exclusive")
	}
	return nil
}

// prepareContext selects the compute devices for the run.
func prepareContext(numGPUs int) int {
	if numGPUs > 0 {
		log.Infof("Using %v gpu stream(s)", numGPUs)
	}
	return numGPUs
}
