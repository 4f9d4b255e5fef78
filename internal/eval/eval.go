// Package eval runs one full inference pass over a data source and
// reduces the collected predictions to top-1/top-5 error.
package eval

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nishantsbi/imgclsmob/internal/dataset"
	"github.com/nishantsbi/imgclsmob/internal/metrics"
	"github.com/nishantsbi/imgclsmob/pkg/models"
)

// Result carries the two error metrics of one evaluation pass.
type Result struct {
	ErrTop1 float64
	ErrTop5 float64
}

// Test streams the data source through the model's predictor, collects
// all (prediction, label) pairs and computes top-1/top-5 error. Any
// error during iteration or metric computation propagates; nothing is
// retried.
func Test(
	ctx context.Context,
	net models.Model,
	testData *dataset.DataSource,
	numGPUs int,
	calcWeightCount bool,
	extendedLog bool,
	showProgress bool,
) (Result, error) {
	var tic = time.Now()

	var predictor = testData.NewPredictor(net, numGPUs)

	if calcWeightCount {
		log.Infof("Model: %v trainable parameters", net.ParamCount())
	}

	g, ctx := errgroup.WithContext(ctx)

	var batches = make(chan dataset.Batch, 4)

	g.Go(func() error {
		defer close(batches)
		return testData.Provider.Load(ctx, batches)
	})

	var predictions [][]float32
	var labels []int

	g.Go(func() error {
		var bar *progressbar.ProgressBar
		if showProgress {
			bar = progressbar.Default(int64(testData.Len))
		}
		for batch := range batches {
			scores, err := predictor.Predict(ctx, batch.Inputs)
			if err != nil {
				return err
			}
			predictions = append(predictions, scores...)
			labels = append(labels, batch.Labels...)
			if bar != nil {
				_ = bar.Add(len(batch.Inputs))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	top1Acc, err := metrics.Accuracy(predictions, labels)
	if err != nil {
		return Result{}, err
	}
	top5Acc, err := metrics.TopKAccuracy(predictions, labels, 5)
	if err != nil {
		return Result{}, err
	}

	var result = Result{
		ErrTop1: 1.0 - top1Acc,
		ErrTop5: 1.0 - top5Acc,
	}

	if extendedLog {
		log.Infof("Test: err-top1=%.4f (%v)\terr-top5=%.4f (%v)",
			result.ErrTop1, result.ErrTop1, result.ErrTop5, result.ErrTop5)
	} else {
		log.Infof("Test: err-top1=%.4f\terr-top5=%.4f", result.ErrTop1, result.ErrTop5)
	}
	log.Infof("Time cost: %.4f sec", time.Since(tic).Seconds())

	return result, nil
}
