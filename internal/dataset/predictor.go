package dataset

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nishantsbi/imgclsmob/pkg/models"
)

// Predictor converts raw input batches into class-score outputs
// suitable for metric computation.
type Predictor interface {
	Predict(ctx context.Context, inputs [][]float32) ([][]float32, error)
}

// numStreams maps the requested device count onto forward-pass
// parallelism; with no devices requested every CPU is used.
func numStreams(numGPUs int) int {
	if numGPUs > 0 {
		return numGPUs
	}
	return runtime.NumCPU()
}

// ClsPredictor runs a classification network over a batch, one score
// vector per sample.
type ClsPredictor struct {
	net     models.Model
	streams int
}

func NewClsPredictor(net models.Model, numGPUs int) *ClsPredictor {
	return &ClsPredictor{net: net, streams: numStreams(numGPUs)}
}

func (p *ClsPredictor) Predict(ctx context.Context, inputs [][]float32) ([][]float32, error) {
	var scores = make([][]float32, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.streams)
	for i := range inputs {
		var i = i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = p.net.Forward(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// SegPredictor runs a segmentation network over a single-image batch
// and unpacks the planar class maps into one score vector per pixel.
type SegPredictor struct {
	net     models.Model
	streams int
}

func NewSegPredictor(net models.Model, numGPUs int) *SegPredictor {
	return &SegPredictor{net: net, streams: numStreams(numGPUs)}
}

func (p *SegPredictor) Predict(ctx context.Context, inputs [][]float32) ([][]float32, error) {
	var classes = p.net.Classes()
	var perImage = make([][][]float32, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.streams)
	for i := range inputs {
		var i = i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var out = p.net.Forward(inputs[i])
			if len(out)%classes != 0 {
				return errors.Errorf("segmentation output length %v is not a multiple of %v classes",
					len(out), classes)
			}
			var pixels = len(out) / classes
			var pixScores = make([][]float32, pixels)
			for pix := 0; pix < pixels; pix++ {
				pixScores[pix] = make([]float32, classes)
				for class := 0; class < classes; class++ {
					pixScores[pix][class] = out[class*pixels+pix]
				}
			}
			perImage[i] = pixScores
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var scores [][]float32
	for _, pixScores := range perImage {
		scores = append(scores, pixScores...)
	}
	return scores, nil
}
