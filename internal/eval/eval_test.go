package eval

import (
	"bytes"
	"context"
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nishantsbi/imgclsmob/internal/dataset"
	"github.com/nishantsbi/imgclsmob/pkg/models"
)

// echoModel returns its input as the score vector.
type echoModel struct {
	classes int
	params  int64
}

func (m *echoModel) Name() string                  { return "echo" }
func (m *echoModel) Classes() int                  { return m.classes }
func (m *echoModel) InSize() (h, w int)            { return 1, 1 }
func (m *echoModel) ParamCount() int64             { return m.params }
func (m *echoModel) LoadWeights(path string) error { return nil }
func (m *echoModel) Forward(src []float32) []float32 {
	var dst = make([]float32, len(src))
	copy(dst, src)
	return dst
}

type stubProvider struct {
	batches []dataset.Batch
}

func (p *stubProvider) Len() int {
	var n = 0
	for _, b := range p.batches {
		n += len(b.Labels)
	}
	return n
}

func (p *stubProvider) Load(ctx context.Context, batches chan<- dataset.Batch) error {
	for _, b := range p.batches {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batches <- b:
		}
	}
	return nil
}

func newStubSource(batches ...dataset.Batch) *dataset.DataSource {
	var p = &stubProvider{batches: batches}
	return &dataset.DataSource{
		Provider: p,
		Len:      p.Len(),
		NewPredictor: func(net models.Model, numGPUs int) dataset.Predictor {
			return dataset.NewClsPredictor(net, numGPUs)
		},
	}
}

// scoresFor builds a 10-class score vector with the top class at 0.9
// and, when second differs, the runner-up at 0.8.
func scoresFor(top, second int) []float32 {
	var scores = make([]float32, 10)
	for i := range scores {
		scores[i] = 0.01
	}
	scores[top] = 0.9
	if second != top {
		scores[second] = 0.8
	}
	return scores
}

func TestTestComputesTopKErrors(t *testing.T) {
	// class 2 is correct for every sample, ranks top-1 for 2 of 4 and
	// top-5 for all: err-top1 = 0.5000, err-top5 = 0.0000
	var src = newStubSource(
		dataset.Batch{
			Inputs: [][]float32{scoresFor(2, 2), scoresFor(2, 2)},
			Labels: []int{2, 2},
		},
		dataset.Batch{
			Inputs: [][]float32{scoresFor(7, 2), scoresFor(5, 2)},
			Labels: []int{2, 2},
		},
	)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(io.Discard)

	result, err := Test(context.Background(), &echoModel{classes: 10, params: 123}, src, 0, true, false, false)
	require.NoError(t, err)
	require.InDelta(t, 0.5, result.ErrTop1, 1e-9)
	require.InDelta(t, 0.0, result.ErrTop5, 1e-9)

	var logged = buf.String()
	require.Contains(t, logged, "err-top1=0.5000")
	require.Contains(t, logged, "err-top5=0.0000")
	require.Contains(t, logged, "Model: 123 trainable parameters")
	require.Contains(t, logged, "Time cost:")
}

func TestTestExtendedLogFormat(t *testing.T) {
	var src = newStubSource(dataset.Batch{
		Inputs: [][]float32{scoresFor(2, 2)},
		Labels: []int{2},
	})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(io.Discard)

	_, err := Test(context.Background(), &echoModel{classes: 10}, src, 0, false, true, false)
	require.NoError(t, err)

	require.Contains(t, buf.String(), "err-top1=0.0000 (0)")
	require.NotContains(t, buf.String(), "trainable parameters")
}

func TestTestPreservesPairingAcrossBatches(t *testing.T) {
	// every sample is correct only if predictions stay paired with the
	// labels of their own batch
	var src = newStubSource(
		dataset.Batch{Inputs: [][]float32{scoresFor(0, 0)}, Labels: []int{0}},
		dataset.Batch{Inputs: [][]float32{scoresFor(9, 9)}, Labels: []int{9}},
		dataset.Batch{Inputs: [][]float32{scoresFor(4, 4)}, Labels: []int{4}},
	)
	log.SetOutput(io.Discard)

	result, err := Test(context.Background(), &echoModel{classes: 10}, src, 0, false, false, false)
	require.NoError(t, err)
	require.InDelta(t, 0.0, result.ErrTop1, 1e-9)
}

func TestTestEmptySourceFails(t *testing.T) {
	log.SetOutput(io.Discard)
	_, err := Test(context.Background(), &echoModel{classes: 10}, newStubSource(), 0, false, false, false)
	require.Error(t, err)
}
