package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nishantsbi/imgclsmob/internal/metadata"
)

const (
	cifarSide   = 32
	cifarPixels = cifarSide * cifarSide
)

// cifarProvider reads the CIFAR binary batch format: per record,
// labelBytes label bytes followed by 3072 pixel bytes in planar RGB,
// row-major. CIFAR-100 records carry two label bytes (coarse, fine);
// the fine label is the last one.
type cifarProvider struct {
	inputs    [][]float32
	labels    []int
	batchSize int
}

func newCifarProvider(mi *metadata.DatasetMetaInfo, subset string, batchSize, labelBytes int) (*cifarProvider, error) {
	var path = filepath.Join(mi.DataDir, subset)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset file %v", path)
	}
	defer f.Close()

	var p = &cifarProvider{batchSize: batchSize}
	var record = make([]byte, labelBytes+3*cifarPixels)
	for {
		_, err := io.ReadFull(f, record)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read dataset file %v", path)
		}
		var input = make([]float32, 3*cifarPixels)
		for ch := 0; ch < 3; ch++ {
			for i := 0; i < cifarPixels; i++ {
				var v = float32(record[labelBytes+ch*cifarPixels+i]) / 255.0
				input[ch*cifarPixels+i] = (v - mi.Mean[ch]) / mi.Std[ch]
			}
		}
		p.inputs = append(p.inputs, input)
		p.labels = append(p.labels, int(record[labelBytes-1]))
	}
	if len(p.inputs) == 0 {
		return nil, errors.Errorf("no records found in %v", path)
	}
	return p, nil
}

func (p *cifarProvider) Len() int {
	return len(p.inputs)
}

func (p *cifarProvider) Load(ctx context.Context, batches chan<- Batch) error {
	for begin := 0; begin < len(p.inputs); begin += p.batchSize {
		var end = begin + p.batchSize
		if end > len(p.inputs) {
			end = len(p.inputs)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batches <- Batch{Inputs: p.inputs[begin:end], Labels: p.labels[begin:end]}:
		}
	}
	return nil
}
