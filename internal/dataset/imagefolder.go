package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nishantsbi/imgclsmob/internal/metadata"
)

// imageFolderProvider reads a class-per-directory image tree, the
// layout used by the ImageNet/CUB/SVHN exports:
//
//	<data-dir>/<subset>/<class name>/<image files>
//
// Classes are indexed by the sorted directory names.
type imageFolderProvider struct {
	samples   []imageSample
	batchSize int
	workers   int
	transform *valTransform
}

type imageSample struct {
	path  string
	label int
}

func newImageFolderProvider(mi *metadata.DatasetMetaInfo, subset string, batchSize, numWorkers int) (*imageFolderProvider, error) {
	// zero workers would leave the chunk producer with no consumer
	if numWorkers < 1 {
		numWorkers = 1
	}
	var root = filepath.Join(mi.DataDir, subset)
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset subset %v", root)
	}
	var classes []string
	for _, de := range dirs {
		if de.IsDir() {
			classes = append(classes, de.Name())
		}
	}
	sort.Strings(classes)

	var samples []imageSample
	for label, class := range classes {
		files, err := os.ReadDir(filepath.Join(root, class))
		if err != nil {
			return nil, err
		}
		for _, de := range files {
			if de.IsDir() {
				continue
			}
			switch filepath.Ext(de.Name()) {
			case ".jpg", ".jpeg", ".png", ".JPEG":
				samples = append(samples, imageSample{
					path:  filepath.Join(root, class, de.Name()),
					label: label,
				})
			}
		}
	}
	if len(samples) == 0 {
		return nil, errors.Errorf("no images found under %v", root)
	}

	return &imageFolderProvider{
		samples:   samples,
		batchSize: batchSize,
		workers:   numWorkers,
		transform: &valTransform{
			inSize:          mi.InSize,
			resizeInvFactor: mi.ResizeInvFactor,
			mean:            mi.Mean,
			std:             mi.Std,
		},
	}, nil
}

func (p *imageFolderProvider) Len() int {
	return len(p.samples)
}

func (p *imageFolderProvider) Load(ctx context.Context, batches chan<- Batch) error {
	g, ctx := errgroup.WithContext(ctx)

	var chunks = make(chan []imageSample, p.workers)

	g.Go(func() error {
		defer close(chunks)
		for begin := 0; begin < len(p.samples); begin += p.batchSize {
			var end = begin + p.batchSize
			if end > len(p.samples) {
				end = len(p.samples)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chunks <- p.samples[begin:end]:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return p.decodeChunks(ctx, chunks, batches)
		})
	}

	// batches stays open for the caller to close after Load returns
	g.Go(func() error {
		wg.Wait()
		return nil
	})

	return g.Wait()
}

func (p *imageFolderProvider) decodeChunks(
	ctx context.Context,
	chunks <-chan []imageSample,
	batches chan<- Batch,
) error {
	for chunk := range chunks {
		var batch = Batch{
			Inputs: make([][]float32, 0, len(chunk)),
			Labels: make([]int, 0, len(chunk)),
		}
		for _, s := range chunk {
			img, err := loadImage(s.path)
			if err != nil {
				return errors.Wrapf(err, "decode %v", s.path)
			}
			batch.Inputs = append(batch.Inputs, p.transform.Apply(img))
			batch.Labels = append(batch.Labels, s.label)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batches <- batch:
		}
	}
	return nil
}
