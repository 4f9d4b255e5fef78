package dataset

import (
	"bufio"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nishantsbi/imgclsmob/internal/metadata"
)

// vocSegProvider reads the VOC segmentation layout: image ids from
// ImageSets/Segmentation/<subset>.txt, inputs from JPEGImages, masks
// from SegmentationClass. One image per batch; each pixel contributes
// one label. Boundary pixels (255) are counted as background.
type vocSegProvider struct {
	root    string
	ids     []string
	workers int
	mean    [3]float32
	std     [3]float32
}

func newVOCSegProvider(mi *metadata.DatasetMetaInfo, subset string, batchSize, numWorkers int) (*vocSegProvider, error) {
	if batchSize != 1 {
		return nil, errors.Errorf("segmentation evaluation requires batch size 1, got %v", batchSize)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	var listPath = filepath.Join(mi.DataDir, "ImageSets", "Segmentation", subset+".txt")
	f, err := os.Open(listPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read subset list %v", listPath)
	}
	defer f.Close()

	var ids []string
	var scanner = bufio.NewScanner(f)
	for scanner.Scan() {
		var id = strings.TrimSpace(scanner.Text())
		if id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.Errorf("no image ids in %v", listPath)
	}

	return &vocSegProvider{
		root:    mi.DataDir,
		ids:     ids,
		workers: numWorkers,
		mean:    mi.Mean,
		std:     mi.Std,
	}, nil
}

func (p *vocSegProvider) Len() int {
	return len(p.ids)
}

func (p *vocSegProvider) Load(ctx context.Context, batches chan<- Batch) error {
	g, ctx := errgroup.WithContext(ctx)

	var ids = make(chan string, p.workers)

	g.Go(func() error {
		defer close(ids)
		for _, id := range p.ids {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ids <- id:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return p.decodeIds(ctx, ids, batches)
		})
	}

	g.Go(func() error {
		wg.Wait()
		return nil
	})

	return g.Wait()
}

func (p *vocSegProvider) decodeIds(
	ctx context.Context,
	ids <-chan string,
	batches chan<- Batch,
) error {
	for id := range ids {
		img, err := loadImage(filepath.Join(p.root, "JPEGImages", id+".jpg"))
		if err != nil {
			return errors.Wrapf(err, "decode image %v", id)
		}
		mask, err := loadImage(filepath.Join(p.root, "SegmentationClass", id+".png"))
		if err != nil {
			return errors.Wrapf(err, "decode mask %v", id)
		}

		var batch = Batch{
			Inputs: [][]float32{normalizeCHW(img, p.mean, p.std)},
			Labels: maskLabels(mask),
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batches <- batch:
		}
	}
	return nil
}

func maskLabels(mask image.Image) []int {
	var b = mask.Bounds()
	var labels = make([]int, 0, b.Dx()*b.Dy())
	var paletted, _ = mask.(*image.Paletted)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var class int
			if paletted != nil {
				class = int(paletted.ColorIndexAt(x, y))
			}
			if class == 255 {
				class = 0
			}
			labels = append(labels, class)
		}
	}
	return labels
}
