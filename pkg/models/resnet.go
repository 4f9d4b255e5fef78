package models

import (
	"fmt"

	"github.com/nishantsbi/imgclsmob/pkg/nn"
)

// newResNet builds a CIFAR-style residual network with three stages of
// blocksPerStage basic blocks each (depth 6n+2).
func newResNet(name string, cfg Config, blocksPerStage int) *nn.Network {
	var relu = &nn.ReLuActivation{}
	var widths = []int{16, 32, 64}

	var layers []nn.Layer
	var conv0 = nn.NewConv2D("init.conv", cfg.InChannels, cfg.InSize, cfg.InSize,
		widths[0], 3, 1, 1, &nn.IdentityActivation{})
	var c, h, w = conv0.OutShape()
	layers = append(layers,
		conv0,
		nn.NewBatchNorm2D("init.bn", c, h, w),
		activationLayer{relu},
	)

	for stage, width := range widths {
		for block := 0; block < blocksPerStage; block++ {
			var stride = 1
			if stage > 0 && block == 0 {
				stride = 2
			}
			var prefix = fmt.Sprintf("stage%d.block%d", stage+1, block+1)

			var conv1 = nn.NewConv2D(prefix+".conv1", c, h, w, width, 3, stride, 1, &nn.IdentityActivation{})
			var bc, bh, bw = conv1.OutShape()
			var body = []nn.Layer{
				conv1,
				nn.NewBatchNorm2D(prefix+".bn1", bc, bh, bw),
				activationLayer{relu},
				nn.NewConv2D(prefix+".conv2", bc, bh, bw, width, 3, 1, 1, &nn.IdentityActivation{}),
				nn.NewBatchNorm2D(prefix+".bn2", bc, bh, bw),
			}

			var shortcut nn.Layer
			if stride != 1 || width != c {
				shortcut = nn.NewConv2D(prefix+".shortcut", c, h, w, width, 1, stride, 0, &nn.IdentityActivation{})
			}
			layers = append(layers, nn.NewResidual(body, shortcut, relu))
			c, h, w = bc, bh, bw
		}
	}

	layers = append(layers,
		nn.NewGlobalAvgPool2D(c, h, w),
		nn.NewDense("output", c, cfg.Classes, &nn.IdentityActivation{}),
	)
	return nn.NewNetwork(name, cfg.Classes, cfg.InSize, cfg.InSize, layers...)
}

// activationLayer lifts a bare activation into the layer stack.
type activationLayer struct {
	fn nn.ActivationFn
}

func (l activationLayer) Forward(src []float32) []float32 {
	var dst = make([]float32, len(src))
	for i := range src {
		dst[i] = l.fn.Sigma(src[i])
	}
	return dst
}

func (l activationLayer) Params() []nn.Param { return nil }
