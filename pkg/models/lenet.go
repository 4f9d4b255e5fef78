package models

import "github.com/nishantsbi/imgclsmob/pkg/nn"

func newLeNet(cfg Config) *nn.Network {
	var relu = &nn.ReLuActivation{}

	var conv1 = nn.NewConv2D("conv1", cfg.InChannels, cfg.InSize, cfg.InSize, 6, 5, 1, 2, relu)
	var c1, h1, w1 = conv1.OutShape()
	var pool1 = nn.NewMaxPool2D(c1, h1, w1, 2, 2)
	var pc1, ph1, pw1 = pool1.OutShape()

	var conv2 = nn.NewConv2D("conv2", pc1, ph1, pw1, 16, 5, 1, 0, relu)
	var c2, h2, w2 = conv2.OutShape()
	var pool2 = nn.NewMaxPool2D(c2, h2, w2, 2, 2)
	var pc2, ph2, pw2 = pool2.OutShape()

	return nn.NewNetwork("lenet", cfg.Classes, cfg.InSize, cfg.InSize,
		conv1,
		pool1,
		conv2,
		pool2,
		nn.NewDense("fc1", pc2*ph2*pw2, 120, relu),
		nn.NewDense("fc2", 120, 84, relu),
		nn.NewDense("fc3", 84, cfg.Classes, &nn.IdentityActivation{}),
	)
}
