package models

import "github.com/nishantsbi/imgclsmob/pkg/nn"

func newMLP(cfg Config) *nn.Network {
	var inputSize = cfg.InChannels * cfg.InSize * cfg.InSize
	var hiddenSize = 512
	return nn.NewNetwork("mlp", cfg.Classes, cfg.InSize, cfg.InSize,
		nn.NewDense("fc1", inputSize, hiddenSize, &nn.ReLuActivation{}),
		nn.NewDense("fc2", hiddenSize, cfg.Classes, &nn.IdentityActivation{}),
	)
}
