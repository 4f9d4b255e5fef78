// Package models resolves model names to constructed networks, the way
// a framework model zoo does.
package models

import (
	"github.com/pkg/errors"

	"github.com/nishantsbi/imgclsmob/pkg/nn"
)

// Model is the opaque trainable network the harness evaluates. The
// harness only queries class count and input size and runs forwards.
type Model interface {
	Name() string
	Forward(src []float32) []float32
	Classes() int
	InSize() (h, w int)
	ParamCount() int64
	LoadWeights(path string) error
}

// Config carries the dataset-specific construction arguments.
type Config struct {
	Classes    int
	InChannels int
	InSize     int
}

// Get resolves a model by name. Unknown names are a lookup error.
func Get(name string, cfg Config) (Model, error) {
	switch name {
	case "mlp":
		return newMLP(cfg), nil
	case "lenet":
		return newLeNet(cfg), nil
	case "resnet8":
		return newResNet(name, cfg, 1), nil
	case "resnet14":
		return newResNet(name, cfg, 2), nil
	}
	return nil, errors.Errorf("model %v is not registered", name)
}

var _ Model = (*nn.Network)(nil)
