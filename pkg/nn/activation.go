package nn

import "math"

type ActivationFn interface {
	Sigma(x float32) float32
}

type IdentityActivation struct{}

func (*IdentityActivation) Sigma(x float32) float32 { return x }

type ReLuActivation struct{}

func (*ReLuActivation) Sigma(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

type SigmoidActivation struct{}

func (*SigmoidActivation) Sigma(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}
