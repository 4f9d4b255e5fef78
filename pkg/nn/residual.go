package nn

// Residual runs a body of layers and adds the block input to the body
// output before the final activation. When the body changes the output
// shape, a shortcut layer must project the input to match.
type Residual struct {
	body         []Layer
	shortcut     Layer
	activationFn ActivationFn
}

func NewResidual(body []Layer, shortcut Layer, activationFn ActivationFn) *Residual {
	return &Residual{
		body:         body,
		shortcut:     shortcut,
		activationFn: activationFn,
	}
}

func (l *Residual) Forward(src []float32) []float32 {
	var x = src
	for _, layer := range l.body {
		x = layer.Forward(x)
	}
	var identity = src
	if l.shortcut != nil {
		identity = l.shortcut.Forward(src)
	}
	var dst = make([]float32, len(x))
	for i := range dst {
		dst[i] = l.activationFn.Sigma(x[i] + identity[i])
	}
	return dst
}

func (l *Residual) Params() []Param {
	var result []Param
	for _, layer := range l.body {
		result = append(result, layer.Params()...)
	}
	if l.shortcut != nil {
		result = append(result, l.shortcut.Params()...)
	}
	return result
}
