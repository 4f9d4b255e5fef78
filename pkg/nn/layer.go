package nn

// Param is a named weight blob owned by a layer. Checkpoint IO walks
// params in layer order, so construction order defines the file layout.
type Param struct {
	Name string
	Data []float32
}

type Layer interface {
	Forward(src []float32) []float32
	Params() []Param
}

// Dense is a fully connected layer over a flat input.
type Dense struct {
	name         string
	weights      Matrix
	biases       []float32
	activationFn ActivationFn
}

func NewDense(name string, inputSize, outputSize int, activationFn ActivationFn) *Dense {
	return &Dense{
		name:         name,
		weights:      NewMatrix(outputSize, inputSize),
		biases:       make([]float32, outputSize),
		activationFn: activationFn,
	}
}

func (l *Dense) Forward(src []float32) []float32 {
	var dst = make([]float32, l.weights.Rows)
	for outputIndex := range dst {
		var x = l.biases[outputIndex]
		for inputIndex := range src {
			x += l.weights.Get(outputIndex, inputIndex) * src[inputIndex]
		}
		dst[outputIndex] = l.activationFn.Sigma(x)
	}
	return dst
}

func (l *Dense) Params() []Param {
	return []Param{
		{Name: l.name + ".weight", Data: l.weights.Data},
		{Name: l.name + ".bias", Data: l.biases},
	}
}
