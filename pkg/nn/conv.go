package nn

// Conv2D is a plain convolution over a CHW-ordered input.
// Weights are laid out [outC][inC][k][k].
type Conv2D struct {
	name          string
	inC, inH, inW int
	outC          int
	kernel        int
	stride        int
	pad           int
	weights       []float32
	biases        []float32
	activationFn  ActivationFn
}

func NewConv2D(name string, inC, inH, inW, outC, kernel, stride, pad int, activationFn ActivationFn) *Conv2D {
	return &Conv2D{
		name:         name,
		inC:          inC,
		inH:          inH,
		inW:          inW,
		outC:         outC,
		kernel:       kernel,
		stride:       stride,
		pad:          pad,
		weights:      make([]float32, outC*inC*kernel*kernel),
		biases:       make([]float32, outC),
		activationFn: activationFn,
	}
}

func (l *Conv2D) OutShape() (c, h, w int) {
	return l.outC,
		(l.inH+2*l.pad-l.kernel)/l.stride + 1,
		(l.inW+2*l.pad-l.kernel)/l.stride + 1
}

func (l *Conv2D) Forward(src []float32) []float32 {
	var _, outH, outW = l.OutShape()
	var dst = make([]float32, l.outC*outH*outW)
	for oc := 0; oc < l.outC; oc++ {
		for oy := 0; oy < outH; oy++ {
			for ox := 0; ox < outW; ox++ {
				var x = l.biases[oc]
				for ic := 0; ic < l.inC; ic++ {
					for ky := 0; ky < l.kernel; ky++ {
						var iy = oy*l.stride + ky - l.pad
						if iy < 0 || iy >= l.inH {
							continue
						}
						for kx := 0; kx < l.kernel; kx++ {
							var ix = ox*l.stride + kx - l.pad
							if ix < 0 || ix >= l.inW {
								continue
							}
							var w = l.weights[((oc*l.inC+ic)*l.kernel+ky)*l.kernel+kx]
							x += w * src[(ic*l.inH+iy)*l.inW+ix]
						}
					}
				}
				dst[(oc*outH+oy)*outW+ox] = l.activationFn.Sigma(x)
			}
		}
	}
	return dst
}

func (l *Conv2D) Params() []Param {
	return []Param{
		{Name: l.name + ".weight", Data: l.weights},
		{Name: l.name + ".bias", Data: l.biases},
	}
}
