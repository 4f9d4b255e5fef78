package nn

import "math"

// BatchNorm2D applies per-channel scale and shift with frozen running
// statistics. Inference only.
type BatchNorm2D struct {
	name     string
	c        int
	spatial  int
	gamma    []float32
	beta     []float32
	mean     []float32
	variance []float32
	eps      float32
}

func NewBatchNorm2D(name string, c, h, w int) *BatchNorm2D {
	var l = &BatchNorm2D{
		name:     name,
		c:        c,
		spatial:  h * w,
		gamma:    make([]float32, c),
		beta:     make([]float32, c),
		mean:     make([]float32, c),
		variance: make([]float32, c),
		eps:      1e-5,
	}
	for i := range l.gamma {
		l.gamma[i] = 1
		l.variance[i] = 1
	}
	return l
}

func (l *BatchNorm2D) Forward(src []float32) []float32 {
	var dst = make([]float32, len(src))
	for c := 0; c < l.c; c++ {
		var scale = l.gamma[c] / float32(math.Sqrt(float64(l.variance[c]+l.eps)))
		var shift = l.beta[c] - scale*l.mean[c]
		for i := 0; i < l.spatial; i++ {
			dst[c*l.spatial+i] = src[c*l.spatial+i]*scale + shift
		}
	}
	return dst
}

func (l *BatchNorm2D) Params() []Param {
	return []Param{
		{Name: l.name + ".gamma", Data: l.gamma},
		{Name: l.name + ".beta", Data: l.beta},
		{Name: l.name + ".mean", Data: l.mean},
		{Name: l.name + ".var", Data: l.variance},
	}
}
