package nn

// MaxPool2D pools a CHW input with a square window.
type MaxPool2D struct {
	c, h, w int
	size    int
	stride  int
}

func NewMaxPool2D(c, h, w, size, stride int) *MaxPool2D {
	return &MaxPool2D{c: c, h: h, w: w, size: size, stride: stride}
}

func (l *MaxPool2D) OutShape() (c, h, w int) {
	return l.c, (l.h-l.size)/l.stride + 1, (l.w-l.size)/l.stride + 1
}

func (l *MaxPool2D) Forward(src []float32) []float32 {
	var _, outH, outW = l.OutShape()
	var dst = make([]float32, l.c*outH*outW)
	for c := 0; c < l.c; c++ {
		for oy := 0; oy < outH; oy++ {
			for ox := 0; ox < outW; ox++ {
				var best = src[(c*l.h+oy*l.stride)*l.w+ox*l.stride]
				for ky := 0; ky < l.size; ky++ {
					for kx := 0; kx < l.size; kx++ {
						var v = src[(c*l.h+oy*l.stride+ky)*l.w+ox*l.stride+kx]
						if v > best {
							best = v
						}
					}
				}
				dst[(c*outH+oy)*outW+ox] = best
			}
		}
	}
	return dst
}

func (l *MaxPool2D) Params() []Param { return nil }

// GlobalAvgPool2D reduces each channel of a CHW input to its mean.
type GlobalAvgPool2D struct {
	c, h, w int
}

func NewGlobalAvgPool2D(c, h, w int) *GlobalAvgPool2D {
	return &GlobalAvgPool2D{c: c, h: h, w: w}
}

func (l *GlobalAvgPool2D) Forward(src []float32) []float32 {
	var dst = make([]float32, l.c)
	var area = float32(l.h * l.w)
	for c := 0; c < l.c; c++ {
		var sum float32
		for i := 0; i < l.h*l.w; i++ {
			sum += src[c*l.h*l.w+i]
		}
		dst[c] = sum / area
	}
	return dst
}

func (l *GlobalAvgPool2D) Params() []Param { return nil }
