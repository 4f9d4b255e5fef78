package dataset

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// valTransform is the standard evaluation preprocessing: resize the
// shorter side to inSize/resizeInvFactor, center-crop inSize x inSize,
// then normalize to CHW float32.
type valTransform struct {
	inSize          int
	resizeInvFactor float64
	mean            [3]float32
	std             [3]float32
}

func (t *valTransform) Apply(img image.Image) []float32 {
	var resizeValue = t.inSize
	if t.resizeInvFactor > 0 {
		resizeValue = int(float64(t.inSize) / t.resizeInvFactor)
	}
	var resized = resizeShorter(img, resizeValue)
	var cropped = centerCrop(resized, t.inSize, t.inSize)
	return normalizeCHW(cropped, t.mean, t.std)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// resizeShorter scales the image with bilinear sampling so that the
// shorter side equals size.
func resizeShorter(img image.Image, size int) image.Image {
	var b = img.Bounds()
	var w, h = b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || (w == size && h == size) {
		return img
	}
	var outW, outH int
	if w < h {
		outW = size
		outH = h * size / w
	} else {
		outH = size
		outW = w * size / h
	}
	return resizeBilinear(img, outW, outH)
}

func resizeBilinear(img image.Image, outW, outH int) image.Image {
	var b = img.Bounds()
	var srcW, srcH = b.Dx(), b.Dy()
	var dst = image.NewRGBA(image.Rect(0, 0, outW, outH))
	var scaleX = float64(srcW) / float64(outW)
	var scaleY = float64(srcH) / float64(outH)
	for y := 0; y < outH; y++ {
		var sy = (float64(y)+0.5)*scaleY - 0.5
		var y0 = int(sy)
		if y0 < 0 {
			y0 = 0
		}
		var y1 = y0 + 1
		if y1 > srcH-1 {
			y1 = srcH - 1
		}
		var fy = sy - float64(y0)
		if fy < 0 {
			fy = 0
		}
		for x := 0; x < outW; x++ {
			var sx = (float64(x)+0.5)*scaleX - 0.5
			var x0 = int(sx)
			if x0 < 0 {
				x0 = 0
			}
			var x1 = x0 + 1
			if x1 > srcW-1 {
				x1 = srcW - 1
			}
			var fx = sx - float64(x0)
			if fx < 0 {
				fx = 0
			}

			var c00 = rgbAt(img, b.Min.X+x0, b.Min.Y+y0)
			var c10 = rgbAt(img, b.Min.X+x1, b.Min.Y+y0)
			var c01 = rgbAt(img, b.Min.X+x0, b.Min.Y+y1)
			var c11 = rgbAt(img, b.Min.X+x1, b.Min.Y+y1)

			var px [3]uint8
			for ch := 0; ch < 3; ch++ {
				var top = c00[ch]*(1-fx) + c10[ch]*fx
				var bottom = c01[ch]*(1-fx) + c11[ch]*fx
				px[ch] = uint8(top*(1-fy) + bottom*fy + 0.5)
			}
			dst.SetRGBA(x, y, rgba(px))
		}
	}
	return dst
}

func centerCrop(img image.Image, cropW, cropH int) image.Image {
	var b = img.Bounds()
	var x0 = b.Min.X + (b.Dx()-cropW)/2
	var y0 = b.Min.Y + (b.Dy()-cropH)/2
	var dst = image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		for x := 0; x < cropW; x++ {
			dst.SetRGBA(x, y, rgba(rgb8At(img, x0+x, y0+y)))
		}
	}
	return dst
}

func normalizeCHW(img image.Image, mean, std [3]float32) []float32 {
	var b = img.Bounds()
	var w, h = b.Dx(), b.Dy()
	var dst = make([]float32, 3*h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var px = rgb8At(img, b.Min.X+x, b.Min.Y+y)
			for ch := 0; ch < 3; ch++ {
				var v = float32(px[ch]) / 255.0
				dst[(ch*h+y)*w+x] = (v - mean[ch]) / std[ch]
			}
		}
	}
	return dst
}

func rgbAt(img image.Image, x, y int) [3]float64 {
	var r, g, b, _ = img.At(x, y).RGBA()
	return [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

func rgb8At(img image.Image, x, y int) [3]uint8 {
	var r, g, b, _ = img.At(x, y).RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func rgba(px [3]uint8) color.RGBA {
	return color.RGBA{R: px[0], G: px[1], B: px[2], A: 255}
}
