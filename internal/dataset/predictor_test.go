package dataset

import (
	"context"
	"testing"
)

// echoModel returns its input as the score vector, so the pipeline can
// be checked end to end without real weights.
type echoModel struct {
	classes int
}

func (m *echoModel) Name() string                  { return "echo" }
func (m *echoModel) Classes() int                  { return m.classes }
func (m *echoModel) InSize() (h, w int)            { return 1, 1 }
func (m *echoModel) ParamCount() int64             { return 0 }
func (m *echoModel) LoadWeights(path string) error { return nil }
func (m *echoModel) Forward(src []float32) []float32 {
	var dst = make([]float32, len(src))
	copy(dst, src)
	return dst
}

func TestClsPredictorKeepsOrder(t *testing.T) {
	var predictor = NewClsPredictor(&echoModel{classes: 3}, 0)
	var inputs = [][]float32{
		{0.1, 0.2, 0.7},
		{0.9, 0.05, 0.05},
		{0.3, 0.4, 0.3},
	}
	scores, err := predictor.Predict(context.Background(), inputs)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != len(inputs) {
		t.Fatalf("got %v score vectors, want %v", len(scores), len(inputs))
	}
	for i := range inputs {
		for j := range inputs[i] {
			if scores[i][j] != inputs[i][j] {
				t.Errorf("sample %v class %v: got %v, want %v",
					i, j, scores[i][j], inputs[i][j])
			}
		}
	}
}

func TestSegPredictorUnpacksPixels(t *testing.T) {
	// 2 classes over 3 pixels, planar class maps
	var predictor = NewSegPredictor(&echoModel{classes: 2}, 0)
	var input = []float32{
		0.9, 0.1, 0.5, // class 0 map
		0.1, 0.9, 0.5, // class 1 map
	}
	scores, err := predictor.Predict(context.Background(), [][]float32{input})
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %v pixel scores, want 3", len(scores))
	}
	var want = [][]float32{{0.9, 0.1}, {0.1, 0.9}, {0.5, 0.5}}
	for pix := range want {
		for class := range want[pix] {
			if scores[pix][class] != want[pix][class] {
				t.Errorf("pixel %v class %v: got %v, want %v",
					pix, class, scores[pix][class], want[pix][class])
			}
		}
	}
}

func TestSegPredictorKeepsImageOrder(t *testing.T) {
	// two single-pixel images; pixel scores must come back in input order
	var predictor = NewSegPredictor(&echoModel{classes: 2}, 2)
	var inputs = [][]float32{
		{0.9, 0.1},
		{0.2, 0.8},
	}
	scores, err := predictor.Predict(context.Background(), inputs)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %v pixel scores, want 2", len(scores))
	}
	if scores[0][0] != 0.9 || scores[1][1] != 0.8 {
		t.Errorf("pixel scores out of order: %v", scores)
	}
}

func TestSegPredictorRejectsRaggedOutput(t *testing.T) {
	var predictor = NewSegPredictor(&echoModel{classes: 2}, 0)
	if _, err := predictor.Predict(context.Background(), [][]float32{{1, 2, 3}}); err == nil {
		t.Error("output not divisible by classes must fail")
	}
}
