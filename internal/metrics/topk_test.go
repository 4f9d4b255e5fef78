package metrics

import (
	"testing"
)

func TestTopKAccuracy(t *testing.T) {
	var tests = []struct {
		name   string
		scores [][]float32
		labels []int
		k      int
		want   float64
	}{
		{
			name: "all correct top1",
			scores: [][]float32{
				{0.1, 0.9, 0.0},
				{0.8, 0.1, 0.1},
			},
			labels: []int{1, 0},
			k:      1,
			want:   1.0,
		},
		{
			name: "half correct top1",
			scores: [][]float32{
				{0.1, 0.9, 0.0},
				{0.8, 0.1, 0.1},
			},
			labels: []int{1, 2},
			k:      1,
			want:   0.5,
		},
		{
			name: "label outside top2",
			scores: [][]float32{
				{0.5, 0.3, 0.2},
			},
			labels: []int{2},
			k:      2,
			want:   0.0,
		},
		{
			name: "label inside top2",
			scores: [][]float32{
				{0.5, 0.3, 0.2},
			},
			labels: []int{1},
			k:      2,
			want:   1.0,
		},
		{
			name: "tie broken by lower index",
			scores: [][]float32{
				{0.5, 0.5, 0.0},
			},
			labels: []int{1},
			k:      1,
			want:   0.0,
		},
		{
			name: "tie does not hide later label in top2",
			scores: [][]float32{
				{0.5, 0.5, 0.0},
			},
			labels: []int{1},
			k:      2,
			want:   1.0,
		},
	}
	for _, test := range tests {
		var got, err = TopKAccuracy(test.scores, test.labels, test.k)
		if err != nil {
			t.Fatal(test.name, err)
		}
		if got != test.want {
			t.Errorf("%v: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestTopKAccuracyErrors(t *testing.T) {
	if _, err := TopKAccuracy(nil, nil, 1); err == nil {
		t.Error("empty input must fail")
	}
	if _, err := TopKAccuracy([][]float32{{0.5}}, []int{0, 1}, 1); err == nil {
		t.Error("length mismatch must fail")
	}
	if _, err := TopKAccuracy([][]float32{{0.5}}, []int{3}, 1); err == nil {
		t.Error("label out of range must fail")
	}
}

func TestAccuracyMatchesTop1(t *testing.T) {
	var scores = [][]float32{
		{0.1, 0.9},
		{0.7, 0.3},
		{0.2, 0.8},
	}
	var labels = []int{1, 1, 1}
	acc, err := Accuracy(scores, labels)
	if err != nil {
		t.Fatal(err)
	}
	top1, err := TopKAccuracy(scores, labels, 1)
	if err != nil {
		t.Fatal(err)
	}
	if acc != top1 {
		t.Errorf("accuracy %v != top1 %v", acc, top1)
	}
}
