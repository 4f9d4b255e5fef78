// Package metrics computes classification accuracy over collected
// prediction scores.
package metrics

import "github.com/pkg/errors"

// Accuracy is the exact-match rate on the highest-scoring class.
func Accuracy(scores [][]float32, labels []int) (float64, error) {
	return TopKAccuracy(scores, labels, 1)
}

// TopKAccuracy counts a sample correct when the true label is among the
// k highest-scoring classes. Ties are broken by index order: an equal
// score at a lower class index outranks the label.
func TopKAccuracy(scores [][]float32, labels []int, k int) (float64, error) {
	if len(scores) != len(labels) {
		return 0, errors.Errorf("scores and labels have different lengths: %v != %v",
			len(scores), len(labels))
	}
	if len(scores) == 0 {
		return 0, errors.New("no samples to score")
	}
	var correct int
	for i, sample := range scores {
		var label = labels[i]
		if label < 0 || label >= len(sample) {
			return 0, errors.Errorf("sample %v: label %v out of range for %v classes",
				i, label, len(sample))
		}
		if rank(sample, label) < k {
			correct++
		}
	}
	return float64(correct) / float64(len(scores)), nil
}

// rank is the number of classes placed ahead of label by a stable
// descending sort of the scores.
func rank(sample []float32, label int) int {
	var r = 0
	var target = sample[label]
	for class, score := range sample {
		if score > target || (score == target && class < label) {
			r++
		}
	}
	return r
}
