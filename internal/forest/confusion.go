package forest

// ConfusionMatrix cross-tabulates actual against predicted classes.
// Rows are actual, columns predicted.
type ConfusionMatrix struct {
	Classes []string `json:"classes" yaml:"classes"`
	Counts  [][]int  `json:"counts" yaml:"counts"`
}

// NewConfusionMatrix tabulates the predictions against the actual labels.
func NewConfusionMatrix(classes []string, actual, predicted []int) ConfusionMatrix {
	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}
	for i := range actual {
		counts[actual[i]][predicted[i]]++
	}
	return ConfusionMatrix{Classes: classes, Counts: counts}
}

// Total is the number of classified rows.
func (m ConfusionMatrix) Total() int {
	total := 0
	for _, row := range m.Counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// Accuracy is the fraction of rows on the matrix diagonal.
func (m ConfusionMatrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	diagonal := 0
	for i := range m.Counts {
		diagonal += m.Counts[i][i]
	}
	return float64(diagonal) / float64(total)
}
