package forest

import (
	"math/rand"
	"sort"
)

// node is one split (or leaf) of a classification tree.
type node struct {
	leaf      bool
	class     int
	feature   int
	threshold float64
	left      *node
	right     *node
}

// treeBuilder grows a single CART tree on a bootstrap sample. Splits
// minimise Gini impurity over mtry randomly offered candidate predictors;
// nodes are grown to purity (or until no split improves impurity).
type treeBuilder struct {
	X        [][]float64
	y        []int
	nClasses int
	mtry     int
	rng      *rand.Rand

	// giniDecrease accumulates the total impurity decrease per feature,
	// feeding the forest's mean-decrease-Gini importance.
	giniDecrease []float64
}

func (b *treeBuilder) build(idx []int) *node {
	counts := make([]int, b.nClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	majority, pure := majorityClass(counts, len(idx))
	if pure || len(idx) < 2 {
		return &node{leaf: true, class: majority}
	}

	feature, threshold, decrease := b.bestSplit(idx, counts)
	if decrease <= 0 {
		return &node{leaf: true, class: majority}
	}
	b.giniDecrease[feature] += decrease * float64(len(idx))

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left),
		right:     b.build(right),
	}
}

// bestSplit scans mtry candidate features and returns the split with the
// largest Gini decrease. A non-positive decrease means no usable split.
func (b *treeBuilder) bestSplit(idx []int, counts []int) (feature int, threshold, decrease float64) {
	n := float64(len(idx))
	parent := gini(counts, len(idx))

	feature = -1
	decrease = 0

	ordered := make([]int, len(idx))
	leftCounts := make([]int, b.nClasses)

	for _, f := range b.sampleFeatures() {
		copy(ordered, idx)
		sort.Slice(ordered, func(a, c int) bool { return b.X[ordered[a]][f] < b.X[ordered[c]][f] })

		for c := range leftCounts {
			leftCounts[c] = 0
		}

		// Walk the ordered rows, considering a cut between each pair of
		// distinct adjacent values.
		for k := 0; k < len(ordered)-1; k++ {
			leftCounts[b.y[ordered[k]]]++
			v, next := b.X[ordered[k]][f], b.X[ordered[k+1]][f]
			if v == next {
				continue
			}

			nLeft := k + 1
			nRight := len(ordered) - nLeft
			giniLeft := giniFromLeft(leftCounts, counts, nLeft, nRight)

			d := parent - (float64(nLeft)*giniLeft.left+float64(nRight)*giniLeft.right)/n
			if d > decrease {
				decrease = d
				feature = f
				threshold = (v + next) / 2
			}
		}
	}

	return feature, threshold, decrease
}

// sampleFeatures draws mtry distinct feature indices.
func (b *treeBuilder) sampleFeatures() []int {
	p := len(b.X[0])
	if b.mtry >= p {
		features := make([]int, p)
		for i := range features {
			features[i] = i
		}
		return features
	}
	return b.rng.Perm(p)[:b.mtry]
}

func (t *node) predict(row []float64) int {
	for !t.leaf {
		if row[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.class
}

func majorityClass(counts []int, total int) (class int, pure bool) {
	best := -1
	for c, n := range counts {
		if n > best {
			best = n
			class = c
		}
	}
	return class, best == total
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, n := range counts {
		p := float64(n) / float64(total)
		g -= p * p
	}
	return g
}

type sidePair struct{ left, right float64 }

// giniFromLeft computes the impurities of both sides of a cut given the
// left-side class counts and the parent totals.
func giniFromLeft(leftCounts, parentCounts []int, nLeft, nRight int) sidePair {
	gl, gr := 1.0, 1.0
	for c := range parentCounts {
		pl := float64(leftCounts[c]) / float64(nLeft)
		pr := float64(parentCounts[c]-leftCounts[c]) / float64(nRight)
		gl -= pl * pl
		gr -= pr * pr
	}
	return sidePair{left: gl, right: gr}
}
