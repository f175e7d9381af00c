package maintenance

import (
	"fmt"
	"sort"
)

const (
	minSamplesSplit = 2
	minSamplesLeaf  = 1
)

// treeNode is a flat-array node. Leaf nodes have Left == Right == -1.
type treeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Class     int
	Samples   int
	Impurity  float64
}

func (n treeNode) leaf() bool { return n.Left < 0 }

// DecisionTree is an unpruned CART classifier using Gini impurity. Features
// are scanned in column order and the first strictly best split wins, so a
// fit is deterministic for a given matrix.
type DecisionTree struct {
	nodes     []treeNode
	nFeatures int
	nClasses  int
	depth     int
}

// FitDecisionTree grows a tree until every leaf is pure or cannot be split.
// y holds class codes in [0, nClasses).
func FitDecisionTree(X [][]float64, y []int, nClasses int) (*DecisionTree, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("fit decision tree: no samples")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit decision tree: %d rows but %d labels", len(X), len(y))
	}
	nFeatures := len(X[0])
	for i, row := range X {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("fit decision tree: row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}
	for i, c := range y {
		if c < 0 || c >= nClasses {
			return nil, fmt.Errorf("fit decision tree: label %d at row %d out of range", c, i)
		}
	}

	t := &DecisionTree{nFeatures: nFeatures, nClasses: nClasses}
	b := &treeBuilder{X: X, y: y, nClasses: nClasses, tree: t}

	all := make([]int, len(X))
	for i := range all {
		all[i] = i
	}

	type frame struct {
		samples []int
		node    int
		depth   int
	}
	root := t.addNode(b.leafFor(all))
	stack := []frame{{samples: all, node: root, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > t.depth {
			t.depth = f.depth
		}

		n := t.nodes[f.node]
		if n.Impurity <= 0 || len(f.samples) < minSamplesSplit {
			continue
		}
		sp, ok := b.bestSplit(f.samples)
		if !ok {
			continue
		}
		left, right := partition(X, f.samples, sp.feature, sp.threshold)
		li := t.addNode(b.leafFor(left))
		ri := t.addNode(b.leafFor(right))
		t.nodes[f.node].Feature = sp.feature
		t.nodes[f.node].Threshold = sp.threshold
		t.nodes[f.node].Left = li
		t.nodes[f.node].Right = ri

		stack = append(stack, frame{samples: right, node: ri, depth: f.depth + 1})
		stack = append(stack, frame{samples: left, node: li, depth: f.depth + 1})
	}
	return t, nil
}

// Predict returns the class code for one feature row.
func (t *DecisionTree) Predict(x []float64) (int, error) {
	if len(x) != t.nFeatures {
		return 0, fmt.Errorf("predict: got %d features, want %d", len(x), t.nFeatures)
	}
	i := 0
	for {
		n := t.nodes[i]
		if n.leaf() {
			return n.Class, nil
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *DecisionTree) Depth() int { return t.depth }

func (t *DecisionTree) Leaves() int {
	c := 0
	for _, n := range t.nodes {
		if n.leaf() {
			c++
		}
	}
	return c
}

func (t *DecisionTree) NodeCount() int { return len(t.nodes) }

func (t *DecisionTree) addNode(n treeNode) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

type treeBuilder struct {
	X        [][]float64
	y        []int
	nClasses int
	tree     *DecisionTree
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
}

func (b *treeBuilder) counts(samples []int) []int {
	c := make([]int, b.nClasses)
	for _, s := range samples {
		c[b.y[s]]++
	}
	return c
}

func (b *treeBuilder) leafFor(samples []int) treeNode {
	c := b.counts(samples)
	return treeNode{
		Feature:  -1,
		Left:     -1,
		Right:    -1,
		Class:    majority(c),
		Samples:  len(samples),
		Impurity: gini(c, len(samples)),
	}
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, minimising the weighted Gini impurity of the children.
func (b *treeBuilder) bestSplit(samples []int) (split, bool) {
	n := len(samples)
	best := split{feature: -1}
	found := false

	order := make([]int, n)
	left := make([]int, b.nClasses)
	right := make([]int, b.nClasses)
	total := b.counts(samples)

	for f := 0; f < b.tree.nFeatures; f++ {
		copy(order, samples)
		sort.SliceStable(order, func(i, j int) bool {
			return b.X[order[i]][f] < b.X[order[j]][f]
		})
		if b.X[order[0]][f] == b.X[order[n-1]][f] {
			continue
		}
		for k := range left {
			left[k] = 0
			right[k] = total[k]
		}
		for i := 0; i < n-1; i++ {
			cls := b.y[order[i]]
			left[cls]++
			right[cls]--

			cur := b.X[order[i]][f]
			next := b.X[order[i+1]][f]
			if cur == next {
				continue
			}
			nl := i + 1
			nr := n - nl
			if nl < minSamplesLeaf || nr < minSamplesLeaf {
				continue
			}
			imp := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
			if !found || imp < best.impurity {
				best = split{feature: f, threshold: midpoint(cur, next), impurity: imp}
				found = true
			}
		}
	}
	return best, found
}

func partition(X [][]float64, samples []int, feature int, threshold float64) (left, right []int) {
	for _, s := range samples {
		if X[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right
}

// midpoint falls back to a when rounding would push the midpoint onto b.
func midpoint(a, b float64) float64 {
	m := a/2 + b/2
	if m >= b {
		return a
	}
	return m
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

// majority breaks ties toward the lowest class code.
func majority(counts []int) int {
	best := 0
	for c := 1; c < len(counts); c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
