package maintenance

import (
	"testing"
)

func mustFit(t *testing.T, X [][]float64, y []int, nClasses int) *DecisionTree {
	t.Helper()
	tree, err := FitDecisionTree(X, y, nClasses)
	if err != nil {
		t.Fatalf("FitDecisionTree: %v", err)
	}
	return tree
}

func mustPredict(t *testing.T, tree *DecisionTree, x ...float64) int {
	t.Helper()
	c, err := tree.Predict(x)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	return c
}

func TestTreeMidpointThreshold(t *testing.T) {
	tree := mustFit(t, [][]float64{{1}, {2}, {3}, {4}}, []int{0, 0, 1, 1}, 2)
	if tree.Depth() != 1 || tree.Leaves() != 2 {
		t.Fatalf("expected a single split, depth=%d leaves=%d", tree.Depth(), tree.Leaves())
	}
	if tree.nodes[0].Threshold != 2.5 {
		t.Fatalf("expected threshold 2.5, got %v", tree.nodes[0].Threshold)
	}
	if mustPredict(t, tree, 2.5) != 0 {
		t.Fatalf("x <= threshold must go left")
	}
	if mustPredict(t, tree, 2.6) != 1 {
		t.Fatalf("x > threshold must go right")
	}
}

func TestTreeConstantFeaturesMajorityLowestCodeOnTie(t *testing.T) {
	tree := mustFit(t, [][]float64{{1}, {1}}, []int{1, 0}, 2)
	if tree.NodeCount() != 1 {
		t.Fatalf("constant feature must not split, got %d nodes", tree.NodeCount())
	}
	if mustPredict(t, tree, 1) != 0 {
		t.Fatalf("tie should resolve to the lowest class code")
	}

	tree = mustFit(t, [][]float64{{5}, {5}, {5}}, []int{2, 1, 2}, 3)
	if mustPredict(t, tree, 0) != 2 {
		t.Fatalf("majority class expected")
	}
}

func TestTreeFirstFeatureWinsEqualSplits(t *testing.T) {
	tree := mustFit(t, [][]float64{{1, 1}, {2, 2}}, []int{0, 1}, 2)
	if tree.nodes[0].Feature != 0 || tree.nodes[0].Threshold != 1.5 {
		t.Fatalf("expected split on feature 0 at 1.5, got feature %d at %v", tree.nodes[0].Feature, tree.nodes[0].Threshold)
	}
}

func TestTreePicksInformativeFeature(t *testing.T) {
	X := [][]float64{{7, 0}, {3, 0}, {5, 1}, {1, 1}}
	tree := mustFit(t, X, []int{0, 0, 1, 1}, 2)
	if tree.nodes[0].Feature != 1 {
		t.Fatalf("expected split on feature 1, got %d", tree.nodes[0].Feature)
	}
	if tree.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", tree.Depth())
	}
}

func TestTreeFitsTrainingSetExactly(t *testing.T) {
	X := [][]float64{}
	y := []int{}
	for i := 0; i < 60; i++ {
		a := float64((i * 37) % 101)
		b := float64((i * 11) % 7)
		X = append(X, []float64{a, b})
		y = append(y, (int(a)+int(b))%3)
	}
	tree := mustFit(t, X, y, 3)
	for i := range X {
		if got := mustPredict(t, tree, X[i]...); got != y[i] {
			t.Fatalf("row %d: predicted %d, want %d", i, got, y[i])
		}
	}
}

func TestTreeRejectsBadInput(t *testing.T) {
	if _, err := FitDecisionTree(nil, nil, 1); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := FitDecisionTree([][]float64{{1}, {2, 3}}, []int{0, 0}, 1); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
	if _, err := FitDecisionTree([][]float64{{1}}, []int{4}, 2); err == nil {
		t.Fatalf("expected error for out of range label")
	}
	tree := mustFit(t, [][]float64{{1, 2}}, []int{0}, 1)
	if _, err := tree.Predict([]float64{1}); err == nil {
		t.Fatalf("expected error for wrong feature count")
	}
}
