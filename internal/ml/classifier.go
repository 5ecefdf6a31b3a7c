package ml

import "fmt"

// Classifier predicts a class code from a fixed-length, fixed-order numeric
// feature vector. Implementations are pure and safe for concurrent use.
type Classifier interface {
	Predict(features []float64) (int, error)
	NumFeatures() int
}

// DecisionTree evaluates an exported CART decision tree. The arrays follow
// the usual export layout: leaves have ChildrenLeft[i] == -1, internal nodes
// route on Feature[i] <= Threshold[i], and Value[i] holds the per-class
// sample distribution at the node.
type DecisionTree struct {
	nFeatures     int
	nClasses      int
	childrenLeft  []int
	childrenRight []int
	feature       []int
	threshold     []float64
	value         [][]float64
}

// NewDecisionTree validates the exported arrays and builds a tree. Any
// structural inconsistency is a load-time error.
func NewDecisionTree(nFeatures, nClasses int, childrenLeft, childrenRight, feature []int, threshold []float64, value [][]float64) (*DecisionTree, error) {
	if nFeatures <= 0 {
		return nil, fmt.Errorf("decision tree: feature count must be positive, got %d", nFeatures)
	}
	if nClasses <= 0 {
		return nil, fmt.Errorf("decision tree: class count must be positive, got %d", nClasses)
	}
	n := len(childrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("decision tree: no nodes")
	}
	if len(childrenRight) != n || len(feature) != n || len(threshold) != n || len(value) != n {
		return nil, fmt.Errorf("decision tree: node array lengths differ (%d, %d, %d, %d, %d)",
			n, len(childrenRight), len(feature), len(threshold), len(value))
	}
	for i := 0; i < n; i++ {
		leaf := childrenLeft[i] == -1
		if leaf != (childrenRight[i] == -1) {
			return nil, fmt.Errorf("decision tree: node %d has one child only", i)
		}
		if !leaf {
			if childrenLeft[i] <= i || childrenLeft[i] >= n || childrenRight[i] <= i || childrenRight[i] >= n {
				return nil, fmt.Errorf("decision tree: node %d has out-of-order children", i)
			}
			if feature[i] < 0 || feature[i] >= nFeatures {
				return nil, fmt.Errorf("decision tree: node %d splits on feature %d, model has %d features", i, feature[i], nFeatures)
			}
		}
		if len(value[i]) != nClasses {
			return nil, fmt.Errorf("decision tree: node %d has %d class values, want %d", i, len(value[i]), nClasses)
		}
	}
	return &DecisionTree{
		nFeatures:     nFeatures,
		nClasses:      nClasses,
		childrenLeft:  childrenLeft,
		childrenRight: childrenRight,
		feature:       feature,
		threshold:     threshold,
		value:         value,
	}, nil
}

// Predict walks the tree and returns the majority class code of the reached
// leaf.
func (t *DecisionTree) Predict(features []float64) (int, error) {
	if len(features) != t.nFeatures {
		return 0, fmt.Errorf("decision tree: got %d features, model expects %d", len(features), t.nFeatures)
	}
	node := 0
	for t.childrenLeft[node] != -1 {
		if features[t.feature[node]] <= t.threshold[node] {
			node = t.childrenLeft[node]
		} else {
			node = t.childrenRight[node]
		}
	}
	best := 0
	for class, weight := range t.value[node] {
		if weight > t.value[node][best] {
			best = class
		}
	}
	return best, nil
}

// NumFeatures returns the expected input vector length.
func (t *DecisionTree) NumFeatures() int {
	return t.nFeatures
}
