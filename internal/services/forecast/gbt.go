package forecast

import "sort"

// gbtParams configures the gradient-boosted tree regressor.
type gbtParams struct {
	NumTrees     int
	LearningRate float64
	MaxDepth     int
	MinLeafSize  int
}

func defaultGBTParams() gbtParams {
	return gbtParams{
		NumTrees:     100,
		LearningRate: 0.05,
		MaxDepth:     5,
		MinLeafSize:  2,
	}
}

// gbtRegressor is a gradient-boosted ensemble of regression trees fit with
// squared loss. Split search is exhaustive and deterministic: identical
// training data always produces an identical model.
type gbtRegressor struct {
	params gbtParams
	base   float64
	trees  []*treeNode
}

// treeNode is one node of a regression tree. Leaves have feature == -1.
type treeNode struct {
	feature   int
	threshold float64
	value     float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) isLeaf() bool {
	return n.feature < 0
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.isLeaf() {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// fitGBT trains the ensemble on the feature rows and targets.
func fitGBT(rows [][]float64, targets []float64, params gbtParams) *gbtRegressor {
	model := &gbtRegressor{
		params: params,
		base:   mean(targets),
	}

	// Residuals against the running ensemble prediction
	residuals := make([]float64, len(targets))
	preds := make([]float64, len(targets))
	for i := range targets {
		preds[i] = model.base
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}

	for t := 0; t < params.NumTrees; t++ {
		for i := range targets {
			residuals[i] = targets[i] - preds[i]
		}

		tree := buildTree(rows, residuals, idx, params.MaxDepth, params.MinLeafSize)
		model.trees = append(model.trees, tree)

		for i := range preds {
			preds[i] += params.LearningRate * tree.predict(rows[i])
		}
	}

	return model
}

// Predict returns the ensemble prediction for one feature vector.
func (m *gbtRegressor) Predict(x []float64) float64 {
	out := m.base
	for _, tree := range m.trees {
		out += m.params.LearningRate * tree.predict(x)
	}
	return out
}

// buildTree fits a regression tree to the residuals of the given rows.
func buildTree(rows [][]float64, residuals []float64, idx []int, depth, minLeaf int) *treeNode {
	leaf := &treeNode{feature: -1, value: meanAt(residuals, idx)}
	if depth <= 0 || len(idx) < 2*minLeaf {
		return leaf
	}

	feature, threshold, ok := bestSplit(rows, residuals, idx, minLeaf)
	if !ok {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(rows, residuals, left, depth-1, minLeaf),
		right:     buildTree(rows, residuals, right, depth-1, minLeaf),
	}
}

// bestSplit scans every feature and candidate threshold for the split with
// the lowest total squared error. Features are scanned in order and a split
// is only adopted when strictly better, keeping ties deterministic.
func bestSplit(rows [][]float64, residuals []float64, idx []int, minLeaf int) (int, float64, bool) {
	bestFeature := -1
	bestThreshold := 0.0
	bestScore := 0.0
	found := false

	order := make([]int, len(idx))

	for f := 0; f < len(rows[idx[0]]); f++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool {
			return rows[order[a]][f] < rows[order[b]][f]
		})

		// Prefix sums over the sorted order for O(1) SSE at each cut
		n := len(order)
		sum := 0.0
		sumSq := 0.0
		prefixSum := make([]float64, n+1)
		prefixSq := make([]float64, n+1)
		for i, id := range order {
			r := residuals[id]
			sum += r
			sumSq += r * r
			prefixSum[i+1] = sum
			prefixSq[i+1] = sumSq
		}

		for cut := minLeaf; cut <= n-minLeaf; cut++ {
			// No split between identical feature values
			if rows[order[cut-1]][f] == rows[order[cut]][f] {
				continue
			}

			leftN := float64(cut)
			rightN := float64(n - cut)
			leftSum := prefixSum[cut]
			rightSum := sum - leftSum
			leftSq := prefixSq[cut]
			rightSq := sumSq - leftSq

			score := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)

			if !found || score < bestScore {
				found = true
				bestScore = score
				bestFeature = f
				bestThreshold = (rows[order[cut-1]][f] + rows[order[cut]][f]) / 2
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func meanAt(vals []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += vals[i]
	}
	return sum / float64(len(idx))
}
