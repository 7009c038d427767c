package diff

// lineDiff computes a shortest edit script between two line sequences using
// the greedy forward form of Myers' O(ND) algorithm.
//
// The forward pass keeps, per diagonal k = x-y, the furthest x reached so
// far in v (indexed k+max), and snapshots v once per edit distance d into a
// trace. The backtrack replays the same neighbour choice per d against the
// previous snapshot, so the emitted script matches the forward pass exactly,
// including its tie-break: the k+1 neighbour (a move in the new sequence)
// is taken only when strictly further, so on equal reach the k-1 step wins
// with the larger x. Changing that tie-break produces a different, still
// minimal script; callers depend on this one.
func lineDiff(oldLines, newLines []string) []EditOp {
	n := len(oldLines)
	m := len(newLines)
	if n == 0 && m == 0 {
		// max would be 0 and the k-loop below would index v out of range
		return nil
	}

	max := n + m
	v := make([]int, 2*max+1)
	var trace [][]int

	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[max+k-1] < v[max+k+1]) {
				// step down: consume a line from the new sequence
				x = v[max+k+1]
			} else {
				// step right: consume a line from the old sequence
				x = v[max+k-1] + 1
			}
			y := x - k

			// snake: slide through runs of equal lines
			for x < n && y < m && oldLines[x] == newLines[y] {
				x++
				y++
			}
			v[max+k] = x

			if x >= n && y >= m {
				trace = append(trace, snapshot(v))
				return backtrack(trace, n, m)
			}
		}
		trace = append(trace, snapshot(v))
	}

	// d is bounded by n+m, so the loop above always finds the end
	return nil
}

func snapshot(v []int) []int {
	s := make([]int, len(v))
	copy(s, v)
	return s
}

// backtrack walks the trace from the end position back to (0,0), emitting
// ops in reverse and flipping them into forward order at the end.
func backtrack(trace [][]int, n, m int) []EditOp {
	max := n + m
	ops := make([]EditOp, 0, max)
	x, y := n, m

	for d := len(trace) - 1; d > 0; d-- {
		prev := trace[d-1]
		k := x - y

		var prevK int
		if k == -d || (k != d && prev[max+k-1] < prev[max+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev[max+prevK]
		prevY := prevX - prevK

		// the snake walked at this depth, in reverse
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, EditOp{Kind: OpKeep, OldIndex: x, NewIndex: y})
		}

		if prevK == k+1 {
			y--
			ops = append(ops, EditOp{Kind: OpInsert, OldIndex: -1, NewIndex: y})
		} else {
			x--
			ops = append(ops, EditOp{Kind: OpDelete, OldIndex: x, NewIndex: -1})
		}
	}

	// leading snake at d == 0
	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, EditOp{Kind: OpKeep, OldIndex: x, NewIndex: y})
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
