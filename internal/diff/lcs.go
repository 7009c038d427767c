package diff

import (
	"strings"

	"github.com/rivo/uniseg"
)

// graphemes splits s into grapheme clusters so combining accents, emoji
// sequences and other multi-rune characters travel through the character
// diff as single units.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var clusters []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// flagged is one grapheme cluster plus whether it is part of the change.
type flagged struct {
	text    string
	changed bool
}

// CharDiff compares the two texts of a changed line pair and returns the
// per-side highlight runs. Clusters on the longest common subsequence are
// shared, everything else is changed, and adjacent clusters with the same
// flag merge into one segment. An empty side yields nil while the other
// side becomes a single fully-changed segment.
func CharDiff(oldText, newText string) (oldSegs, newSegs []CharSegment) {
	a := graphemes(oldText)
	b := graphemes(newText)

	if len(a) == 0 && len(b) == 0 {
		return nil, nil
	}
	if len(a) == 0 {
		return nil, []CharSegment{{Text: newText, Changed: true}}
	}
	if len(b) == 0 {
		return []CharSegment{{Text: oldText, Changed: true}}, nil
	}

	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	// Walk back from the corner. Equal clusters always sit on an optimal
	// path, so the diagonal is safe to take whenever they match; on ties
	// the new side is marked first.
	var oldRev, newRev []flagged
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			oldRev = append(oldRev, flagged{text: a[i-1]})
			newRev = append(newRev, flagged{text: b[j-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			newRev = append(newRev, flagged{text: b[j-1], changed: true})
			j--
		default:
			oldRev = append(oldRev, flagged{text: a[i-1], changed: true})
			i--
		}
	}
	return coalesce(oldRev), coalesce(newRev)
}

// coalesce turns a reversed backtrack run into ordered segments, merging
// neighbouring clusters that share the changed flag.
func coalesce(rev []flagged) []CharSegment {
	if len(rev) == 0 {
		return nil
	}
	var segs []CharSegment
	var b strings.Builder
	changed := rev[len(rev)-1].changed
	for idx := len(rev) - 1; idx >= 0; idx-- {
		c := rev[idx]
		if c.changed != changed {
			segs = append(segs, CharSegment{Text: b.String(), Changed: changed})
			b.Reset()
			changed = c.changed
		}
		b.WriteString(c.text)
	}
	segs = append(segs, CharSegment{Text: b.String(), Changed: changed})
	return segs
}
