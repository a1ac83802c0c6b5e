// Package textmatch implements Ratcliff-Obershelp sequence similarity for
// fuzzy operation lookup. The score is 2*M/T where M is the total length of
// recursively matched blocks and T the combined length of both inputs, so
// identical strings score 1.0 and disjoint strings 0.0.
package textmatch

// Ratio returns the similarity of a and b in [0, 1]. Comparison is
// case-sensitive; callers normalize case when they want it ignored.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	m := newMatcher(ra, rb)
	return 2.0 * float64(m.matchCount()) / float64(total)
}

type matcher struct {
	a, b []rune
	// b2j indexes every position of each rune in b, in ascending order.
	b2j map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &matcher{a: a, b: b, b2j: b2j}
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchCount sums the sizes of all matching blocks: find the longest common
// block, then recurse into the regions before and after it.
func (m *matcher) matchCount() int {
	count := 0
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		i, j, size := m.longestMatch(s)
		if size == 0 {
			continue
		}
		count += size
		queue = append(queue,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}
	return count
}

// longestMatch finds the longest block common to a[alo:ahi] and b[blo:bhi],
// preferring the earliest occurrence on ties.
func (m *matcher) longestMatch(s span) (besti, bestj, size int) {
	besti, bestj = s.alo, s.blo
	j2len := make(map[int]int)
	for i := s.alo; i < s.ahi; i++ {
		next := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > size {
				besti, bestj, size = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, size
}
