package diff

// Engine computes an atomic operation stream that transforms a into b.
// The stream is consumed by patch compaction, which assumes OpInsert markers
// correspond positionally to elements of b and OpDelete markers to elements
// of a.
type Engine[T any] interface {
	Diff(a, b []T, cmp Comparator[T]) []Op
}

// ExactEngine computes a minimal edit script using a furthest-reaching-point
// search over the edit graph. For each diagonal k = x - y it tracks the
// furthest point reachable with a given edit count p, increasing p until the
// target diagonal delta = len(b) - len(a) reaches the end of b.
//
// Time and space are O((m+n)*D) where D is the edit distance. Callers must
// bound input sizes (see Limits); the dispatcher degrades to BoundaryEngine
// when the bound is exceeded.
//
// The returned stream always starts with a bootstrap marker recorded before
// the first genuine operation. The dispatcher strips it.
type ExactEngine[T any] struct{}

// route records a snake endpoint plus a link to the endpoint it extended.
type route struct {
	x, y   int
	parent int
}

// Diff returns a minimal edit script from a to b.
func (ExactEngine[T]) Diff(a, b []T, cmp Comparator[T]) []Op {
	m, n := len(a), len(b)

	// The search requires m <= n; swap and flip insert/delete on output.
	exchanged := false
	if m > n {
		a, b = b, a
		m, n = n, m
		exchanged = true
	}

	offset := m + 1
	delta := n - m
	size := m + n + 3

	// fp[k+offset] is the furthest y reached on diagonal k; path[k+offset]
	// indexes the route pool entry for that point.
	fp := make([]int, size)
	path := make([]int, size)
	for i := range fp {
		fp[i] = -1
		path[i] = -1
	}

	pool := make([]route, 0, size)

	snake := func(k int) {
		// Take the better of the two adjacent-diagonal extensions. Ties
		// prefer the k-1 side so the script is deterministic.
		var y, parent int
		if down, up := fp[k-1+offset]+1, fp[k+1+offset]; down >= up {
			y = down
			parent = path[k-1+offset]
		} else {
			y = up
			parent = path[k+1+offset]
		}

		// Greedily extend along the diagonal while elements match.
		x := y - k
		for x < m && y < n && cmp(a[x], b[y]) {
			x++
			y++
		}

		pool = append(pool, route{x: x, y: y, parent: parent})
		path[k+offset] = len(pool) - 1
		fp[k+offset] = y
	}

	for p := 0; ; p++ {
		for k := -p; k < delta; k++ {
			snake(k)
		}
		for k := delta + p; k > delta; k-- {
			snake(k)
		}
		snake(delta)
		if fp[delta+offset] == n {
			break
		}
	}

	// Walk the route chain back from the sink, then emit operations from the
	// origin forward.
	var chain []route
	for i := path[delta+offset]; i != -1; i = pool[i].parent {
		chain = append(chain, pool[i])
	}

	ops := make([]Op, 0, m+n+1)
	ops = append(ops, opSentinel)

	px, py := 0, 0
	for i := len(chain) - 1; i >= 0; i-- {
		for px < chain[i].x || py < chain[i].y {
			switch kd := chain[i].y - chain[i].x; {
			case kd > py-px:
				if exchanged {
					ops = append(ops, OpDelete)
				} else {
					ops = append(ops, OpInsert)
				}
				py++
			case kd < py-px:
				if exchanged {
					ops = append(ops, OpInsert)
				} else {
					ops = append(ops, OpDelete)
				}
				px++
			default:
				ops = append(ops, OpEqual)
				px++
				py++
			}
		}
	}

	return ops
}
