package game

// PathOptions controls which cells a search may cross.
type PathOptions struct {
	// IgnoreSoft lets the search pass through intact soft blocks.
	IgnoreSoft bool
	// Avoid, when set, rejects cells it returns true for (the start cell is
	// always accepted).
	Avoid func(Point) bool
}

// CellSet is a boolean mask over the grid.
type CellSet [][]bool

func newCellSet(rows, cols int) CellSet {
	s := make(CellSet, rows)
	for r := range s {
		s[r] = make([]bool, cols)
	}
	return s
}

// Has reports whether p is in the set. Out-of-bounds points never are.
func (s CellSet) Has(p Point) bool {
	if p.Row < 0 || p.Row >= len(s) || p.Col < 0 || p.Col >= len(s[p.Row]) {
		return false
	}
	return s[p.Row][p.Col]
}

// walkable reports whether a search may step onto p.
func (m Model) walkable(p Point, opts PathOptions) bool {
	cell := m.Grid.At(p)
	if cell.Type == HardBlock {
		return false
	}
	if cell.intactSoft() && !opts.IgnoreSoft {
		return false
	}
	if m.BombAt(p) {
		return false
	}
	return opts.Avoid == nil || !opts.Avoid(p)
}

// Reachable flood-fills from start and returns every cell that can be
// reached through walkable cells. The start cell is always included, even
// when a bomb sits on it.
func Reachable(m Model, start Point, ignoreSoft bool) CellSet {
	seen := newCellSet(m.Grid.Rows(), m.Grid.Cols())
	for _, p := range floodOrder(m, start, PathOptions{IgnoreSoft: ignoreSoft}) {
		seen[p.Row][p.Col] = true
	}
	return seen
}

// floodOrder returns the cells reachable from start in breadth-first
// discovery order, so earlier cells are never farther away in steps.
func floodOrder(m Model, start Point, opts PathOptions) []Point {
	if !m.Grid.InBounds(start) {
		return nil
	}
	seen := newCellSet(m.Grid.Rows(), m.Grid.Cols())
	queue := []Point{start}
	seen[start.Row][start.Col] = true
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range cardinal {
			next := cur.add(d, 1)
			if !m.Grid.InBounds(next) || seen[next.Row][next.Col] {
				continue
			}
			if !m.walkable(next, opts) {
				continue
			}
			seen[next.Row][next.Col] = true
			queue = append(queue, next)
		}
	}
	return queue
}

// ShortestPath runs a breadth-first search from start to goal and returns
// the cells to walk, excluding start and including goal. It returns nil when
// the goal is off the board or unreachable, and an empty path when start
// equals goal.
func ShortestPath(m Model, start, goal Point, opts PathOptions) []Point {
	if !m.Grid.InBounds(goal) || !m.Grid.InBounds(start) {
		return nil
	}
	if start == goal {
		return []Point{}
	}

	rows, cols := m.Grid.Rows(), m.Grid.Cols()
	seen := newCellSet(rows, cols)
	prev := make([]Point, rows*cols)

	queue := []Point{start}
	seen[start.Row][start.Col] = true
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			return unwind(prev, cols, start, goal)
		}
		for _, d := range cardinal {
			next := cur.add(d, 1)
			if !m.Grid.InBounds(next) || seen[next.Row][next.Col] {
				continue
			}
			if !m.walkable(next, opts) {
				continue
			}
			seen[next.Row][next.Col] = true
			prev[next.Row*cols+next.Col] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(prev []Point, cols int, start, goal Point) []Point {
	var rev []Point
	for p := goal; p != start; p = prev[p.Row*cols+p.Col] {
		rev = append(rev, p)
	}
	path := make([]Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
