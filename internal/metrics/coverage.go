package metrics

import "github.com/san-kum/discwalk/internal/walk"

// Coverage is the fraction of grid cells the disc center has visited.
type Coverage struct {
	name       string
	region     walk.Region
	cols, rows int
	visited    []bool
	count      int
}

func NewCoverage(region walk.Region, cols, rows int) *Coverage {
	return &Coverage{
		name:    "coverage",
		region:  region,
		cols:    cols,
		rows:    rows,
		visited: make([]bool, cols*rows),
	}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) OnTick(_ int, s walk.Snapshot) {
	col := int((s.X - c.region.Min) / c.region.Width() * float64(c.cols))
	row := int((s.Y - c.region.Min) / c.region.Height() * float64(c.rows))
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	idx := row*c.cols + col
	if !c.visited[idx] {
		c.visited[idx] = true
		c.count++
	}
}

func (c *Coverage) Value() float64 {
	if len(c.visited) == 0 {
		return 0
	}
	return float64(c.count) / float64(len(c.visited))
}

func (c *Coverage) Reset() {
	clear(c.visited)
	c.count = 0
}
