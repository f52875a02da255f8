package metrics

import (
	"math"

	"github.com/san-kum/discwalk/internal/walk"
)

// PathLength is the total distance between consecutive rendered positions.
type PathLength struct {
	name    string
	total   float64
	last    walk.Snapshot
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) OnTick(_ int, s walk.Snapshot) {
	if p.samples > 0 {
		p.total += math.Hypot(s.X-p.last.X, s.Y-p.last.Y)
	}
	p.last = s
	p.samples++
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.total = 0
	p.last = walk.Snapshot{}
	p.samples = 0
}
