package driver_test

import (
	"errors"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/rng"
	"github.com/san-kum/discwalk/internal/walk"
)

var errSurface = errors.New("surface unavailable")

// recorder logs every call so ordering can be asserted.
type recorder struct {
	events []string
	shots  []walk.Snapshot
	clears int
	failAt int
}

func (r *recorder) Draw(s walk.Snapshot) error {
	if r.failAt > 0 && len(r.shots)+1 == r.failAt {
		return errSurface
	}
	r.events = append(r.events, "draw")
	r.shots = append(r.shots, s)
	return nil
}

func (r *recorder) Clear() error {
	r.clears++
	r.events = append(r.events, "clear")
	return nil
}

// plainRenderer does not implement Clearer.
type plainRenderer struct{ draws int }

func (p *plainRenderer) Draw(walk.Snapshot) error {
	p.draws++
	return nil
}

type countingControls struct {
	p     driver.Params
	reads int
	err   error
}

func (c *countingControls) Params() (driver.Params, error) {
	c.reads++
	return c.p, c.err
}

type tickLog struct{ ticks []int }

func (l *tickLog) OnTick(tick int, _ walk.Snapshot) { l.ticks = append(l.ticks, tick) }

var defaultParams = driver.Params{Step: walk.DefaultStep, Delta: 10}

func newDisc(seed int64) *walk.Disc {
	d, err := walk.NewDiscAt(walk.DefaultRegion, walk.Coordinate{X: 250, Y: 125}, walk.RGB{R: 120, G: 120, B: 120}, walk.DefaultRadius, rng.New(seed))
	if err != nil {
		panic(err)
	}
	return d
}

// expectedStates replays the same walk and returns the state before each of
// n advances plus the final state.
func expectedStates(seed int64, n int, p driver.Params) []walk.Snapshot {
	d := newDisc(seed)
	out := make([]walk.Snapshot, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, d.Snapshot())
		if err := d.Advance(p.Step, p.Delta); err != nil {
			panic(err)
		}
	}
	return append(out, d.Snapshot())
}
