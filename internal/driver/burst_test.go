package driver_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/rng"
	"github.com/san-kum/discwalk/internal/walk"
)

var _ = Describe("Burst", func() {
	var (
		rec      *recorder
		controls *countingControls
	)

	BeforeEach(func() {
		rec = &recorder{}
		controls = &countingControls{p: defaultParams}
	})

	It("renders and advances exactly N times", func() {
		disc := newDisc(3)
		stats, err := driver.Burst(context.Background(), disc, rec, controls, 25)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Renders).To(Equal(25))
		Expect(stats.Advances).To(Equal(25))
		Expect(rec.shots).To(HaveLen(25))
	})

	It("draws each state before advancing it and never draws the last advance", func() {
		disc := newDisc(11)
		_, err := driver.Burst(context.Background(), disc, rec, controls, 10)
		Expect(err).NotTo(HaveOccurred())

		want := expectedStates(11, 10, defaultParams)
		Expect(rec.shots).To(Equal(want[:10]))
		Expect(disc.Snapshot()).To(Equal(want[10]))
	})

	It("clears once and reads controls once", func() {
		_, err := driver.Burst(context.Background(), newDisc(1), rec, controls, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(rec.clears).To(Equal(1))
		Expect(rec.events[0]).To(Equal("clear"))
		Expect(controls.reads).To(Equal(1))
	})

	It("works with renderers that cannot clear", func() {
		p := &plainRenderer{}
		_, err := driver.Burst(context.Background(), newDisc(1), p, controls, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.draws).To(Equal(4))
	})

	It("does nothing for zero frames", func() {
		disc := newDisc(2)
		before := disc.Snapshot()
		stats, err := driver.Burst(context.Background(), disc, rec, controls, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Renders).To(BeZero())
		Expect(disc.Snapshot()).To(Equal(before))
	})

	It("rejects negative frame counts", func() {
		_, err := driver.Burst(context.Background(), newDisc(2), rec, controls, -1)
		Expect(err).To(MatchError(driver.ErrInvalidFrameCount))
	})

	It("aborts on renderer failure", func() {
		rec.failAt = 4
		stats, err := driver.Burst(context.Background(), newDisc(5), rec, controls, 10)

		Expect(err).To(MatchError(driver.ErrRendererFailure))
		Expect(err).To(MatchError(errSurface))
		Expect(stats.Renders).To(Equal(3))
		Expect(stats.Advances).To(Equal(3))

		var te *driver.TickError
		Expect(err).To(BeAssignableToTypeOf(te))
		Expect(err.(*driver.TickError).Tick).To(Equal(4))
	})

	It("fails fast when controls cannot be read", func() {
		controls.err = driver.ErrConfigurationMissing
		stats, err := driver.Burst(context.Background(), newDisc(5), rec, controls, 10)

		Expect(err).To(MatchError(driver.ErrConfigurationMissing))
		Expect(stats.Renders).To(BeZero())
		Expect(rec.clears).To(BeZero())
	})

	It("surfaces an empty candidate set as an invalid region", func() {
		disc, err := walk.NewDiscAt(walk.Region{Min: 0, MaxX: 2, MaxY: 2}, walk.Coordinate{X: 1, Y: 1}, walk.RGB{}, 0.5, rng.New(1))
		Expect(err).NotTo(HaveOccurred())

		stats, err := driver.Burst(context.Background(), disc, rec, controls, 3)
		Expect(err).To(MatchError(walk.ErrInvalidRegion))
		Expect(stats.Renders).To(Equal(1))
		Expect(stats.Advances).To(BeZero())
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stats, err := driver.Burst(ctx, newDisc(5), rec, controls, 10)
		Expect(err).To(MatchError(context.Canceled))
		Expect(stats.Renders).To(BeZero())
	})

	It("notifies observers with 1-based ticks", func() {
		log := &tickLog{}
		_, err := driver.Burst(context.Background(), newDisc(5), rec, controls, 3, driver.WithObserver(log))
		Expect(err).NotTo(HaveOccurred())
		Expect(log.ticks).To(Equal([]int{1, 2, 3}))
	})
})
