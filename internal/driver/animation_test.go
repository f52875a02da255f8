package driver_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

// drain ticks until the animation asks for no more opportunities.
func drain(a *driver.Animation) (int, error) {
	opportunities := 0
	for {
		opportunities++
		more, err := a.Tick()
		if err != nil || !more {
			return opportunities, err
		}
	}
}

var _ = Describe("Animation", func() {
	var (
		rec      *recorder
		controls *countingControls
	)

	BeforeEach(func() {
		rec = &recorder{}
		controls = &countingControls{p: defaultParams}
	})

	It("renders limit+1 times before stopping itself", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 10)
		opportunities, err := drain(a)

		Expect(err).NotTo(HaveOccurred())
		Expect(rec.shots).To(HaveLen(11))
		Expect(opportunities).To(Equal(12))
		Expect(a.Stopped()).To(BeTrue())
		Expect(a.Ticks()).To(Equal(11))
		Expect(a.Stats().Advances).To(Equal(11))
	})

	It("renders once for a zero limit", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 0)
		_, err := drain(a)

		Expect(err).NotTo(HaveOccurred())
		Expect(rec.shots).To(HaveLen(1))
	})

	It("reads controls on every tick", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 5)
		_, err := drain(a)

		Expect(err).NotTo(HaveOccurred())
		Expect(controls.reads).To(Equal(6))
	})

	It("applies control changes made between ticks", func() {
		a := driver.NewAnimation(newDisc(8), rec, controls, 3)

		more, err := a.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(more).To(BeTrue())

		controls.p.Step = 10
		before := a.Disc().Snapshot()
		_, err = a.Tick()
		Expect(err).NotTo(HaveOccurred())
		after := a.Disc().Snapshot()

		dx, dy := after.X-before.X, after.Y-before.Y
		Expect(dx*dx + dy*dy).To(BeNumerically(">=", 100-1e-9))
	})

	It("alternates strictly between render and advance", func() {
		a := driver.NewAnimation(newDisc(21), rec, controls, 7)
		_, err := drain(a)
		Expect(err).NotTo(HaveOccurred())

		want := expectedStates(21, 8, defaultParams)
		Expect(rec.shots).To(Equal(want[:8]))
		Expect(a.Disc().Snapshot()).To(Equal(want[8]))
	})

	It("clears exactly once, before the first draw", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 3)
		Expect(a.Start()).To(Succeed())
		Expect(a.Start()).To(Succeed())
		_, err := drain(a)

		Expect(err).NotTo(HaveOccurred())
		Expect(rec.clears).To(Equal(1))
		Expect(rec.events[0]).To(Equal("clear"))
	})

	It("keeps returning false once stopped", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 100)
		_, _ = a.Tick()
		a.Stop()

		more, err := a.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(more).To(BeFalse())
		Expect(rec.shots).To(HaveLen(1))
	})

	It("aborts on renderer failure", func() {
		rec.failAt = 3
		a := driver.NewAnimation(newDisc(4), rec, controls, 10)
		_, err := drain(a)

		Expect(err).To(MatchError(driver.ErrRendererFailure))
		Expect(a.Stopped()).To(BeTrue())
		Expect(a.Err()).To(MatchError(errSurface))
		Expect(rec.shots).To(HaveLen(2))

		more, err := a.Tick()
		Expect(more).To(BeFalse())
		Expect(err).To(MatchError(driver.ErrRendererFailure))
	})

	It("aborts when controls disappear mid-run", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, 10)
		_, err := a.Tick()
		Expect(err).NotTo(HaveOccurred())

		controls.err = errors.New("slider missing")
		_, err = a.Tick()
		Expect(err).To(MatchError(driver.ErrConfigurationMissing))
		Expect(rec.shots).To(HaveLen(1))
	})

	It("takes a plain function as controls", func() {
		calls := 0
		fn := driver.ControlsFunc(func() (driver.Params, error) {
			calls++
			if calls > 2 {
				return driver.Params{}, errors.New("schedule exhausted")
			}
			return defaultParams, nil
		})
		a := driver.NewAnimation(newDisc(4), rec, fn, 10)
		_, err := drain(a)

		Expect(err).To(MatchError(driver.ErrConfigurationMissing))
		Expect(rec.shots).To(HaveLen(2))
		Expect(a.Stats().Advances).To(Equal(2))
		Expect(calls).To(Equal(3))
	})

	It("rejects a negative limit", func() {
		a := driver.NewAnimation(newDisc(4), rec, controls, -2)
		more, err := a.Tick()
		Expect(more).To(BeFalse())
		Expect(err).To(MatchError(driver.ErrInvalidFrameCount))
	})

	Describe("Run", func() {
		It("consumes one frame per tick and finishes at the limit", func() {
			frames := make(chan time.Time, 20)
			for i := 0; i < 20; i++ {
				frames <- time.Now()
			}

			a := driver.NewAnimation(newDisc(4), rec, controls, 5)
			err := a.Run(context.Background(), frames)

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.shots).To(HaveLen(6))
			Expect(frames).To(HaveLen(20 - 7))
		})

		It("reports a closed frame source", func() {
			frames := make(chan time.Time, 2)
			frames <- time.Now()
			frames <- time.Now()
			close(frames)

			a := driver.NewAnimation(newDisc(4), rec, controls, 5)
			err := a.Run(context.Background(), frames)

			Expect(err).To(MatchError(driver.ErrFramesClosed))
			Expect(rec.shots).To(HaveLen(2))
		})

		It("honors an explicit cancel", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			a := driver.NewAnimation(newDisc(4), rec, controls, 5)
			err := a.Run(ctx, make(chan time.Time))

			Expect(err).To(MatchError(context.Canceled))
			Expect(a.Stopped()).To(BeTrue())
		})

		It("runs from a ticker", func() {
			frames, stop := driver.Ticker(1000)
			defer stop()

			log := &tickLog{}
			a := driver.NewAnimation(newDisc(4), rec, controls, 4, driver.WithObserver(log))
			Expect(a.Run(context.Background(), frames)).To(Succeed())
			Expect(log.ticks).To(Equal([]int{1, 2, 3, 4, 5}))
		})
	})

	It("surfaces walk failures", func() {
		disc, err := walk.NewDiscAt(walk.Region{Min: 0, MaxX: 2, MaxY: 2}, walk.Coordinate{X: 1, Y: 1}, walk.RGB{}, 0.5, nil)
		Expect(err).NotTo(HaveOccurred())

		a := driver.NewAnimation(disc, rec, controls, 3)
		_, err = a.Tick()
		Expect(err).To(MatchError(walk.ErrInvalidRegion))
		Expect(a.Stopped()).To(BeTrue())
	})
})
