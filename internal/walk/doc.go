// Package walk provides the stochastic state model of a drifting disc.
//
// A disc performs two independent random walks per tick:
//
//   - [Coordinate]: a lattice step of fixed magnitude in one of eight
//     directions, rejecting candidates outside the open [Region]
//   - [RGB]: three [Channel] values each drifting up or down with
//     saturating arithmetic
//
// All randomness comes from an injected [rng.Source], so a replayed
// sequence reproduces a walk exactly.
//
// # Example
//
//	src := rng.New(42)
//	d, _ := walk.NewDisc(walk.DefaultRegion, walk.DefaultRadius, src)
//	for i := 0; i < 100; i++ {
//		if err := d.Advance(walk.DefaultStep, 20); err != nil {
//			return err
//		}
//	}
//
// # Thread Safety
//
// Disc instances are NOT thread-safe. A disc is owned by a single driver
// for the length of a run.
package walk
