// Package life implements the Game of Life state engine.
//
// An [Automaton] owns three buffers of identical dimensions:
//
//   - the live grid, advanced one generation per [Automaton.Step]
//   - the initial state, restored by [Automaton.Reset]
//   - the heatmap, a decaying trace of recent activity
//
// Edges are hard boundaries: cells outside the grid count as dead.
//
// # Example
//
//	a, _ := life.New(100, 150, life.ModeRandom, 42)
//	for i := 0; i < 10; i++ {
//		a.Step()
//	}
//	view := a.State(true) // heatmap copy
//
// # Thread Safety
//
// Automaton is NOT thread-safe. Hosts that tick it from one goroutine and
// render from another should go through [driver.Loop], which serialises
// access and hands out copies.
package life
