// Package viz provides the terminal host for the automaton.
//
// The host is a Bubble Tea program that drives a [driver.Loop] from its tick
// messages and renders the grid or the heatmap with lipgloss:
//
//   - zoomed view: two terminal columns per cell, following the cursor
//   - overview: a braille [Canvas] packing 2x4 cells into one character
//   - population sparkline and status panel
//
// # Key Bindings
//
//	Space  - Play/Pause
//	N      - Single step
//	R      - Reset to the initial state
//	C / G  - Clear / random board
//	H      - Toggle heatmap
//	+ / -  - Faster / slower
//	Arrows - Move cursor
//	X      - Toggle cell under cursor
//	D / E  - Paint / erase while moving
//	S / L  - Save / load pattern file
//	O      - Toggle overview
//	T      - Cycle themes
//	?      - Help
package viz
