// Package analysis provides frequency analysis of per-generation series.
//
//   - [FFT]: radix-2 transform of a real series
//   - [PowerSpectrum]: magnitude of the positive-frequency bins
//   - [DominantPeriod]: the strongest oscillation period, in generations
//
// # Example
//
// A population series recorded by a run:
//
//	period, power, err := analysis.DominantPeriod(series)
//	if err == nil && period > 0 {
//	    fmt.Printf("population oscillates every %.1f generations\n", period)
//	}
package analysis
