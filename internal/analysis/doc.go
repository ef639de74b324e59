// Package analysis characterises how a pattern evolves over many generations.
//
//   - [PowerSpectrum] and [DominantPeriod]: frequency content of a population series
//   - [DensitySweep]: final density of random soups across a range of initial densities
//   - [DamageSpread]: how far a single flipped cell propagates
//
// # Oscillation
//
// A population series that repeats every p generations has its spectral peak
// at n/p:
//
//	pops := result.Populations
//	if p := analysis.DominantPeriod(analysis.Series(pops)); p > 0 {
//	    fmt.Printf("population oscillates with period %.1f\n", p)
//	}
package analysis
