package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const flatPower = 1e-9

// Series converts population counts to samples.
func Series(pops []int) []float64 {
	out := make([]float64, len(pops))
	for i, p := range pops {
		out[i] = float64(p)
	}
	return out
}

// PowerSpectrum returns |X_k|^2 for k in [0, n/2] of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a
	}
	return ps
}

// DominantPeriod returns n/k for the strongest non-zero frequency k, or 0
// when the series is too short or flat.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < flatPower {
		return 0
	}
	return float64(len(data)) / float64(best)
}
