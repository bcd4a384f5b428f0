package analysis

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrLength indicates a series whose length is not a power of two.
var ErrLength = errors.New("analysis: fft requires power of 2 length")

func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result, nil
	}

	if n&(n-1) != 0 {
		return nil, ErrLength
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven, _ := FFT(even)
	fodd, _ := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result, nil
}

func PowerSpectrum(data []float64) ([]float64, error) {
	fft, err := FFT(data)
	if err != nil {
		return nil, err
	}
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps, nil
}

// Pad centres series on its mean and zero-pads it to the next power of two.
func Pad(series []float64) []float64 {
	n := 1
	for n < len(series) {
		n *= 2
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	if len(series) > 0 {
		mean /= float64(len(series))
	}
	padded := make([]float64, n)
	for i, v := range series {
		padded[i] = v - mean
	}
	return padded
}

// DominantPeriod returns the period, in samples, of the strongest non-constant
// component of series and its power. A flat series reports period 0.
func DominantPeriod(series []float64) (period, power float64, err error) {
	padded := Pad(series)
	ps, err := PowerSpectrum(padded)
	if err != nil {
		return 0, 0, err
	}
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			power = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || power < 1e-9 {
		return 0, 0, nil
	}
	return float64(len(padded)) / float64(maxIdx), power, nil
}
