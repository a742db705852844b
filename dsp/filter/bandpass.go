package filter

import "fmt"

// ApplyBandpass filters samples through a Butterworth bandpass of the given
// order with -3 dB cutoffs at low and high Hz, applied forward and backward
// so the output has zero phase distortion.
//
// The band is realized as a highpass cascade at low followed by a lowpass
// cascade at high, each of the given order. The input slice is never
// mutated; a new slice is returned.
func ApplyBandpass(samples []float64, low, high, sampleRate float64, order int) ([]float64, error) {
	if order <= 0 {
		return nil, fmt.Errorf("filter: order must be positive, got %d", order)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("filter: sample rate must be positive, got %g", sampleRate)
	}
	if low <= 0 || high >= sampleRate/2 {
		return nil, fmt.Errorf("filter: band [%g, %g] Hz outside (0, %g)", low, high, sampleRate/2)
	}
	if low >= high {
		return nil, fmt.Errorf("filter: low cutoff %g Hz must be below high cutoff %g Hz", low, high)
	}

	sections := append(ButterworthHP(low, order, sampleRate), ButterworthLP(high, order, sampleRate)...)
	chain := NewChain(sections)

	return filtfilt(chain, samples, 3*order), nil
}

// filtfilt runs the cascade forward and backward over x. The signal is
// extended at both ends by odd reflection (padLen samples) so the filter
// state settles before it reaches real data, then the padding is stripped.
func filtfilt(chain *Chain, x []float64, padLen int) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}
	if padLen > n-1 {
		padLen = n - 1
	}

	ext := make([]float64, padLen+n+padLen)
	for i := 0; i < padLen; i++ {
		ext[i] = 2*x[0] - x[padLen-i]
	}
	copy(ext[padLen:], x)
	for i := 0; i < padLen; i++ {
		ext[padLen+n+i] = 2*x[n-1] - x[n-2-i]
	}

	chain.Reset()
	chain.ProcessBlock(ext)
	reverse(ext)

	chain.Reset()
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[padLen:padLen+n])
	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
