package control

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// lowPass is a Butterworth low-pass IIR filter, designed once at
// Configure time via the bilinear transform and evaluated per tick in
// direct-form-I difference-equation form: this is what gives the
// estimator's velocity filtering well-defined behavior at any sample
// rate, unlike a naive exponential moving average.
type lowPass struct {
	name  string
	input string

	order      int
	cutoffHz   float64
	sampleRate float64

	// aCoeffs, bCoeffs are normalized so aCoeffs[0] == 1.
	aCoeffs []float64
	bCoeffs []float64

	xHist []float64
	yHist []float64

	y []Signal
}

func newLowPass(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	l := &lowPass{name: cfg.Name}
	order := int(attrFloat(cfg.Attribute, "order", 1))
	cutoff := attrFloat(cfg.Attribute, "cutoff_hz", 0)
	sampleRate := attrFloat(cfg.Attribute, "sample_rate_hz", 0)
	if order < 1 {
		return nil, errors.Errorf("low_pass block %s needs order >= 1", cfg.Name)
	}
	if cutoff <= 0 || sampleRate <= 0 {
		return nil, errors.Errorf("low_pass block %s needs cutoff_hz and sample_rate_hz > 0", cfg.Name)
	}
	if len(cfg.DependsOn) != 1 {
		return nil, errors.Errorf("low_pass block %s expects exactly 1 input got %d", cfg.Name, len(cfg.DependsOn))
	}
	l.order = order
	l.cutoffHz = cutoff
	l.sampleRate = sampleRate
	l.input = cfg.DependsOn[0]
	l.aCoeffs, l.bCoeffs = designButterworthLowPass(order, cutoff, sampleRate)
	l.xHist = make([]float64, order)
	l.yHist = make([]float64, order)
	l.y = []Signal{MakeSignal(cfg.Name, 1)}
	return l, nil
}

// designButterworthLowPass computes normalized direct-form-I coefficients
// for an order-n Butterworth low-pass at cutoffHz, sampled at sampleRateHz,
// via the bilinear transform with frequency pre-warping.
func designButterworthLowPass(n int, cutoffHz, sampleRateHz float64) (aCoeffs, bCoeffs []float64) {
	t := 1.0 / sampleRateHz
	wc := 2 * math.Pi * cutoffHz
	wcWarped := (2 / t) * math.Tan(wc*t/2)

	// Start the denominator at the unit polynomial 1 and multiply in the
	// contribution of each analog pole, one pole at a time, via complex
	// polynomial multiplication.
	aPoly := []complex128{1}

	for k := 0; k < n; k++ {
		theta := math.Pi * (2*float64(k) + float64(n) + 1) / (2 * float64(n))
		sPole := complex(wcWarped*math.Cos(theta), wcWarped*math.Sin(theta))

		// Bilinear transform of a single pole.
		num := 1 + sPole*complex(t/2, 0)
		den := 1 - sPole*complex(t/2, 0)
		zPole := num / den

		// (1 - zPole z^-1) factor, multiplied into the running
		// denominator polynomial.
		aPoly = polyMulComplex(aPoly, []complex128{1, -zPole})
	}

	aReal := make([]float64, len(aPoly))
	for i, c := range aPoly {
		aReal[i] = real(c)
	}

	// Numerator is (1 + z^-1)^n, scaled so the DC gain (sum(b) / sum(a))
	// is exactly 1.
	bPoly := []float64{1}
	for i := 0; i < n; i++ {
		bPoly = polyMulReal(bPoly, []float64{1, 1})
	}
	sumA, sumB := 0.0, 0.0
	for _, v := range aReal {
		sumA += v
	}
	for _, v := range bPoly {
		sumB += v
	}
	scale := sumA / sumB
	for i := range bPoly {
		bPoly[i] *= scale
	}

	return aReal, bPoly
}

func polyMulComplex(a, b []complex128) []complex128 {
	out := make([]complex128, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

func polyMulReal(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

func (l *lowPass) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	in, ok := findSignal(inputs, l.input)
	if !ok {
		return nil, false
	}
	x := in.GetSignalValueAt(0)

	out := l.bCoeffs[0] * x
	for i := 1; i < len(l.bCoeffs); i++ {
		out += l.bCoeffs[i] * l.xHist[i-1]
	}
	for i := 1; i < len(l.aCoeffs); i++ {
		out -= l.aCoeffs[i] * l.yHist[i-1]
	}
	out /= l.aCoeffs[0]

	for i := len(l.xHist) - 1; i > 0; i-- {
		l.xHist[i] = l.xHist[i-1]
	}
	l.xHist[0] = x
	for i := len(l.yHist) - 1; i > 0; i-- {
		l.yHist[i] = l.yHist[i-1]
	}
	l.yHist[0] = out

	l.y[0].SetSignalValueAt(0, out)
	return l.y, true
}

func (l *lowPass) Reset() {
	for i := range l.xHist {
		l.xHist[i] = 0
	}
	for i := range l.yHist {
		l.yHist[i] = 0
	}
}
