package weight

import (
	"math"
	"testing"
)

func TestConfidence(t *testing.T) {
	cases := []struct {
		samples int
		want    float64
	}{
		{0, 0.0},
		{1, 0.2},
		{3, 0.6},
		{5, 1.0},
		{10, 1.0},
	}
	for _, c := range cases {
		got := Confidence(c.samples)
		if got != c.want {
			t.Errorf("Confidence(%d) = %f, want %f", c.samples, got, c.want)
		}
	}
}

func TestCompute_FullConfidence(t *testing.T) {
	// 80% success over 5 samples: weight = exp(0.8*1.5)/e = exp(0.2) ~ 1.2214
	got := Compute(0.8, 5)
	want := math.Exp(1.2) / math.E
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Compute(0.8, 5) = %f, want %f", got, want)
	}
	if math.Abs(want-1.2214) > 0.001 {
		t.Errorf("Expected ~1.2214, got %f", want)
	}
}

func TestCompute_Shrinkage(t *testing.T) {
	// Single failed attempt: base = exp(0)/e = 1/e, conf = 0.2
	// weight = (1/e)*0.2 + 0.8*0.5 ~ 0.4736
	got := Compute(0.0, 1)
	want := (1.0/math.E)*0.2 + 0.4
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Compute(0.0, 1) = %f, want %f", got, want)
	}
	if math.Abs(got-0.4736) > 0.001 {
		t.Errorf("Expected ~0.4736, got %f", got)
	}
}

func TestCompute_ZeroSamples(t *testing.T) {
	// No observations: weight is the neutral baseline, regardless of rate
	for _, rate := range []float64{0.0, 0.5, 1.0} {
		if got := Compute(rate, 0); got != 0.5 {
			t.Errorf("Compute(%f, 0) = %f, want exactly 0.5", rate, got)
		}
	}
}

func TestCompute_Monotonic(t *testing.T) {
	// At full confidence, weight strictly increases with success rate
	prev := Compute(0.0, 5)
	for rate := 0.05; rate <= 1.0; rate += 0.05 {
		w := Compute(rate, 5)
		if w <= prev {
			t.Errorf("Weight not strictly increasing at rate %f: %f <= %f", rate, w, prev)
		}
		prev = w
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	for samples := 0; samples <= 10; samples++ {
		for rate := 0.0; rate <= 1.0; rate += 0.25 {
			if w := Compute(rate, samples); w < 0 {
				t.Errorf("Compute(%f, %d) = %f, negative weight", rate, samples, w)
			}
		}
	}
}

func TestCompute_Extremes(t *testing.T) {
	// 100% -> e^0.5, 50% -> e^-0.25, 0% -> 1/e at full confidence
	cases := []struct {
		rate float64
		want float64
	}{
		{1.0, 1.6487},
		{0.5, 0.7788},
		{0.0, 0.3679},
	}
	for _, c := range cases {
		got := Compute(c.rate, 5)
		if math.Abs(got-c.want) > 0.001 {
			t.Errorf("Compute(%f, 5) = %f, want ~%f", c.rate, got, c.want)
		}
	}
}
