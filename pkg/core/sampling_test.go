package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomSampler_RangeBounds(t *testing.T) {
	s := NewRandomSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		u := s.Get1D()
		if u < 0 || u >= 1 {
			t.Fatalf("Get1D out of range: %v", u)
		}
		uv := s.Get2D()
		if uv.X < 0 || uv.X >= 1 || uv.Y < 0 || uv.Y >= 1 {
			t.Fatalf("Get2D out of range: %v", uv)
		}
	}
}

func TestSampleExponential_EndpointBehavior(t *testing.T) {
	if got := SampleExponential(0, 1); got != 0 {
		t.Errorf("u=0 should sample distance 0, got %v", got)
	}
	// as u -> 1, the sampled distance grows without bound
	if got := SampleExponential(0.999999, 1); got < 10 {
		t.Errorf("expected a large distance near u=1, got %v", got)
	}
}

func TestSampleExponential_MeanMatchesRate(t *testing.T) {
	const rate = 2.5
	rng := rand.New(rand.NewSource(42))
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += SampleExponential(rng.Float64(), rate)
	}
	mean := sum / n
	want := 1 / rate
	if math.Abs(mean-want) > 0.02 {
		t.Errorf("sample mean %v far from expected %v", mean, want)
	}
}

func TestSampleExponential_Nonnegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		if d := SampleExponential(rng.Float64(), 3.0); d < 0 {
			t.Fatalf("sampled a negative free-flight distance: %v", d)
		}
	}
}
