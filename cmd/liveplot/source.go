package main

import (
	"math"
	"math/rand"

	"github.com/googlesky/liveplot"
)

// source produces one sample per series per tick.
type source interface {
	// setup registers this source's series on the plot.
	setup(p *liveplot.Plot)
	// sample returns the values for tick number step.
	sample(step int) map[string]float64
}

type sineSource struct{}

func newSineSource(liveplot.Config) (source, error) { return sineSource{}, nil }

func (sineSource) setup(p *liveplot.Plot) {
	cfg := liveplot.DefaultSeriesConfig()
	cfg.Label = "sin(x)"
	p.AddSeries("sin", &cfg)
}

func (sineSource) sample(step int) map[string]float64 {
	return map[string]float64{
		"sin": math.Sin(radians(step)) * 100,
	}
}

type multiSource struct{}

func newMultiSource(liveplot.Config) (source, error) { return multiSource{}, nil }

func (multiSource) setup(p *liveplot.Plot) {
	sin := liveplot.DefaultSeriesConfig()
	sin.Label = "sin(x)"
	cos := liveplot.DefaultSeriesConfig()
	cos.Label = "cos(x)"
	saw := liveplot.DefaultSeriesConfig()
	saw.Label = "sawtooth"
	saw.LineWidth = 1
	p.AddSeries("sin", &sin).AddSeries("cos", &cos).AddSeries("saw", &saw)
}

func (multiSource) sample(step int) map[string]float64 {
	return map[string]float64{
		"sin": math.Sin(radians(step)) * 100,
		"cos": math.Cos(radians(step)) * 80,
		"saw": float64(step%180)/180*200 - 100,
	}
}

// autoSource grows its amplitude over time to exercise auto-scaling.
type autoSource struct {
	rng *rand.Rand
}

func newAutoSource(liveplot.Config) (source, error) {
	return &autoSource{rng: rand.New(rand.NewSource(1))}, nil
}

func (s *autoSource) setup(p *liveplot.Plot) {
	cfg := liveplot.DefaultSeriesConfig()
	cfg.Label = "Growing Signal"
	p.AddSeries("signal", &cfg)
}

func (s *autoSource) sample(step int) map[string]float64 {
	amplitude := 10 + float64(step)/5
	noise := s.rng.NormFloat64() * amplitude * 0.1
	return map[string]float64{
		"signal": math.Sin(radians(step*3))*amplitude + noise,
	}
}

func radians(deg int) float64 {
	return float64(deg) * math.Pi / 180
}
