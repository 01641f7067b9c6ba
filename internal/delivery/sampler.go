package delivery

import "math/rand/v2"

// Source yields uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Sampler turns sent counts into received counts through Bernoulli trials.
// A Sampler is not safe for concurrent use; give each run its own.
type Sampler struct {
	src Source
}

// NewSampler wraps src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// NewSeededSampler returns a reproducible sampler.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEntropySampler returns a sampler seeded from the runtime entropy source.
func NewEntropySampler() *Sampler {
	return NewSampler(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// Sample draws sent values in [0,100) and counts those strictly below targetRate.
func (s *Sampler) Sample(sent int, targetRate float64) int {
	received := 0
	for i := 0; i < sent; i++ {
		if s.src.Float64()*100 < targetRate {
			received++
		}
	}
	return received
}
