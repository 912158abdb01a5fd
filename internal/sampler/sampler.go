// Package sampler draws reference samples from the probability distributions
// covered by the study, on a seedable source so chart output is reproducible.
package sampler

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rudidomingues/censotec/internal/domain"
)

// Source wraps a seeded random source shared by all samplers.
type Source struct {
	src *rand.Rand
}

// New creates a sampler source with the given seed.
func New(seed uint64) *Source {
	return &Source{src: rand.New(rand.NewSource(seed))}
}

// Bernoulli draws n samples in {0,1} with success probability p.
func (s *Source) Bernoulli(p float64, n int) []float64 {
	return s.draw(distuv.Bernoulli{P: p, Src: s.src}, n)
}

// Binomial draws n samples of successes in `trials` Bernoulli(p) trials.
func (s *Source) Binomial(trials int, p float64, n int) []float64 {
	return s.draw(distuv.Binomial{N: float64(trials), P: p, Src: s.src}, n)
}

// Poisson draws n samples with rate lambda.
func (s *Source) Poisson(lambda float64, n int) []float64 {
	return s.draw(distuv.Poisson{Lambda: lambda, Src: s.src}, n)
}

// Uniform draws n samples from U(min,max).
func (s *Source) Uniform(min, max float64, n int) []float64 {
	return s.draw(distuv.Uniform{Min: min, Max: max, Src: s.src}, n)
}

// Exponential draws n samples with the given rate.
func (s *Source) Exponential(rate float64, n int) []float64 {
	return s.draw(distuv.Exponential{Rate: rate, Src: s.src}, n)
}

// Normal draws n samples from N(mu, sigma²).
func (s *Source) Normal(mu, sigma float64, n int) []float64 {
	return s.draw(distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}, n)
}

// StudentsT draws n samples from a Student-t with df degrees of freedom.
func (s *Source) StudentsT(df float64, n int) []float64 {
	return s.draw(distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df, Src: s.src}, n)
}

// Geometric draws n samples counting trials until the first success,
// support {1, 2, ...}. distuv has no geometric distribution, so this uses
// the inverse transform on a uniform variate.
func (s *Source) Geometric(p float64, n int) ([]float64, error) {
	if p <= 0 || p > 1 {
		return nil, domain.ErrValidation("geometric p must be in (0,1], got %v", p)
	}
	out := make([]float64, n)
	for i := range out {
		if p == 1 {
			out[i] = 1
			continue
		}
		u := s.src.Float64()
		out[i] = math.Ceil(math.Log(1-u) / math.Log(1-p))
	}
	return out, nil
}

// Hypergeometric draws n samples of the number of successes in `draws`
// draws without replacement from a population of popSize items containing
// successes marked items. distuv has no hypergeometric distribution, so
// each sample simulates the urn draw by draw.
func (s *Source) Hypergeometric(popSize, successes, draws, n int) ([]float64, error) {
	if successes > popSize {
		return nil, domain.ErrValidation("hypergeometric: successes %d exceeds population %d", successes, popSize)
	}
	if draws > popSize {
		return nil, domain.ErrValidation("hypergeometric: draws %d exceeds population %d", draws, popSize)
	}
	out := make([]float64, n)
	for i := range out {
		good := successes
		total := popSize
		hits := 0
		for d := 0; d < draws; d++ {
			if s.src.Float64() < float64(good)/float64(total) {
				hits++
				good--
			}
			total--
		}
		out[i] = float64(hits)
	}
	return out, nil
}

func (s *Source) draw(d interface{ Rand() float64 }, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
