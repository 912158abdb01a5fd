package sampler

import "github.com/rudidomingues/censotec/internal/domain"

// ReferenceSample is one named distribution sample used for the reference
// histogram charts.
type ReferenceSample struct {
	Name     string // file-safe slug, e.g. "binomial"
	Title    string // chart title, e.g. "Binomial (n=10, p=0.6)"
	Discrete bool
	Values   []float64
	Bins     int // bin count for continuous samples; ignored when discrete
}

// ReferenceInfo describes one reference distribution without sampling it.
type ReferenceInfo struct {
	Name  string
	Title string
}

type referenceSpec struct {
	name     string
	title    string
	discrete bool
	bins     int
	draw     func(s *Source) ([]float64, error)
}

// The standard set of distributions covered by the study: five discrete and
// four continuous, with the study's parameters and sample sizes.
var referenceSpecs = []referenceSpec{
	{name: "bernoulli", title: "Bernoulli (p=0.7)", discrete: true,
		draw: func(s *Source) ([]float64, error) { return s.Bernoulli(0.7, 1000), nil }},
	{name: "binomial", title: "Binomial (n=10, p=0.6)", discrete: true,
		draw: func(s *Source) ([]float64, error) { return s.Binomial(10, 0.6, 4000), nil }},
	{name: "geometric", title: "Geometric (p=0.3)", discrete: true,
		draw: func(s *Source) ([]float64, error) { return s.Geometric(0.3, 4000) }},
	{name: "poisson", title: "Poisson (λ=4)", discrete: true,
		draw: func(s *Source) ([]float64, error) { return s.Poisson(4, 5000), nil }},
	{name: "hypergeometric", title: "Hypergeometric (M=150, K=40, n=20)", discrete: true,
		draw: func(s *Source) ([]float64, error) { return s.Hypergeometric(150, 40, 20, 5000) }},
	{name: "uniform", title: "Uniform U(0,1)", bins: 20,
		draw: func(s *Source) ([]float64, error) { return s.Uniform(0, 1, 5000), nil }},
	{name: "exponential", title: "Exponential (λ=1)", bins: 30,
		draw: func(s *Source) ([]float64, error) { return s.Exponential(1, 5000), nil }},
	{name: "normal", title: "Normal N(0,1)", bins: 30,
		draw: func(s *Source) ([]float64, error) { return s.Normal(0, 1, 5000), nil }},
	{name: "student_t", title: "Student-t (df=10)", bins: 30,
		draw: func(s *Source) ([]float64, error) { return s.StudentsT(10, 5000), nil }},
}

// Catalog lists the reference distributions without drawing any samples.
func Catalog() []ReferenceInfo {
	infos := make([]ReferenceInfo, len(referenceSpecs))
	for i, spec := range referenceSpecs {
		infos[i] = ReferenceInfo{Name: spec.name, Title: spec.title}
	}
	return infos
}

// Reference draws every reference distribution from a single seeded source.
func Reference(seed uint64) ([]ReferenceSample, error) {
	s := New(seed)
	samples := make([]ReferenceSample, len(referenceSpecs))
	for i, spec := range referenceSpecs {
		sample, err := spec.materialize(s)
		if err != nil {
			return nil, err
		}
		samples[i] = sample
	}
	return samples, nil
}

// ReferenceByName draws a single reference distribution from its own seeded
// source, so the result does not depend on the other distributions.
func ReferenceByName(seed uint64, name string) (ReferenceSample, error) {
	for _, spec := range referenceSpecs {
		if spec.name == name {
			return spec.materialize(New(seed))
		}
	}
	return ReferenceSample{}, domain.ErrNotFound("unknown distribution %q", name)
}

func (spec referenceSpec) materialize(s *Source) (ReferenceSample, error) {
	values, err := spec.draw(s)
	if err != nil {
		return ReferenceSample{}, err
	}
	return ReferenceSample{
		Name:     spec.name,
		Title:    spec.title,
		Discrete: spec.discrete,
		Values:   values,
		Bins:     spec.bins,
	}, nil
}
