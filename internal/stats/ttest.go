package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rudidomingues/censotec/internal/domain"
)

// WelchTTest runs a two-sided Welch t-test (unequal variances) comparing the
// mean pass rate of the with-tech group against the without-tech group.
//
// Preconditions: each group needs at least two observations and the combined
// variance must be nonzero; violations return a ValidationError.
func WelchTTest(withTech, withoutTech []float64, alpha float64) (*domain.TTestResult, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, domain.ErrValidation("alpha must be in (0,1), got %v", alpha)
	}
	if len(withTech) < 2 {
		return nil, domain.ErrValidation("with-tech group too small for t-test: %d observations (need 2)", len(withTech))
	}
	if len(withoutTech) < 2 {
		return nil, domain.ErrValidation("without-tech group too small for t-test: %d observations (need 2)", len(withoutTech))
	}

	n1 := float64(len(withTech))
	n2 := float64(len(withoutTech))
	mean1 := stat.Mean(withTech, nil)
	mean2 := stat.Mean(withoutTech, nil)
	var1 := stat.Variance(withTech, nil)
	var2 := stat.Variance(withoutTech, nil)

	se1 := var1 / n1
	se2 := var2 / n2
	if se1+se2 == 0 {
		return nil, domain.ErrValidation("both groups have zero variance, t statistic is undefined")
	}

	t := (mean1 - mean2) / math.Sqrt(se1+se2)

	// Welch–Satterthwaite degrees of freedom.
	df := (se1 + se2) * (se1 + se2) /
		(se1*se1/(n1-1) + se2*se2/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return &domain.TTestResult{
		Alpha:       alpha,
		TStatistic:  t,
		DegreesFree: df,
		PValue:      p,
		Significant: p < alpha,
		NWithTech:   len(withTech),
		NWithout:    len(withoutTech),
		MeanWith:    mean1,
		MeanWithout: mean2,
	}, nil
}
