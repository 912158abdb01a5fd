// Package synth generates the synthetic school census dataset the study is
// run against: schools with and without technology infrastructure, with
// pass rates drawn from two normal distributions.
package synth

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/sampler"
)

// Options controls synthetic dataset generation.
type Options struct {
	N             int     // number of schools (default 500)
	Seed          uint64  // sampler seed (default 42)
	WithTechShare float64 // fraction of schools with infrastructure (default 0.55)
	MeanWithTech  float64 // mean pass rate, with-tech group (default 0.85)
	MeanWithout   float64 // mean pass rate, without-tech group (default 0.72)
	StdDev        float64 // pass-rate standard deviation, both groups (default 0.07)
}

func (o *Options) applyDefaults() {
	if o.N == 0 {
		o.N = 500
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.WithTechShare == 0 {
		o.WithTechShare = 0.55
	}
	if o.MeanWithTech == 0 {
		o.MeanWithTech = 0.85
	}
	if o.MeanWithout == 0 {
		o.MeanWithout = 0.72
	}
	if o.StdDev == 0 {
		o.StdDev = 0.07
	}
}

func (o *Options) validate() error {
	if o.N < 4 {
		return domain.ErrValidation("synthetic dataset needs at least 4 schools, got %d", o.N)
	}
	if o.WithTechShare <= 0 || o.WithTechShare >= 1 {
		return domain.ErrValidation("with-tech share must be in (0,1), got %v", o.WithTechShare)
	}
	return nil
}

// Generate writes a synthetic census CSV to path using the default column
// layout (the one DefaultColumnMapping reads back).
func Generate(path string, opts Options) error {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	header := []string{
		"CO_ENTIDADE",
		"IN_LABORATORIO_INFORMATICA",
		"IN_INTERNET",
		"IN_EQUIP_ALUNO",
		"TEM_ESTRUTURA_TEC",
		"taxa_aprovacao",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	src := sampler.New(opts.Seed)
	nWith := int(float64(opts.N) * opts.WithTechShare)

	for i := 0; i < opts.N; i++ {
		hasTech := i < nWith

		var lab, internet, devices int
		mean := opts.MeanWithout
		if hasTech {
			mean = opts.MeanWithTech
			lab = bernoulliInt(src, 0.8)
			internet = bernoulliInt(src, 0.9)
			devices = bernoulliInt(src, 0.6)
			if lab+internet+devices == 0 {
				internet = 1 // with-tech schools have at least one indicator
			}
		}

		rate := clamp01(src.Normal(mean, opts.StdDev, 1)[0])

		record := []string{
			strconv.Itoa(11000000 + i), // INEP-style school code
			strconv.Itoa(lab),
			strconv.Itoa(internet),
			strconv.Itoa(devices),
			boolTo01(hasTech),
			strconv.FormatFloat(rate, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func bernoulliInt(s *sampler.Source, p float64) int {
	return int(s.Bernoulli(p, 1)[0])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func boolTo01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
