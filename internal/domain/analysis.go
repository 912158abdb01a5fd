package domain

import "time"

// GroupStats holds the descriptive statistics of pass rates within one
// infrastructure group, in the shape of a pandas describe() row plus mode
// and skewness.
type GroupStats struct {
	Group    string  `json:"group"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"` // sample variance (n-1)
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Mode     float64 `json:"mode"`
	Skewness float64 `json:"skewness"`
}

// DatasetSummary pairs a dataset with its per-group descriptive statistics.
type DatasetSummary struct {
	Dataset *Dataset     `json:"dataset"`
	Groups  []GroupStats `json:"groups"`
}

// TTestResult is the outcome of a Welch two-sample t-test comparing mean
// pass rates between the with-tech and without-tech groups.
type TTestResult struct {
	Alpha       float64 `json:"alpha"`
	TStatistic  float64 `json:"t_statistic"`
	DegreesFree float64 `json:"degrees_of_freedom"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
	NWithTech   int     `json:"n_with_tech"`
	NWithout    int     `json:"n_without_tech"`
	MeanWith    float64 `json:"mean_with_tech"`
	MeanWithout float64 `json:"mean_without_tech"`
}

// Decision renders the significance verdict the way the study reports it.
func (r TTestResult) Decision() string {
	if r.Significant {
		return "significant difference between the groups"
	}
	return "no significant difference at the chosen level"
}

// AnalysisRun is a persisted record of one hypothesis-test execution.
type AnalysisRun struct {
	ID          string    `json:"id"`
	DatasetName string    `json:"dataset_name"`
	Alpha       float64   `json:"alpha"`
	TStatistic  float64   `json:"t_statistic"`
	DegreesFree float64   `json:"degrees_of_freedom"`
	PValue      float64   `json:"p_value"`
	Significant bool      `json:"significant"`
	NWithTech   int64     `json:"n_with_tech"`
	NWithout    int64     `json:"n_without_tech"`
	CreatedAt   time.Time `json:"created_at"`
}
