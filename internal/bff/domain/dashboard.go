package domain

import (
	"slices"

	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

// Source records which retrieval path produced a dashboard.
type Source string

const (
	SourceBulk    Source = "bulk"
	SourcePerYear Source = "per_year"
)

// YearErrorCode is the code attached to a per-year placeholder.
const YearErrorCode = "API_ERROR"

// YearError explains why a year has no file.
type YearError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// YearResult is the outcome of fetching one year on the per-year path.
// Exactly one of File and Error is set.
type YearResult struct {
	Year  int                    `json:"year"`
	File  *taxsdk.TaxFileSummary `json:"file"`
	Error *YearError             `json:"error"`
}

// Dashboard is the per-user view the UI renders. It is rebuilt on every
// request.
type Dashboard struct {
	UserID         string                  `json:"userId"`
	Username       string                  `json:"username"`
	TaxYears       []int                   `json:"taxYears"`
	TaxFileDetails []taxsdk.TaxFileSummary `json:"taxFileDetails"`
	YearResults    []YearResult            `json:"yearResults,omitempty"`
	Source         Source                  `json:"source"`
}

// DistinctYearsDesc returns the distinct years present in files, most recent
// first.
func DistinctYearsDesc(files []taxsdk.TaxFileSummary) []int {
	years := make([]int, 0, len(files))
	for _, f := range files {
		years = append(years, f.Year)
	}
	slices.Sort(years)
	years = slices.Compact(years)
	slices.Reverse(years)
	return years
}
