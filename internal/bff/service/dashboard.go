package service

import (
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"golang.org/x/sync/errgroup"
)

const yearFetchFailedMessage = "Failed to fetch tax file data"

// DashboardRequest asks for one user's dashboard. Years, when set, are the
// candidate years for the per-year fallback.
type DashboardRequest struct {
	UserID string
	Years  []int
}

// DashboardService assembles the per-user tax history view.
type DashboardService struct {
	Users    UserResolver
	Upstream RecordService

	// DefaultYears returns the fallback candidate years when the request
	// carries none.
	DefaultYears func() []int
}

// GetDashboard resolves the user, then lists their tax files in one bulk
// call. If that call fails for any reason it falls back to fetching each
// candidate year separately. Per-year failures never fail the dashboard.
func (s *DashboardService) GetDashboard(ctx context.Context, req DashboardRequest) (domain.Dashboard, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Users.Resolve(ctx, req.UserID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	dash := domain.Dashboard{
		UserID:   user.UserID,
		Username: user.DisplayName(),
	}

	files, err := s.Upstream.ListTaxFilesByUser(ctx, user.UserID)
	if err == nil {
		dash.TaxFileDetails = files.TaxFiles
		dash.TaxYears = domain.DistinctYearsDesc(files.TaxFiles)
		dash.Source = domain.SourceBulk
		return dash, nil
	}

	years := s.candidateYears(req.Years)
	log.Warn("bulk tax file listing failed, falling back to per-year",
		"user_id", user.UserID, "years", years, "error", err)

	results := s.fetchYears(ctx, user.UserID, years)

	dash.TaxFileDetails = make([]taxsdk.TaxFileSummary, 0, len(results))
	for _, r := range results {
		if r.File != nil {
			dash.TaxFileDetails = append(dash.TaxFileDetails, *r.File)
		}
	}
	dash.TaxYears = domain.DistinctYearsDesc(dash.TaxFileDetails)
	dash.YearResults = results
	dash.Source = domain.SourcePerYear
	return dash, nil
}

// candidateYears returns the distinct candidate years, most recent first.
// It always works on a copy; DefaultYears may hand out shared config.
func (s *DashboardService) candidateYears(requested []int) []int {
	years := slices.Clone(requested)
	if len(years) == 0 && s.DefaultYears != nil {
		years = slices.Clone(s.DefaultYears())
	}
	slices.Sort(years)
	years = slices.Compact(years)
	slices.Reverse(years)
	return years
}

// fetchYears fetches every year concurrently and waits for all of them.
// Tasks never return an error, so one failure cannot cancel the others.
func (s *DashboardService) fetchYears(ctx context.Context, userID string, years []int) []domain.YearResult {
	log := slogx.FromContext(ctx)
	results := make([]domain.YearResult, len(years))

	var g errgroup.Group
	for i, year := range years {
		g.Go(func() error {
			results[i] = domain.YearResult{Year: year}

			file, err := s.Upstream.GetTaxFile(ctx, userID, year)
			if err != nil {
				log.Warn("tax file fetch failed", "user_id", userID, "year", year, "error", err)
				results[i].Error = &domain.YearError{
					Code:    domain.YearErrorCode,
					Message: yearFetchFailedMessage,
				}
				return nil
			}

			summary := file.Summary()
			results[i].File = &summary
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// RecentYears returns the n calendar years before now's year, most recent
// first. It is the usual DefaultYears policy.
func RecentYears(n int, now time.Time) []int {
	years := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		years = append(years, now.Year()-i)
	}
	return years
}
