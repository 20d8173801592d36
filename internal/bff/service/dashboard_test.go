package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var alice = taxsdk.User{UserID: "user-alice", FirstName: "Alice", LastName: "Nguyen"}

func summary(year int) taxsdk.TaxFileSummary {
	return taxsdk.TaxFileSummary{
		FileID:       "file-" + strconv.Itoa(year),
		Year:         year,
		RefundAmount: decimal.NewFromInt(100),
		TaxStatus:    taxsdk.TaxStatusCompleted,
	}
}

func newDashboardService(up *fakeUpstream, defaults ...int) *DashboardService {
	return &DashboardService{
		Users:        &UserService{Upstream: up},
		Upstream:     up,
		DefaultYears: func() []int { return defaults },
	}
}

func TestDashboardBulkPath(t *testing.T) {
	t.Parallel()

	t.Run("files across years", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{
			getUser: knownUser(alice),
			listTaxFilesByUser: func(string) (*taxsdk.TaxUserFiles, error) {
				return &taxsdk.TaxUserFiles{
					UserID:   alice.UserID,
					TaxFiles: []taxsdk.TaxFileSummary{summary(2022), summary(2024), summary(2023), summary(2024)},
				}, nil
			},
		}

		dash, err := newDashboardService(up, 2024).GetDashboard(context.Background(), DashboardRequest{UserID: alice.UserID})
		require.NoError(t, err)
		require.Equal(t, domain.SourceBulk, dash.Source)
		require.Equal(t, "Alice Nguyen", dash.Username)
		require.Equal(t, []int{2024, 2023, 2022}, dash.TaxYears)
		require.Len(t, dash.TaxFileDetails, 4)
		require.Nil(t, dash.YearResults)
		require.Zero(t, up.count("GetTaxFile"))
	})

	t.Run("empty listing is still authoritative", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{
			getUser: knownUser(alice),
			listTaxFilesByUser: func(string) (*taxsdk.TaxUserFiles, error) {
				return &taxsdk.TaxUserFiles{UserID: alice.UserID, TaxFiles: []taxsdk.TaxFileSummary{}}, nil
			},
		}

		dash, err := newDashboardService(up, 2024, 2023).GetDashboard(context.Background(), DashboardRequest{UserID: alice.UserID})
		require.NoError(t, err)
		require.Equal(t, domain.SourceBulk, dash.Source)
		require.Empty(t, dash.TaxYears)
		require.Empty(t, dash.TaxFileDetails)
		require.Zero(t, up.count("GetTaxFile"))
	})
}

func TestDashboardPerYearFallback(t *testing.T) {
	t.Parallel()

	t.Run("partial failures become placeholders", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{
			getUser: knownUser(alice),
			getTaxFile: func(_ string, year int) (*taxsdk.TaxFile, error) {
				if year == 2023 {
					return nil, errServer
				}
				return &taxsdk.TaxFile{FileID: "f", UserID: alice.UserID, Year: year, Refund: decimal.NewFromInt(7)}, nil
			},
		}

		dash, err := newDashboardService(up).GetDashboard(context.Background(), DashboardRequest{
			UserID: alice.UserID,
			Years:  []int{2022, 2024, 2023},
		})
		require.NoError(t, err)
		require.Equal(t, domain.SourcePerYear, dash.Source)
		require.Equal(t, []int{2024, 2022}, dash.TaxYears)
		require.Len(t, dash.TaxFileDetails, 2)
		require.True(t, dash.TaxFileDetails[0].RefundAmount.Equal(decimal.NewFromInt(7)))

		got := make([]int, 0, len(dash.YearResults))
		for _, r := range dash.YearResults {
			got = append(got, r.Year)
		}
		require.Equal(t, []int{2024, 2023, 2022}, got)

		failed := dash.YearResults[1]
		require.Nil(t, failed.File)
		require.Equal(t, &domain.YearError{Code: "API_ERROR", Message: "Failed to fetch tax file data"}, failed.Error)
	})

	t.Run("every year is attempted even when all fail", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{getUser: knownUser(alice)}

		dash, err := newDashboardService(up, 2021, 2020, 2021).GetDashboard(context.Background(), DashboardRequest{UserID: alice.UserID})
		require.NoError(t, err)
		require.Equal(t, 2, up.count("GetTaxFile"))
		require.Empty(t, dash.TaxYears)
		require.Empty(t, dash.TaxFileDetails)
		require.Len(t, dash.YearResults, 2)
		for _, r := range dash.YearResults {
			require.NotNil(t, r.Error)
		}

		requested := up.requestedYears()
		require.ElementsMatch(t, []int{2021, 2020}, requested)
	})
}

func TestDashboardUserErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  string
		getUser func(string) (*taxsdk.User, error)
		wantErr error
	}{
		{name: "blank id", userID: "  ", wantErr: ErrValidation},
		{name: "unknown user", userID: "user-x", getUser: knownUser(alice), wantErr: ErrUserNotFound},
		{name: "bad request means not found", userID: "user-x", getUser: func(string) (*taxsdk.User, error) {
			return nil, &taxsdk.APIError{StatusCode: http.StatusBadRequest, Message: "bad id"}
		}, wantErr: ErrUserNotFound},
		{name: "server error", userID: "user-x", wantErr: ErrUpstream},
		{name: "transport failure", userID: "user-x", getUser: func(string) (*taxsdk.User, error) {
			return nil, &taxsdk.TransportError{Op: "GET /user/user-x", Err: errors.New("connection refused")}
		}, wantErr: ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			up := &fakeUpstream{getUser: tt.getUser}
			_, err := newDashboardService(up).GetDashboard(context.Background(), DashboardRequest{UserID: tt.userID})
			require.ErrorIs(t, err, tt.wantErr)
			require.Zero(t, up.count("ListTaxFilesByUser"))
		})
	}
}

func TestCandidateYears(t *testing.T) {
	t.Parallel()

	s := &DashboardService{DefaultYears: func() []int { return []int{2019, 2021, 2020} }}

	if diff := cmp.Diff([]int{2024, 2023, 2022}, s.candidateYears([]int{2022, 2024, 2023, 2024})); diff != "" {
		t.Fatalf("requested years (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2021, 2020, 2019}, s.candidateYears(nil)); diff != "" {
		t.Fatalf("default years (-want +got):\n%s", diff)
	}
}

func yearsOf(results []domain.YearResult) []int {
	years := make([]int, 0, len(results))
	for _, r := range results {
		years = append(years, r.Year)
	}
	return years
}

func TestDashboardDefaultYearsAreNotMutated(t *testing.T) {
	t.Parallel()

	shared := []int{2023, 2023, 2024}
	up := &fakeUpstream{getUser: knownUser(alice)}
	svc := &DashboardService{
		Users:        &UserService{Upstream: up},
		Upstream:     up,
		DefaultYears: func() []int { return shared },
	}

	t.Run("repeated requests", func(t *testing.T) {
		for range 2 {
			dash, err := svc.GetDashboard(context.Background(), DashboardRequest{UserID: alice.UserID})
			require.NoError(t, err)
			require.Equal(t, []int{2024, 2023}, yearsOf(dash.YearResults))
			require.Equal(t, []int{2023, 2023, 2024}, shared)
		}
	})

	t.Run("concurrent requests", func(t *testing.T) {
		for i := range 8 {
			t.Run(strconv.Itoa(i), func(t *testing.T) {
				t.Parallel()

				dash, err := svc.GetDashboard(context.Background(), DashboardRequest{UserID: alice.UserID})
				require.NoError(t, err)
				require.Equal(t, []int{2024, 2023}, yearsOf(dash.YearResults))
			})
		}
	})

	require.Equal(t, []int{2023, 2023, 2024}, shared)
}

func TestDashboardFetchesYearsConcurrently(t *testing.T) {
	t.Parallel()

	file := func(year int) *taxsdk.TaxFile {
		return &taxsdk.TaxFile{FileID: "f", UserID: alice.UserID, Year: year}
	}

	t.Run("all calls are in flight together", func(t *testing.T) {
		t.Parallel()

		years := []int{2024, 2023, 2022, 2021}

		var arrived sync.WaitGroup
		arrived.Add(len(years))
		allIn := make(chan struct{})
		go func() {
			arrived.Wait()
			close(allIn)
		}()

		up := &fakeUpstream{
			getUser: knownUser(alice),
			getTaxFileCtx: func(_ context.Context, _ string, year int) (*taxsdk.TaxFile, error) {
				arrived.Done()
				select {
				case <-allIn:
					return file(year), nil
				case <-time.After(2 * time.Second):
					return nil, errors.New("calls were not concurrent")
				}
			},
		}

		dash, err := newDashboardService(up).GetDashboard(context.Background(), DashboardRequest{
			UserID: alice.UserID,
			Years:  years,
		})
		require.NoError(t, err)
		require.Equal(t, years, dash.TaxYears)
		for _, r := range dash.YearResults {
			require.Nil(t, r.Error, "year %d", r.Year)
		}
	})

	t.Run("a hung year does not hold back the others", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{
			getUser: knownUser(alice),
			getTaxFileCtx: func(ctx context.Context, _ string, year int) (*taxsdk.TaxFile, error) {
				if year == 2023 {
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return file(year), nil
			},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		dash, err := newDashboardService(up).GetDashboard(ctx, DashboardRequest{
			UserID: alice.UserID,
			Years:  []int{2024, 2023, 2022},
		})
		require.NoError(t, err)
		require.Less(t, time.Since(start), 2*time.Second)

		require.Equal(t, []int{2024, 2022}, dash.TaxYears)
		require.Equal(t, []int{2024, 2023, 2022}, yearsOf(dash.YearResults))
		require.NotNil(t, dash.YearResults[1].Error)
		require.NotNil(t, dash.YearResults[0].File)
		require.NotNil(t, dash.YearResults[2].File)
	})
}

func TestRecentYears(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, []int{2024, 2023, 2022}, RecentYears(3, now))
	require.Empty(t, RecentYears(0, now))
}
