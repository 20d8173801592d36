package service

import (
	"context"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"golang.org/x/sync/errgroup"
)

// DefaultFanOutLimit bounds concurrent per-user calls.
const DefaultFanOutLimit = 8

// RefundStatusService builds the refund-status overview across all users.
type RefundStatusService struct {
	Upstream RecordService

	// Limit bounds concurrent per-user calls. Zero means DefaultFanOutLimit.
	Limit int
}

// List fetches all users then, concurrently, each user's latest refund
// status. Only the initial user listing can fail the call; per-user
// failures become NO_REFUND or ERROR rows. Rows keep upstream user order.
func (s *RefundStatusService) List(ctx context.Context) (domain.RefundStatusList, error) {
	users, err := s.Upstream.ListUsers(ctx)
	if err != nil {
		return domain.RefundStatusList{}, upstreamError(err)
	}

	limit := s.Limit
	if limit <= 0 {
		limit = DefaultFanOutLimit
	}

	rows := make([]domain.UserRefundStatus, len(users.Users))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, user := range users.Users {
		g.Go(func() error {
			rows[i] = s.statusFor(ctx, user)
			return nil
		})
	}
	_ = g.Wait()

	return domain.RefundStatusList{Users: rows, TotalUsers: len(rows)}, nil
}

func (s *RefundStatusService) statusFor(ctx context.Context, user taxsdk.User) domain.UserRefundStatus {
	row := domain.UserRefundStatus{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	files, err := s.Upstream.ListTaxFilesByUser(ctx, user.UserID)
	if err != nil {
		if _, ok := taxsdk.AsAPIError(err); ok {
			row.RefundStatus = domain.RefundStatusNoRefund
			return row
		}
		slogx.FromContext(ctx).Warn("refund status lookup failed", "user_id", user.UserID, "error", err)
		row.RefundStatus = taxsdk.RefundStatusError
		return row
	}

	latest, ok := latestByCreated(files.TaxFiles)
	if !ok {
		row.RefundStatus = domain.RefundStatusNoRefund
		return row
	}

	row.RefundStatus = latest.RefundStatus
	if row.RefundStatus == "" {
		row.RefundStatus = taxsdk.RefundStatusPending
	}
	amount := latest.RefundAmount
	row.RefundAmount = &amount
	row.TaxStatus = latest.TaxStatus
	updated := latest.UpdatedAt
	row.LastUpdated = &updated
	return row
}

// latestByCreated returns the most recently created file. Ties keep the
// earlier entry.
func latestByCreated(files []taxsdk.TaxFileSummary) (taxsdk.TaxFileSummary, bool) {
	if len(files) == 0 {
		return taxsdk.TaxFileSummary{}, false
	}
	latest := files[0]
	for _, f := range files[1:] {
		if f.CreatedAt.After(latest.CreatedAt.Time) {
			latest = f
		}
	}
	return latest, true
}
