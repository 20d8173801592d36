package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/google/uuid"
)

const (
	MsgRefundQueryRequired = "Either fileId or both userId and year are required"
	MsgYearNotNumber       = "year must be a valid number"
	MsgEventFieldsRequired = "fileId and type are required"
	MsgEventTypeUnknown    = "type must be one of refund.inprogress, refund.approved, refund.rejected, refund.error"
)

// ParseRefundQuery builds a refund lookup from raw query parameters. A file
// id wins over user and year, but a malformed year is rejected either way.
func ParseRefundQuery(fileID, userID, year string) (taxsdk.RefundQuery, error) {
	fileID = strings.TrimSpace(fileID)
	userID = strings.TrimSpace(userID)
	year = strings.TrimSpace(year)

	if fileID == "" && (userID == "" || year == "") {
		return taxsdk.RefundQuery{}, invalid(MsgRefundQueryRequired)
	}

	q := taxsdk.RefundQuery{FileID: fileID, UserID: userID}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			return taxsdk.RefundQuery{}, invalid(MsgYearNotNumber)
		}
		q.Year = n
	}
	return q, nil
}

// RefundService proxies refund lookups and lifecycle events.
type RefundService struct {
	Upstream RecordService

	// NewEventID generates ids for events submitted without one.
	// Defaults to a random UUID.
	NewEventID func() string
}

// Get looks a refund up. An upstream 404 is ErrNotFound.
func (s *RefundService) Get(ctx context.Context, q taxsdk.RefundQuery) (*taxsdk.Refund, error) {
	refund, err := s.Upstream.GetRefund(ctx, q)
	if err != nil {
		if taxsdk.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, upstreamError(err)
	}
	return refund, nil
}

// ProcessEvent validates and forwards a refund event, returning its id.
func (s *RefundService) ProcessEvent(ctx context.Context, event taxsdk.RefundEvent) (string, error) {
	event.FileID = strings.TrimSpace(event.FileID)
	if event.FileID == "" || event.Type == "" {
		return "", invalid(MsgEventFieldsRequired)
	}
	if !event.Type.Valid() {
		return "", invalid(MsgEventTypeUnknown)
	}

	if event.EventID == "" {
		newID := s.NewEventID
		if newID == nil {
			newID = uuid.NewString
		}
		event.EventID = newID()
	}

	if err := s.Upstream.ProcessRefundEvent(ctx, event); err != nil {
		if taxsdk.IsNotFound(err) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", upstreamError(err)
	}

	slogx.FromContext(ctx).Info("refund event forwarded",
		"event_id", event.EventID, "file_id", event.FileID, "type", event.Type)
	return event.EventID, nil
}
