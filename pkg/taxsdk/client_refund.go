package taxsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// ErrInvalidRefundQuery is returned when neither a file id nor a user and
// year were given.
var ErrInvalidRefundQuery = errors.New("taxsdk: either fileId or both userId and year are required")

// GetRefund looks a refund up by file id, or by user and year when no file id
// is set.
func (c *Client) GetRefund(ctx context.Context, query RefundQuery) (*Refund, error) {
	q := url.Values{}
	switch {
	case query.FileID != "":
		q.Set("fileId", query.FileID)
	case query.UserID != "" && query.Year != 0:
		q.Set("userId", query.UserID)
		q.Set("year", strconv.Itoa(query.Year))
	default:
		return nil, ErrInvalidRefundQuery
	}

	var refund Refund
	if err := c.do(ctx, http.MethodGet, "/refund", q, nil, &refund, http.StatusOK); err != nil {
		return nil, err
	}
	return &refund, nil
}

// ProcessRefundEvent forwards a refund lifecycle event. The service accepts
// it asynchronously and answers 202 with no body.
func (c *Client) ProcessRefundEvent(ctx context.Context, event RefundEvent) error {
	return c.do(ctx, http.MethodPost, "/processRefundEvent", nil, event, nil, http.StatusAccepted)
}
