package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/stretchr/testify/require"
)

func TestParseRefundQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		fileID, userID, year string
		want                 taxsdk.RefundQuery
		wantMsg              string
	}{
		{name: "file id", fileID: "file-1", want: taxsdk.RefundQuery{FileID: "file-1"}},
		{name: "user and year", userID: "user-1", year: "2024", want: taxsdk.RefundQuery{UserID: "user-1", Year: 2024}},
		{name: "file id keeps valid year", fileID: "file-1", year: "2024", want: taxsdk.RefundQuery{FileID: "file-1", Year: 2024}},
		{name: "nothing", wantMsg: MsgRefundQueryRequired},
		{name: "user without year", userID: "user-1", wantMsg: MsgRefundQueryRequired},
		{name: "year without user", year: "2024", wantMsg: MsgRefundQueryRequired},
		{name: "bad year", userID: "user-1", year: "twenty", wantMsg: MsgYearNotNumber},
		{name: "bad year with file id", fileID: "file-1", year: "abc", wantMsg: MsgYearNotNumber},
		{name: "year with trailing garbage", userID: "user-1", year: "2023abc", wantMsg: MsgYearNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRefundQuery(tt.fileID, tt.userID, tt.year)
			if tt.wantMsg != "" {
				msg, ok := ValidationMessage(err)
				require.True(t, ok)
				require.Equal(t, tt.wantMsg, msg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRefundGet(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{
		getRefund: func(q taxsdk.RefundQuery) (*taxsdk.Refund, error) {
			if q.FileID == "file-1" {
				return &taxsdk.Refund{FileID: "file-1", RefundStatus: taxsdk.RefundStatusApproved}, nil
			}
			return nil, &taxsdk.APIError{StatusCode: http.StatusNotFound, Message: "Refund not found"}
		},
	}
	svc := &RefundService{Upstream: up}

	refund, err := svc.Get(context.Background(), taxsdk.RefundQuery{FileID: "file-1"})
	require.NoError(t, err)
	require.Equal(t, taxsdk.RefundStatusApproved, refund.RefundStatus)

	_, err = svc.Get(context.Background(), taxsdk.RefundQuery{FileID: "file-2"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = (&RefundService{Upstream: &fakeUpstream{}}).Get(context.Background(), taxsdk.RefundQuery{FileID: "file-1"})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestRefundProcessEvent(t *testing.T) {
	t.Parallel()

	t.Run("assigns an event id", func(t *testing.T) {
		t.Parallel()

		var got taxsdk.RefundEvent
		up := &fakeUpstream{processRefundEvent: func(e taxsdk.RefundEvent) error { got = e; return nil }}
		svc := &RefundService{Upstream: up, NewEventID: func() string { return "evt-1" }}

		id, err := svc.ProcessEvent(context.Background(), taxsdk.RefundEvent{FileID: " file-1 ", Type: taxsdk.RefundEventApproved})
		require.NoError(t, err)
		require.Equal(t, "evt-1", id)
		require.Equal(t, "file-1", got.FileID)
	})

	t.Run("keeps a caller event id", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{processRefundEvent: func(taxsdk.RefundEvent) error { return nil }}
		id, err := (&RefundService{Upstream: up}).ProcessEvent(context.Background(),
			taxsdk.RefundEvent{EventID: "mine", FileID: "file-1", Type: taxsdk.RefundEventError})
		require.NoError(t, err)
		require.Equal(t, "mine", id)
	})

	t.Run("default ids are uuids", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{processRefundEvent: func(taxsdk.RefundEvent) error { return nil }}
		id, err := (&RefundService{Upstream: up}).ProcessEvent(context.Background(),
			taxsdk.RefundEvent{FileID: "file-1", Type: taxsdk.RefundEventInProgress})
		require.NoError(t, err)
		require.Len(t, id, 36)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{}
		svc := &RefundService{Upstream: up}

		_, err := svc.ProcessEvent(context.Background(), taxsdk.RefundEvent{Type: taxsdk.RefundEventApproved})
		msg, _ := ValidationMessage(err)
		require.Equal(t, MsgEventFieldsRequired, msg)

		_, err = svc.ProcessEvent(context.Background(), taxsdk.RefundEvent{FileID: "file-1", Type: "refund.lost"})
		msg, _ = ValidationMessage(err)
		require.Equal(t, MsgEventTypeUnknown, msg)

		require.Zero(t, up.count("ProcessRefundEvent"))
	})

	t.Run("unknown file", func(t *testing.T) {
		t.Parallel()

		up := &fakeUpstream{processRefundEvent: func(taxsdk.RefundEvent) error {
			return &taxsdk.APIError{StatusCode: http.StatusNotFound, Message: "Tax file not found"}
		}}
		_, err := (&RefundService{Upstream: up}).ProcessEvent(context.Background(),
			taxsdk.RefundEvent{FileID: "file-9", Type: taxsdk.RefundEventRejected})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
