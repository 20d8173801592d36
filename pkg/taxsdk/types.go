package taxsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Importing taxsdk switches decimal.Decimal JSON encoding to plain numbers
// for the whole process. The record service and the UI both expect amounts
// that way.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// localDateTimeLayouts are the zone-less formats the record service emits.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp is a record-service date-time. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp accepts RFC 3339 or a zone-less local date-time.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("taxsdk: unrecognised timestamp %q", s)
}

// MarshalJSON writes the zone-less form the record service uses, in UTC.
// Fractional seconds are kept, so the instant survives a round trip; the
// original zone offset does not.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(localDateTimeLayouts[0]))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("taxsdk: timestamp: %w", err)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// TaxStatus is the filing state of a tax file.
type TaxStatus string

const (
	TaxStatusPending   TaxStatus = "PENDING"
	TaxStatusCompleted TaxStatus = "COMPLETED"
)

// RefundStatus is the processing state of a refund.
type RefundStatus string

const (
	RefundStatusPending    RefundStatus = "PENDING"
	RefundStatusInProgress RefundStatus = "IN_PROGRESS"
	RefundStatusApproved   RefundStatus = "APPROVED"
	RefundStatusRejected   RefundStatus = "REJECTED"
	RefundStatusError      RefundStatus = "ERROR"
)

// User is a record-service user.
type User struct {
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// DisplayName is first and last name joined by a space.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserList is the GET /user response.
type UserList struct {
	Users      []User `json:"users"`
	TotalUsers int    `json:"totalUsers"`
}

// CreateUserRequest is the POST /user body.
type CreateUserRequest struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TaxFileSummary is one entry of the by-user listing.
type TaxFileSummary struct {
	FileID       string          `json:"fileId"`
	Year         int             `json:"year"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Deducted     decimal.Decimal `json:"deducted"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	TaxStatus    TaxStatus       `json:"taxStatus"`
	RefundStatus RefundStatus    `json:"refundStatus,omitempty"`
	RefundETA    *Timestamp      `json:"refundEta,omitempty"`
	CreatedAt    Timestamp       `json:"createdAt"`
	UpdatedAt    Timestamp       `json:"updatedAt"`
}

// TaxUserFiles is the GET /taxFile/taxUser response.
type TaxUserFiles struct {
	UserID     string           `json:"userId"`
	TaxFiles   []TaxFileSummary `json:"taxFiles"`
	TotalFiles int              `json:"totalFiles"`
}

// ErrorDetail is a coded refund error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TaxFile is the single-file response of GET /taxFile and POST /taxFile.
type TaxFile struct {
	FileID       string          `json:"fileId"`
	UserID       string          `json:"userId"`
	Year         int             `json:"year"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Deducted     decimal.Decimal `json:"deducted"`
	Refund       decimal.Decimal `json:"refund"`
	TaxStatus    TaxStatus       `json:"taxStatus"`
	RefundStatus RefundStatus    `json:"refundStatus,omitempty"`
	RefundErrors []ErrorDetail   `json:"refundErrors,omitempty"`
	RefundETA    *Timestamp      `json:"refundEta,omitempty"`
	CreatedAt    Timestamp       `json:"createdAt"`
	UpdatedAt    Timestamp       `json:"updatedAt"`
}

// Summary projects a single-file response onto the by-user summary shape.
func (f TaxFile) Summary() TaxFileSummary {
	return TaxFileSummary{
		FileID:       f.FileID,
		Year:         f.Year,
		Income:       f.Income,
		Expense:      f.Expense,
		TaxRate:      f.TaxRate,
		Deducted:     f.Deducted,
		RefundAmount: f.Refund,
		TaxStatus:    f.TaxStatus,
		RefundStatus: f.RefundStatus,
		RefundETA:    f.RefundETA,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// CreateTaxFileRequest is the POST /taxFile body.
type CreateTaxFileRequest struct {
	UserID   string          `json:"userId"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	TaxRate  decimal.Decimal `json:"taxRate"`
	Deducted decimal.Decimal `json:"deducted"`
	Refund   decimal.Decimal `json:"refund"`
}

// Refund is the GET /refund response.
type Refund struct {
	FileID       string        `json:"fileId"`
	UserID       string        `json:"userId"`
	Year         int           `json:"year"`
	RefundStatus RefundStatus  `json:"refundStatus"`
	Errors       []ErrorDetail `json:"errors,omitempty"`
	ETA          *Timestamp    `json:"eta,omitempty"`
}

// RefundQuery selects a refund by file id, or by user and year.
type RefundQuery struct {
	FileID string
	UserID string
	Year   int
}

// RefundEventType names a refund lifecycle transition.
type RefundEventType string

const (
	RefundEventInProgress RefundEventType = "refund.inprogress"
	RefundEventApproved   RefundEventType = "refund.approved"
	RefundEventRejected   RefundEventType = "refund.rejected"
	RefundEventError      RefundEventType = "refund.error"
)

// Valid reports whether t is a known event type.
func (t RefundEventType) Valid() bool {
	switch t {
	case RefundEventInProgress, RefundEventApproved, RefundEventRejected, RefundEventError:
		return true
	}
	return false
}

// RefundEventData carries the event's payload.
type RefundEventData struct {
	EventDate    *Timestamp    `json:"eventDate,omitempty"`
	ErrorReasons []ErrorDetail `json:"errorReasons,omitempty"`
}

// RefundEvent is the POST /processRefundEvent body.
type RefundEvent struct {
	EventID string          `json:"eventId"`
	FileID  string          `json:"fileId"`
	Type    RefundEventType `json:"type"`
	Data    RefundEventData `json:"data"`
}
