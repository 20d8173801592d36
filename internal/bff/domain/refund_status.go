package domain

import (
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/shopspring/decimal"
)

// RefundStatusNoRefund marks a user whose tax files could not be listed.
// It only exists in the BFF's refund-status view.
const RefundStatusNoRefund taxsdk.RefundStatus = "NO_REFUND"

// UserRefundStatus is one row of the refund-status overview.
type UserRefundStatus struct {
	UserID       string              `json:"userId"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	RefundStatus taxsdk.RefundStatus `json:"refundStatus"`
	RefundAmount *decimal.Decimal    `json:"refundAmount,omitempty"`
	TaxStatus    taxsdk.TaxStatus    `json:"taxStatus,omitempty"`
	LastUpdated  *taxsdk.Timestamp   `json:"lastUpdated,omitempty"`
}

// RefundStatusList is the refund-status overview response.
type RefundStatusList struct {
	Users      []UserRefundStatus `json:"users"`
	TotalUsers int                `json:"totalUsers"`
}
