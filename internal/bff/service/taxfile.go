package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/shopspring/decimal"
)

const (
	MsgAllFieldsRequired = "All fields are required"
	MsgInvalidNumbers    = "Invalid numeric values. Tax rate should be between 0 and 1 (0-100%)"
)

// TaxFileInput is a tax file creation request as received from the UI.
// Numeric fields are nullable so an omitted field can be told apart from 0.
type TaxFileInput struct {
	UserID   string              `json:"userId"`
	Year     int                 `json:"year"`
	Income   decimal.NullDecimal `json:"income"`
	Expense  decimal.NullDecimal `json:"expense"`
	TaxRate  decimal.NullDecimal `json:"taxRate"`
	Deducted decimal.NullDecimal `json:"deducted"`
	Refund   decimal.NullDecimal `json:"refund"`
}

// Validate checks presence and ranges and returns the upstream request.
func (in TaxFileInput) Validate() (taxsdk.CreateTaxFileRequest, error) {
	if strings.TrimSpace(in.UserID) == "" || in.Year == 0 ||
		!in.Income.Valid || !in.Expense.Valid || !in.TaxRate.Valid ||
		!in.Deducted.Valid || !in.Refund.Valid {
		return taxsdk.CreateTaxFileRequest{}, invalid(MsgAllFieldsRequired)
	}

	one := decimal.NewFromInt(1)
	if in.Income.Decimal.IsNegative() || in.Expense.Decimal.IsNegative() ||
		in.TaxRate.Decimal.IsNegative() || in.TaxRate.Decimal.GreaterThan(one) ||
		in.Deducted.Decimal.IsNegative() || in.Refund.Decimal.IsNegative() {
		return taxsdk.CreateTaxFileRequest{}, invalid(MsgInvalidNumbers)
	}

	return taxsdk.CreateTaxFileRequest{
		UserID:   in.UserID,
		Year:     in.Year,
		Income:   in.Income.Decimal,
		Expense:  in.Expense.Decimal,
		TaxRate:  in.TaxRate.Decimal,
		Deducted: in.Deducted.Decimal,
		Refund:   in.Refund.Decimal,
	}, nil
}

// TaxFileService validates and forwards tax file creation.
type TaxFileService struct {
	Upstream RecordService
}

// Create validates in and, only if it is valid, forwards it unchanged.
func (s *TaxFileService) Create(ctx context.Context, in TaxFileInput) (*taxsdk.TaxFile, error) {
	req, err := in.Validate()
	if err != nil {
		return nil, err
	}

	file, err := s.Upstream.CreateTaxFile(ctx, req)
	if err != nil {
		return nil, upstreamError(err)
	}

	slogx.FromContext(ctx).Info("tax file created",
		"user_id", req.UserID, "year", req.Year, "file_id", file.FileID)
	return file, nil
}
