package service

import (
	"context"

	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

// RecordService is the slice of the record-service API the BFF consumes.
// *taxsdk.Client implements it.
type RecordService interface {
	GetUser(ctx context.Context, userID string) (*taxsdk.User, error)
	ListUsers(ctx context.Context) (*taxsdk.UserList, error)
	CreateUser(ctx context.Context, req taxsdk.CreateUserRequest) (*taxsdk.User, error)

	GetTaxFile(ctx context.Context, userID string, year int) (*taxsdk.TaxFile, error)
	ListTaxFilesByUser(ctx context.Context, userID string) (*taxsdk.TaxUserFiles, error)
	CreateTaxFile(ctx context.Context, req taxsdk.CreateTaxFileRequest) (*taxsdk.TaxFile, error)

	GetRefund(ctx context.Context, query taxsdk.RefundQuery) (*taxsdk.Refund, error)
	ProcessRefundEvent(ctx context.Context, event taxsdk.RefundEvent) error
}

var _ RecordService = (*taxsdk.Client)(nil)
