// Package taxsdk is a typed client for the tax-file record service.
//
// The record service owns users, tax files and refunds. This package mirrors
// its HTTP API one method per endpoint:
//
//	client := taxsdk.NewClient("http://localhost:8080", taxsdk.WithCallTimeout(5*time.Second))
//	user, err := client.GetUser(ctx, "user-123")
//	if taxsdk.IsNotFound(err) {
//		// no such user
//	}
//
// Any non-2xx response is returned as *APIError carrying the status code and
// the service's message. Transport failures (refused connections, timeouts)
// are returned as wrapped errors that are not *APIError; use IsTransport to
// tell them apart.
//
// Monetary values are shopspring/decimal values that encode as plain JSON
// numbers. This is done by setting decimal.MarshalJSONWithoutQuotes in the
// package's init, which applies to every decimal in the importing program.
// Timestamps accept the service's zone-less local date-time format as well
// as RFC 3339, and are written back zone-less in UTC.
package taxsdk
