package taxsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetTaxFile fetches the tax file a user filed for year.
func (c *Client) GetTaxFile(ctx context.Context, userID string, year int) (*TaxFile, error) {
	q := url.Values{
		"userId": {userID},
		"year":   {strconv.Itoa(year)},
	}

	var file TaxFile
	if err := c.do(ctx, http.MethodGet, "/taxFile", q, nil, &file, http.StatusOK); err != nil {
		return nil, err
	}
	return &file, nil
}

// ListTaxFilesByUser fetches every tax file summary for a user in one call.
func (c *Client) ListTaxFilesByUser(ctx context.Context, userID string) (*TaxUserFiles, error) {
	q := url.Values{"userId": {userID}}

	var files TaxUserFiles
	if err := c.do(ctx, http.MethodGet, "/taxFile/taxUser", q, nil, &files, http.StatusOK); err != nil {
		return nil, err
	}
	if files.TaxFiles == nil {
		files.TaxFiles = []TaxFileSummary{}
	}
	return &files, nil
}

// CreateTaxFile files a new tax return. The service answers 201 Created.
func (c *Client) CreateTaxFile(ctx context.Context, req CreateTaxFileRequest) (*TaxFile, error) {
	var file TaxFile
	if err := c.do(ctx, http.MethodPost, "/taxFile", nil, req, &file, http.StatusCreated); err != nil {
		return nil, err
	}
	return &file, nil
}
