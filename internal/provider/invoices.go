package provider

import (
	"context"
	"fmt"
	"time"

	"ridereport/internal/domain"
)

// InvoiceFile is one entry of a trip's invoice-file listing.
type InvoiceFile struct {
	DownloadURL string `json:"downloadURL"`
}

type invoiceEnvelope struct {
	Data struct {
		InvoiceFiles struct {
			Files []InvoiceFile `json:"files"`
		} `json:"invoiceFiles"`
	} `json:"data"`
}

// FetchInvoiceFiles lists the generated invoice documents for a trip. An
// empty list is a valid answer; callers fall back to the direct receipt URL.
func (c *Client) FetchInvoiceFiles(ctx context.Context, cred domain.Credential, tripID string) ([]InvoiceFile, error) {
	if tripID == "" {
		return nil, domain.ValidationError{Field: "tripId", Msg: "missing trip id"}
	}

	var env invoiceEnvelope
	err := c.postGraphQL(ctx, cred, "InvoiceFiles", map[string]any{"tripUUID": tripID}, &env)
	if err != nil {
		return nil, err
	}
	return env.Data.InvoiceFiles.Files, nil
}

// DirectReceiptURL builds the time-stamped direct receipt download URL for a
// trip. No network round trip is needed to decide it.
func (c *Client) DirectReceiptURL(tripID string) string {
	return fmt.Sprintf("%s/trips/%s/receipt?contentType=PDF&t=%d", c.baseURL, tripID, time.Now().UnixMilli())
}
