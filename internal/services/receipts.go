package services

import (
	"context"
	"fmt"
	"sync"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/provider"
	"ridereport/internal/utils"
)

// InvoiceSource lists invoice files and constructs direct receipt URLs.
type InvoiceSource interface {
	FetchInvoiceFiles(ctx context.Context, cred domain.Credential, tripID string) ([]provider.InvoiceFile, error)
	DirectReceiptURL(tripID string) string
}

// BinarySource downloads one document.
type BinarySource interface {
	FetchBinary(ctx context.Context, cred domain.Credential, url string) ([]byte, error)
}

// ReceiptResolver locates and fetches the billing document for a trip.
type ReceiptResolver struct {
	Invoices  InvoiceSource
	Binaries  BinarySource
	RequestID string
}

// Resolve runs the per-trip fallback chain:
//  1. simple receipt flow (auto/bike): the direct time-stamped receipt URL,
//     decided without any network round trip;
//  2. otherwise the invoice-file listing, falling back to the direct URL
//     when the listing fails or is empty. Only the first file matters.
//
// A failed fetch is reported on the document and never retried.
func (r ReceiptResolver) Resolve(ctx context.Context, cred domain.Credential, ride models.EnrichedRide) models.BillingDocument {
	doc := models.BillingDocument{RideID: ride.ID}

	url := ""
	if ride.IsAutoType {
		url = r.Invoices.DirectReceiptURL(ride.ID)
	} else {
		files, err := r.Invoices.FetchInvoiceFiles(ctx, cred, ride.ID)
		if err != nil || len(files) == 0 {
			url = r.Invoices.DirectReceiptURL(ride.ID)
		} else {
			url = files[0].DownloadURL
		}
	}

	data, err := r.Binaries.FetchBinary(ctx, cred, url)
	if err != nil {
		doc.Err = err.Error()
		utils.LogEvent(r.RequestID, "receipts", "fetch_failed", fmt.Sprintf("ride=%s err=%v", ride.ID, err))
		return doc
	}
	doc.Data = data
	return doc
}

// ResolveAll resolves every ride concurrently. Each trip's one or two
// network calls are independent of every other trip's; results come back in
// selection order regardless of completion time.
func (r ReceiptResolver) ResolveAll(ctx context.Context, cred domain.Credential, rides []models.EnrichedRide) []models.BillingDocument {
	docs := make([]models.BillingDocument, len(rides))

	var wg sync.WaitGroup
	for i, ride := range rides {
		wg.Add(1)
		go func(i int, ride models.EnrichedRide) {
			defer wg.Done()
			docs[i] = r.Resolve(ctx, cred, ride)
		}(i, ride)
	}
	wg.Wait()

	return docs
}
