package services

import (
	"context"
	"fmt"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/utils"
)

// ExportFailure annotates one trip that could not be represented in the
// artifact. The export itself still goes out with everything that resolved.
type ExportFailure struct {
	RideID string `json:"rideId,omitempty"`
	Reason string `json:"reason"`
}

// ExportResult is a finished artifact plus the trips it is missing.
type ExportResult struct {
	Data     []byte          `json:"-"`
	Failures []ExportFailure `json:"failures,omitempty"`
}

// ExportService produces the consolidated export artifacts for a selection.
type ExportService struct {
	Resolver  ReceiptResolver
	Merger    MergeEngine
	Tables    PDFTableRenderer
	CSV       CSVRenderer
	RequestID string
}

// ExportReport builds the merged report: generated cover table first, then
// every resolved billing document in selection order.
func (s ExportService) ExportReport(ctx context.Context, cred domain.Credential, sel models.Selection, opts CoverOptions) (ExportResult, error) {
	cover := GeneratedDocument{
		Name: "cover",
		Render: func() ([]byte, error) {
			return s.Tables.RenderRideTable(sel, opts)
		},
	}
	return s.mergeWithReceipts(ctx, cred, sel, []DocumentSource{cover})
}

// ExportInvoicesOnly merges just the billing documents, no cover.
func (s ExportService) ExportInvoicesOnly(ctx context.Context, cred domain.Credential, sel models.Selection) (ExportResult, error) {
	return s.mergeWithReceipts(ctx, cred, sel, nil)
}

// ExportCSV renders the CSV artifact. No network involved.
func (s ExportService) ExportCSV(sel models.Selection) (string, error) {
	return s.CSV.Render(sel)
}

func (s ExportService) mergeWithReceipts(ctx context.Context, cred domain.Credential, sel models.Selection, sources []DocumentSource) (ExportResult, error) {
	if sel.SelectedCount == 0 {
		return ExportResult{}, domain.ValidationError{Field: "selection", Msg: "no rides selected"}
	}
	if !cred.Valid() {
		return ExportResult{}, domain.ValidationError{Field: "credential", Msg: "missing session credential"}
	}

	result := ExportResult{}
	docs := s.Resolver.ResolveAll(ctx, cred, sel.Rides)
	for _, doc := range docs {
		if !doc.Resolved() {
			result.Failures = append(result.Failures, ExportFailure{RideID: doc.RideID, Reason: doc.Err})
			continue
		}
		sources = append(sources, BinaryDocument{Name: "receipt-" + doc.RideID, Data: doc.Data})
	}

	merged, mergeFailures, err := s.Merger.Merge(sources)
	for _, f := range mergeFailures {
		result.Failures = append(result.Failures, ExportFailure{Reason: fmt.Sprintf("%s: %s", f.Label, f.Reason)})
	}
	if err != nil {
		return result, err
	}
	result.Data = merged

	utils.LogEvent(s.RequestID, "export", "merged",
		fmt.Sprintf("rides=%d failures=%d bytes=%d", sel.SelectedCount, len(result.Failures), len(merged)))
	return result, nil
}
