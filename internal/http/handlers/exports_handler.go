package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"ridereport/internal/domain/models"
	"ridereport/internal/http/middleware"
	"ridereport/internal/services"

	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	RideIDs []string               `json:"rideIds"`
	Cover   *services.CoverOptions `json:"cover,omitempty"`
}

// ExportReport produces the merged report PDF: cover table followed by each
// selected ride's billing document. Trips that failed to resolve are listed
// in the response instead of aborting the export.
//
// POST /api/sessions/:id/export/report
func (a API) ExportReport(c *gin.Context) {
	a.exportMerged(c, true)
}

// ExportInvoices produces the receipts-only merged PDF.
//
// POST /api/sessions/:id/export/invoices
func (a API) ExportInvoices(c *gin.Context) {
	a.exportMerged(c, false)
}

// ExportCSV renders the CSV artifact for a selection.
//
// POST /api/sessions/:id/export/csv
func (a API) ExportCSV(c *gin.Context) {
	var req exportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	sel, err := a.buildSelection(c.Param("id"), req.RideIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	csvText, err := services.CSVRenderer{}.Render(sel)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("rides_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

func (a API) exportMerged(c *gin.Context, withCover bool) {
	var req exportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	sel, err := a.buildSelection(c.Param("id"), req.RideIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.ExportService{
		Resolver: services.ReceiptResolver{
			Invoices:  a.Provider,
			Binaries:  a.Provider,
			RequestID: reqID,
		},
		Merger:    services.MergeEngine{RequestID: reqID},
		Tables:    services.PDFTableRenderer{FontPath: a.Env.ExportFontPath, RequestID: reqID},
		RequestID: reqID,
	}

	cred := middleware.GetCredential(c)
	var result services.ExportResult
	if withCover {
		opts := services.CoverOptions{}
		if req.Cover != nil {
			opts = *req.Cover
		}
		result, err = svc.ExportReport(c.Request.Context(), cred, sel, opts)
	} else {
		result, err = svc.ExportInvoicesOnly(c.Request.Context(), cred, sel)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("rides_%s.pdf", time.Now().Format("20060102_150405"))
	c.JSON(http.StatusOK, gin.H{
		"pdfBase64": base64.StdEncoding.EncodeToString(result.Data),
		"filename":  filename,
		"failures":  result.Failures,
	})
}

func (a API) buildSelection(sessionID string, rideIDs []string) (models.Selection, error) {
	rides, edits, err := a.sessionRides(sessionID)
	if err != nil {
		return models.Selection{}, err
	}
	return services.BuildSelection(services.ApplyAmountEdits(rides, edits), rideIDs)
}
