package services

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/phpdave11/gofpdf"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/utils"
)

// Fixed column widths (mm) sized for full addresses on a landscape A4 page.
const (
	colIndex   = 10.0
	colPickup  = 32.0
	colDropoff = 32.0
	colDriver  = 38.0
	colVehicle = 22.0
	colAddress = 60.0
	colAmount  = 23.0
	rowHeight  = 7.0
)

var (
	fontOnce sync.Once
	fontData []byte
)

// loadExportFont reads the optional UTF-8 table font at most once per
// process. There is no invalidation; a changed font file needs a restart.
func loadExportFont(path string) []byte {
	fontOnce.Do(func() {
		if path == "" {
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			utils.LogEvent("", "export", "font_not_loaded", fmt.Sprintf("path=%s err=%v", path, err))
			return
		}
		fontData = b
	})
	return fontData
}

// CoverOptions controls the generated cover table.
type CoverOptions struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// PDFTableRenderer renders a selection into a tabulated landscape PDF with
// a grand-total row and per-page footer.
type PDFTableRenderer struct {
	FontPath  string
	RequestID string
}

// GrandTotalText is the exact totals label rendered at the bottom of the
// table, e.g. "Grand Total: ₹204.38".
func GrandTotalText(sel models.Selection) string {
	return "Grand Total: " + utils.FormatMoneyWithSymbol(sel.TotalAmount, sel.Currency)
}

// RenderRideTable produces the tabulated PDF for a selection. Pages break
// automatically on content volume; every page carries a numbered footer.
func (r PDFTableRenderer) RenderRideTable(sel models.Selection, opts CoverOptions) ([]byte, error) {
	if sel.SelectedCount == 0 {
		return nil, domain.ValidationError{Field: "selection", Msg: "no rides selected"}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Ride Report", false)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 18)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if b := loadExportFont(r.FontPath); len(b) > 0 {
		pdf.AddUTF8FontFromBytes("export", "", b)
		pdf.AddUTF8FontFromBytes("export", "B", b)
		family = "export"
		tr = func(s string) string { return s }
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	title := utils.TrimOrEmpty(opts.Title)
	if title == "" {
		title = "Ride Report"
	}
	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	if sub := utils.TrimOrEmpty(opts.Subtitle); sub != "" {
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(0, 6, tr(sub), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(235, 235, 235)
	headers := []struct {
		label string
		width float64
	}{
		{"#", colIndex},
		{"Pickup Time", colPickup},
		{"Dropoff Time", colDropoff},
		{"Driver", colDriver},
		{"Vehicle", colVehicle},
		{"Pickup Address", colAddress},
		{"Dropoff Address", colAddress},
		{"Amount", colAmount},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, rowHeight, h.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	for i, ride := range sel.Rides {
		cells := []struct {
			text  string
			width float64
			align string
		}{
			{fmt.Sprintf("%d", i+1), colIndex, "C"},
			{utils.FormatDisplay(ride.StartTime), colPickup, "L"},
			{utils.FormatDisplay(ride.EndTime), colDropoff, "L"},
			{utils.Truncate(utils.SanitizePrintable(ride.DriverName), 26), colDriver, "L"},
			{string(ride.Vehicle), colVehicle, "C"},
			{utils.Truncate(utils.SanitizePrintable(ride.StartLocation), 48), colAddress, "L"},
			{utils.Truncate(utils.SanitizePrintable(ride.EndLocation), 48), colAddress, "L"},
			{tr(utils.FormatMoneyWithSymbol(ride.Amount, ride.Currency)), colAmount, "R"},
		}
		for _, cell := range cells {
			pdf.CellFormat(cell.width, rowHeight, cell.text, "1", 0, cell.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont(family, "B", 9)
	blank := colIndex + colPickup + colDropoff + colDriver + colVehicle
	pdf.CellFormat(blank, rowHeight, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colAddress*2+colAmount, rowHeight, tr(GrandTotalText(sel)), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.InternalError{Msg: "render pdf", Err: err}
	}
	utils.LogEvent(r.RequestID, "export", "render_table", fmt.Sprintf("rides=%d bytes=%d", sel.SelectedCount, buf.Len()))
	return buf.Bytes(), nil
}
