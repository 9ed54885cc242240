package infra

// PDF inventory report generation using go-pdf/fpdf. Produces an A4 landscape
// table of every item with its stock level and derived availability, plus a
// per-status summary footer. The file is written to storagePath and the
// absolute path returned so the handler can stream or attach it.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/stockstatus"

	"github.com/go-pdf/fpdf"
)

// GenerateInventoryReportPDF renders the full inventory as a PDF report.
func GenerateInventoryReportPDF(items []model.Item, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("inventario_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// Header
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Reporte de Inventario", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, now.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Column layout
	colName := contentW * 0.28
	colCat := contentW * 0.14
	colLoc := contentW * 0.14
	colStock := contentW * 0.09
	colMin := contentW * 0.09
	colStatus := contentW * 0.13
	colAvail := contentW * 0.13

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colName, 6, "Nombre", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colCat, 6, "Categoría", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colLoc, 6, "Ubicación", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colStock, 6, "Stock", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colMin, 6, "Mínimo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colStatus, 6, "Estado", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colAvail, 6, "Disponibilidad", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	counts := map[stockstatus.Status]int{}
	for i := range items {
		it := &items[i]

		name := it.Name
		if len(name) > 42 {
			name = name[:41] + "…"
		}
		catName, locName, statusName := "", "", ""
		if it.Category != nil {
			catName = it.Category.Name
		}
		if it.Location != nil {
			locName = it.Location.Name
		}
		if it.Status != nil {
			statusName = it.Status.Name
		}

		derived := stockstatus.Derive(it.Stock, it.MinStock)
		counts[derived]++

		pdf.CellFormat(colName, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCat, 6, catName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colLoc, 6, locName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colStock, 6, fmt.Sprintf("%d", it.Stock), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colMin, 6, fmt.Sprintf("%d", it.MinStock), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colStatus, 6, statusName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colAvail, 6, string(derived), "1", 1, "L", false, 0, "")
	}

	// Summary footer
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Total de ítems: %d", len(items)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, st := range []stockstatus.Status{stockstatus.Available, stockstatus.Low, stockstatus.Depleted} {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("%s: %d", st, counts[st]), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
