package audit

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the audit as a minimal landscape PDF: a title, the summary
// counts and one block per URL with the diagnosis wrapped across lines. This
// intentionally does not attempt full table layout.
func WritePDF(records []Record, outPath string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Index Audit Report", "", 1, "L", false, 0, "")
	s := Summarize(records)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("URLs: %d    Indexed: %d    Not indexed: %d", s.Total, s.Indexed, s.NotIndexed), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	for _, r := range records {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s  [%s]", r.URL, r.IndexedLabel()), "", "L", false)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, r.Diagnosis, "", "L", false)
		pdf.Ln(2)
	}
	return pdf.OutputFileAndClose(outPath)
}
