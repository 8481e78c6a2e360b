// Package receipt renders a finalized order as a printable PDF document.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/salesdesk/pos-backend/internal/models"
)

// Generator writes one receipt file per finalized order into Dir.
// Filenames are derived from the customer name, so a repeat customer name
// overwrites the prior receipt (last write wins).
type Generator struct {
	dir string
}

// NewGenerator creates a generator that writes receipts under dir,
// creating the directory if needed.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// column widths in mm; together they fit a letter page with margins
var colWidths = [5]float64{20, 70, 30, 30, 40}

var colHeaders = [5]string{"ID", "Product", "Price", "Quantity", "Subtotal"}

// Generate renders the order as a tabular PDF and returns the written path
// and the order total. A write failure is fatal to the call; no partial
// document is left behind as valid output.
func (g *Generator) Generate(order models.FinalizedOrder) (string, float64, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	// header row
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range colHeaders {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// line rows; the ID column stays blank, order lines carry no product id
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range order.Lines {
		cells := [5]string{
			"",
			line.Product,
			money(line.Price),
			strconv.Itoa(line.Quantity),
			money(line.Subtotal),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 8, c, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	// trailing total row
	pdf.SetFont("Helvetica", "B", 10)
	totals := [5]string{"", "", "", "Total:", money(order.Total)}
	for i, c := range totals {
		pdf.CellFormat(colWidths[i], 8, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	path := g.Path(order.Customer)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", 0, fmt.Errorf("write receipt: %w", err)
	}
	return path, order.Total, nil
}

// Path returns the receipt filename for a customer name. Spaces become
// underscores so the name is shell-friendly; the mapping is deliberately
// deterministic and collision-prone, matching the one-file-per-customer
// behavior of the workflow.
func (g *Generator) Path(customer string) string {
	name := strings.ReplaceAll(customer, " ", "_")
	return filepath.Join(g.dir, "receipt_"+name+".pdf")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
