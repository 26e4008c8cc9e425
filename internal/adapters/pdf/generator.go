// Package pdf renders an exported grid as a printable table report.
// The first record is the header row; it is repeated at the top of every
// page. Column widths follow the longest text of each column.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

const (
	rowH       = 6.5
	headerH    = 7
	minColW    = 14.0
	fontSize   = 8.5
	maxMeasure = 40 // characters considered when sizing a column
)

// Generator satisfies ports.ReportGenerator.
type Generator struct {
	// Now stamps the footer; nil means time.Now.
	Now func() time.Time
}

// Generate writes a landscape Letter report of records to w.
func (g Generator) Generate(_ context.Context, title string, records [][]string, w io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("pdf: no header row")
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	pdf := newDoc()
	// TODO: embed a CJK TTF with AddUTF8Font; the core fonts only cover cp1252,
	// so Japanese labels currently print as substitution characters.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header, body := records[0], records[1:]
	widths := columnWidths(pdf, records)
	stamp := now().Format("2006-01-02 15:04")

	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	bottom := pageH - marginB - 8

	var y float64
	newPage := func() {
		pdf.AddPage()
		drawTitleBar(pdf, tr(title), contentW)
		y = marginT + 13
		y = drawHeaderRow(pdf, tr, header, widths, marginL, y)
	}
	newPage()

	if len(body) == 0 {
		pdf.SetFont("Helvetica", "I", fontSize)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(contentW, rowH, "No rows", "1", 1, "C", false, 0, "")
	}

	for i, rec := range body {
		if y+rowH > bottom {
			drawFooter(pdf, stamp, len(body), contentW, pageH-marginB-6)
			newPage()
		}
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetXY(marginL, y)
		for c, wCol := range widths {
			text := ""
			if c < len(rec) {
				text = fit(pdf, tr(rec[c]), wCol-2)
			}
			pdf.CellFormat(wCol, rowH, text, "1", 0, "L", true, 0, "")
		}
		y += rowH
	}
	drawFooter(pdf, stamp, len(body), contentW, pageH-marginB-6)

	return pdf.Output(w)
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AliasNbPages("{nb}")
	return pdf
}

func drawTitleBar(pdf *fpdf.Fpdf, title string, contentW float64) {
	marginL, marginT, _, _ := pdf.GetMargins()
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-40, 7, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(36, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawHeaderRow(pdf *fpdf.Fpdf, tr func(string) string, header []string, widths []float64, x, y float64) float64 {
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetXY(x, y)
	for c, wCol := range widths {
		pdf.CellFormat(wCol, headerH, fit(pdf, tr(header[c]), wCol-2), "1", 0, "L", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	return y + headerH
}

func drawFooter(pdf *fpdf.Fpdf, stamp string, rows int, contentW, y float64) {
	marginL, _, _, _ := pdf.GetMargins()
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated "+stamp, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("%d rows", rows), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// columnWidths spreads the printable width over the columns in proportion
// to their longest text.
func columnWidths(pdf *fpdf.Fpdf, records [][]string) []float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	n := len(records[0])
	weights := make([]float64, n)
	var total float64
	for c := range n {
		longest := 3
		for _, rec := range records {
			if c < len(rec) {
				longest = max(longest, min(utf8.RuneCountInString(rec[c]), maxMeasure))
			}
		}
		weights[c] = float64(longest)
		total += weights[c]
	}

	widths := make([]float64, n)
	for c := range n {
		widths[c] = max(contentW*weights[c]/total, minColW)
	}
	// minimum widths may overflow the page; scale back down uniformly
	var sum float64
	for _, w := range widths {
		sum += w
	}
	if sum > contentW {
		for c := range widths {
			widths[c] *= contentW / sum
		}
	}
	return widths
}

// fit truncates text with an ellipsis so it fits width at the current font.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
