package grid

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"
)

// CSVContentType is the MIME type of an exported grid.
const CSVContentType = "text/csv;charset=utf-8"

// CommaGlyph stands in for commas inside exported values.
const CommaGlyph = "、"

// CSVMode selects how values containing separators are written.
type CSVMode int

const (
	// CSVReplaceCommas never quotes: commas inside values become CommaGlyph
	// and line breaks become spaces, so every row is one line with a fixed
	// number of fields.
	CSVReplaceCommas CSVMode = iota
	// CSVQuoted writes RFC 4180 records with quoting.
	CSVQuoted
)

var cellReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	",", CommaGlyph,
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeCell converts a value to CSV-safe text for CSVReplaceCommas:
// missing values become "", commas become CommaGlyph, line breaks become a space and
// surrounding whitespace is trimmed.
func SanitizeCell(v any) string {
	return sanitizeText(Text(v))
}

func sanitizeText(s string) string {
	return strings.TrimSpace(cellReplacer.Replace(s))
}

// Records returns the header row followed by one row of display text per
// entry of rows. Values are not sanitized.
func Records[T any](rows []T, cols []Column[T]) [][]string {
	out := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.ExportHeader()
	}
	out = append(out, header)
	for _, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = Text(c.ValueOf(row))
		}
		out = append(out, line)
	}
	return out
}

// WriteCSV writes records in the given mode. CSVReplaceCommas joins lines
// with "\n" and writes no trailing newline.
func WriteCSV(w io.Writer, records [][]string, mode CSVMode) error {
	if mode == CSVQuoted {
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(records); err != nil {
			return err
		}
		return cw.Error()
	}
	lines := make([]string, len(records))
	for i, rec := range records {
		cells := make([]string, len(rec))
		for j, cell := range rec {
			cells[j] = sanitizeText(cell)
		}
		lines[i] = strings.Join(cells, ",")
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// CSVFileName derives the download name from a grid title: whitespace runs
// become "_" and an empty title falls back to "data-table".
func CSVFileName(title string) string {
	return baseName(title) + ".csv"
}

// PDFFileName is CSVFileName with a ".pdf" extension.
func PDFFileName(title string) string {
	return baseName(title) + ".pdf"
}

func baseName(title string) string {
	if strings.TrimSpace(title) == "" {
		return "data-table"
	}
	return whitespaceRun.ReplaceAllString(title, "_")
}
