package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Canonical column names expected in uploaded spreadsheets.
var (
	RequiredColumns = []string{"codigo", "nombre", "cantidad", "precio"}
	OptionalColumns = []string{"descripcion", "categoria"}
)

// Row is one data row addressed by canonical column name. Cells missing
// from the sheet come back as empty strings.
type Row struct {
	Number int // spreadsheet row number; the header is row 1
	Cells  map[string]string
}

// Empty reports whether every cell in the row is blank.
func (r Row) Empty() bool {
	for _, v := range r.Cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Sheet is a decoded spreadsheet: normalized headers in their original
// order plus every data row.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// DataRows returns the non-empty rows and how many fully-blank rows were
// dropped. Spreadsheet row numbers of the kept rows are preserved.
func (s *Sheet) DataRows() ([]Row, int) {
	rows := make([]Row, 0, len(s.Rows))
	dropped := 0
	for _, r := range s.Rows {
		if r.Empty() {
			dropped++
			continue
		}
		rows = append(rows, r)
	}
	return rows, dropped
}

// NormalizeHeader lower-cases a column header and strips surrounding
// whitespace, including the non-breaking spaces Excel likes to smuggle in.
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, " ", " ")
	return strings.ToLower(strings.TrimSpace(h))
}

// MissingColumns returns the required columns absent from the given
// normalized headers, in canonical order.
func MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// Decode reads the first sheet of an xlsx file. Headers come from the
// first row, normalized; data rows keep their spreadsheet numbering so
// error messages can point at the exact row the user sees.
func Decode(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet contains no sheets")
	}

	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheetName, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		headers = append(headers, NormalizeHeader(h))
	}

	sheet := &Sheet{Headers: headers}
	for i, cells := range raw[1:] {
		row := Row{Number: i + 2, Cells: make(map[string]string, len(headers))}
		for j, h := range headers {
			if h == "" {
				continue
			}
			if j < len(cells) {
				row.Cells[h] = cells[j]
			} else {
				row.Cells[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}
