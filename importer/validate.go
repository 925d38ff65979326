package importer

import (
	"fmt"
	"strconv"
	"strings"

	"inventario-backend/dtos"
	"inventario-backend/excel"
	"inventario-backend/models"
)

const (
	// maxDisplayErrors caps how many row errors a report lists before
	// collapsing the rest into a single summary line.
	maxDisplayErrors = 10

	// previewRows is how many rows the dry-run report previews.
	previewRows = 5
)

// Validate runs the dry-run analysis over a decoded sheet. It never
// touches storage and never broadcasts; calling it twice on the same
// input yields the same report.
func Validate(sheet *excel.Sheet) *dtos.ExcelValidation {
	report := &dtos.ExcelValidation{
		Errors:   []string{},
		Warnings: []string{},
		Preview:  []dtos.PreviewRow{},
	}

	// Structural check first: without the required columns there is no
	// point looking at a single data row.
	if missing := excel.MissingColumns(sheet.Headers); len(missing) > 0 {
		for _, col := range missing {
			report.Errors = append(report.Errors, fmt.Sprintf("Falta la columna requerida: '%s'", col))
		}
		report.TotalRows = len(sheet.Rows)
		return report
	}

	rows, dropped := sheet.DataRows()
	if dropped > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Se encontraron %d filas completamente vacías que serán ignoradas", dropped))
	}
	report.TotalRows = len(rows)

	var errs []string
	for _, row := range rows {
		errs = append(errs, validateRow(row)...)
	}

	report.Valid = len(errs) == 0
	report.Errors = capErrors(errs)

	for i, row := range rows {
		if i == previewRows {
			break
		}
		report.Preview = append(report.Preview, previewRow(row))
	}

	return report
}

// validateRow runs the per-row checks. The checks are independent: a row
// can accumulate several errors.
func validateRow(row excel.Row) []string {
	var errs []string

	if strings.TrimSpace(row.Cells["codigo"]) == "" {
		errs = append(errs, fmt.Sprintf("Fila %d: %s", row.Number, errEmptyCode))
	}
	if strings.TrimSpace(row.Cells["nombre"]) == "" {
		errs = append(errs, fmt.Sprintf("Fila %d: %s", row.Number, errEmptyName))
	}
	if _, err := parseQuantity(row.Cells["cantidad"]); err != nil {
		errs = append(errs, fmt.Sprintf("Fila %d: %s", row.Number, err))
	}
	if _, err := parsePrice(row.Cells["precio"]); err != nil {
		errs = append(errs, fmt.Sprintf("Fila %d: %s", row.Number, err))
	}

	return errs
}

// capErrors bounds an error list for display. When entries are dropped a
// summary line says how many, so truncation is never silent.
func capErrors(errs []string) []string {
	if len(errs) <= maxDisplayErrors {
		if errs == nil {
			return []string{}
		}
		return errs
	}
	capped := make([]string, maxDisplayErrors, maxDisplayErrors+1)
	copy(capped, errs[:maxDisplayErrors])
	capped = append(capped, fmt.Sprintf("... y %d errores más", len(errs)-maxDisplayErrors))
	return capped
}

// previewRow coerces a row for display only: numbers that do not parse
// become 0 instead of failing, so the preview always renders.
func previewRow(row excel.Row) dtos.PreviewRow {
	p := dtos.PreviewRow{
		Code:        strings.TrimSpace(row.Cells["codigo"]),
		Name:        strings.TrimSpace(row.Cells["nombre"]),
		Description: strings.TrimSpace(row.Cells["descripcion"]),
		Category:    strings.TrimSpace(row.Cells["categoria"]),
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(row.Cells["cantidad"]), 64); err == nil {
		p.Quantity = int(f)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(row.Cells["precio"]), 64); err == nil {
		p.Price = models.RoundPrice(f)
	}
	return p
}
