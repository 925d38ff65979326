package importer

import (
	"errors"
	"strconv"
	"strings"

	"inventario-backend/dtos"
	"inventario-backend/excel"
	"inventario-backend/models"
)

// Coercion errors, phrased for the end user. The row prefix is added by
// whoever records them.
var (
	errEmptyCode       = errors.New("El código no puede estar vacío")
	errEmptyName       = errors.New("El nombre no puede estar vacío")
	errQuantityNotNum  = errors.New("La cantidad debe ser un número")
	errQuantityNeg     = errors.New("La cantidad no puede ser negativa")
	errPriceNotNum     = errors.New("El precio debe ser un número")
	errPriceNotGtZero  = errors.New("El precio debe ser mayor a 0")
)

// coerceRow converts a raw cell map into a typed ImportRow. Failures come
// back as plain values so the caller decides whether the batch continues.
func coerceRow(raw excel.Row) (dtos.ImportRow, error) {
	row := dtos.ImportRow{
		RowNumber:   raw.Number,
		Code:        strings.TrimSpace(raw.Cells["codigo"]),
		Name:        strings.TrimSpace(raw.Cells["nombre"]),
		Description: strings.TrimSpace(raw.Cells["descripcion"]),
		Category:    strings.TrimSpace(raw.Cells["categoria"]),
	}

	if row.Code == "" {
		return row, errEmptyCode
	}
	if row.Name == "" {
		return row, errEmptyName
	}

	qty, err := parseQuantity(raw.Cells["cantidad"])
	if err != nil {
		return row, err
	}
	row.Quantity = qty

	price, err := parsePrice(raw.Cells["precio"])
	if err != nil {
		return row, err
	}
	row.Price = price

	return row, nil
}

// parseQuantity accepts any numeric cell and truncates to an integer, the
// way spreadsheet tools hand over whole numbers as floats.
func parseQuantity(cell string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errQuantityNotNum
	}
	if f < 0 {
		return 0, errQuantityNeg
	}
	return int(f), nil
}

func parsePrice(cell string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errPriceNotNum
	}
	if f <= 0 {
		return 0, errPriceNotGtZero
	}
	return models.RoundPrice(f), nil
}
