package utils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxImportFileSize is the upload cap for spreadsheet files (10 MiB).
const MaxImportFileSize = 10 << 20

// AllowedSpreadsheetExtensions is the extension allow-list for uploads.
var AllowedSpreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

var (
	ErrFileTooLarge     = errors.New("El archivo excede el tamaño máximo de 10 MB")
	ErrInvalidExtension = errors.New("El archivo debe ser un Excel (.xlsx o .xls)")
)

// ValidateSpreadsheetUpload enforces the shared size and extension guard
// for both the validate and the import endpoints.
func ValidateSpreadsheetUpload(filename string, size int64) error {
	if size > MaxImportFileSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedSpreadsheetExtensions[ext] {
		return ErrInvalidExtension
	}
	return nil
}

// SanitizeValidationError turns a binding error into a user-facing message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Cuerpo de la solicitud inválido"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s es obligatorio", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s debe ser al menos %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s no puede exceder %s", field, fe.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s no es válido", field))
		}
	}

	if len(messages) == 0 {
		return "Cuerpo de la solicitud inválido"
	}
	return strings.Join(messages, "; ")
}
