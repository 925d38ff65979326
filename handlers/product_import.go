package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"inventario-backend/database"
	"inventario-backend/excel"
	"inventario-backend/importer"
	"inventario-backend/progress"
	"inventario-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImportHandler owns the two spreadsheet endpoints: the dry-run validation
// and the live import.
type ImportHandler struct {
	DB           *gorm.DB
	Hub          *progress.Hub
	BatchSize    int
	FailureLimit int
}

// readUpload pulls the uploaded spreadsheet out of the multipart form and
// runs the shared size/extension guard. Both endpoints enforce the same
// guard. On failure it writes the response and returns ok=false.
func (h *ImportHandler) readUpload(c *gin.Context) (data []byte, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo no proporcionado"})
		return nil, false
	}

	if err := utils.ValidateSpreadsheetUpload(fh.Filename, fh.Size); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, utils.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el archivo"})
		return nil, false
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el archivo"})
		return nil, false
	}
	return data, true
}

// ValidateExcel is the dry-run endpoint: it analyzes the file and reports
// structure and row problems without writing anything or broadcasting.
func (h *ImportHandler) ValidateExcel(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	sheet, err := excel.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error al procesar el archivo: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, importer.Validate(sheet))
}

// ImportExcel runs the live import. Structural problems abort before any
// row is read; row problems are reported in the final counts instead of
// failing the call.
func (h *ImportHandler) ImportExcel(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	sheet, err := excel.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error al procesar el archivo: " + err.Error()})
		return
	}

	if missing := excel.MissingColumns(sheet.Headers); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Faltan columnas requeridas: " + strings.Join(missing, ", "),
			"errores": missing,
		})
		return
	}

	// The storage connection must be alive before the first row; a dead
	// database fails the whole call here instead of failing row by row.
	if err := database.Ping(h.DB); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No se pudo conectar a la base de datos"})
		return
	}

	rows, dropped := sheet.DataRows()
	if dropped > 0 {
		log.Printf("Import: ignoring %d fully empty rows", dropped)
	}

	engine := importer.NewEngine(h.DB, h.Hub, h.BatchSize, h.FailureLimit)
	report, err := engine.Run(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar el archivo: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
