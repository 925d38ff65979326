package dtos

// ImportRow is a single spreadsheet row after coercion, ready for
// reconciliation. RowNumber is the spreadsheet row (data index + 2, to
// account for the 1-based numbering and the header row).
type ImportRow struct {
	RowNumber   int
	Code        string
	Name        string
	Description string
	Quantity    int
	Price       float64
	Category    string
}

// PreviewRow is one row of the dry-run preview. Coercion here is best
// effort: unparseable numbers become 0 instead of failing the preview.
type PreviewRow struct {
	Code        string  `json:"codigo"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Quantity    int     `json:"cantidad"`
	Price       float64 `json:"precio"`
	Category    string  `json:"categoria"`
}

// ExcelValidation is the dry-run report returned by the validate endpoint.
type ExcelValidation struct {
	Valid     bool         `json:"valido"`
	Errors    []string     `json:"errores"`
	Warnings  []string     `json:"advertencias"`
	TotalRows int          `json:"total_filas"`
	Preview   []PreviewRow `json:"datos_previos"`
}

// ImportReport is the final result of a live import.
type ImportReport struct {
	Success bool     `json:"success"`
	Message string   `json:"mensaje"`
	Created int      `json:"creados"`
	Updated int      `json:"actualizados"`
	Failed  int      `json:"fallidos"`
	Total   int      `json:"total"`
	Errors  []string `json:"errores"`
}

// ProgressEvent is pushed to connected websocket clients while an import
// runs. Completed is true only on the terminal event of a run.
type ProgressEvent struct {
	Percent   int    `json:"progreso"`
	Processed int    `json:"procesados"`
	Total     int    `json:"total"`
	Succeeded int    `json:"exitosos"`
	Failed    int    `json:"fallidos"`
	Message   string `json:"mensaje,omitempty"`
	Completed bool   `json:"completado,omitempty"`
}
