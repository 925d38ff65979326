package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventario-backend/models"
	"inventario-backend/progress"
	"inventario-backend/utils"
)

var importHeaders = []string{"codigo", "nombre", "cantidad", "precio"}

func TestValidateExcelNoFile(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/productos/validar-excel", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if parseResponse(w)["error"] != "Archivo no proporcionado" {
		t.Errorf("unexpected error: %v", parseResponse(w)["error"])
	}
}

func TestValidateExcelRejectsExtension(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.csv", []byte("a,b,c")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if parseResponse(w)["error"] != utils.ErrInvalidExtension.Error() {
		t.Errorf("unexpected error: %v", parseResponse(w)["error"])
	}
}

func TestValidateExcelRejectsOversizedFile(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	big := make([]byte, utils.MaxImportFileSize+1)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.xlsx", big))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestValidateExcelCorruptFile(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.xlsx", []byte("not a workbook")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for corrupt file, got %d", w.Code)
	}
}

func TestValidateExcelMissingColumn(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	data := buildWorkbook([]string{"codigo", "nombre", "cantidad"}, [][]interface{}{
		{"P-001", "Martillo", 10},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.xlsx", data))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(w)
	if body["valido"] != false {
		t.Error("expected valido=false for missing column")
	}
	errs := body["errores"].([]interface{})
	if len(errs) != 1 || errs[0] != "Falta la columna requerida: 'precio'" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateExcelHappyPath(t *testing.T) {
	router := setupImportRouter(freshDB(), progress.NewHub())

	data := buildWorkbook(importHeaders, [][]interface{}{
		{"P-001", "Martillo", 10, 25.50},
		{"P-002", "Destornillador", 5, 12.00},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.xlsx", data))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(w)
	if body["valido"] != true {
		t.Errorf("expected valido=true, errors: %v", body["errores"])
	}
	if body["total_filas"].(float64) != 2 {
		t.Errorf("expected total_filas 2, got %v", body["total_filas"])
	}
	preview := body["datos_previos"].([]interface{})
	if len(preview) != 2 {
		t.Errorf("expected 2 preview rows, got %d", len(preview))
	}
}

func TestValidateExcelReportsRowErrors(t *testing.T) {
	db := freshDB()
	router := setupImportRouter(db, progress.NewHub())

	data := buildWorkbook(importHeaders, [][]interface{}{
		{"P-001", "Martillo", 10, 25.50},
		{"", "Sin código", 1, 5.00},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/validar-excel", "productos.xlsx", data))

	body := parseResponse(w)
	if body["valido"] != false {
		t.Error("expected valido=false")
	}
	errs := body["errores"].([]interface{})
	if len(errs) != 1 || errs[0] != "Fila 3: El código no puede estar vacío" {
		t.Errorf("unexpected errors: %v", errs)
	}

	// dry run writes nothing
	var count int64
	db.Table("productos").Count(&count)
	if count != 0 {
		t.Errorf("validation must not persist rows, found %d", count)
	}
}

func TestImportExcelMissingColumnAborts(t *testing.T) {
	db := freshDB()
	router := setupImportRouter(db, progress.NewHub())

	data := buildWorkbook([]string{"codigo", "nombre"}, [][]interface{}{
		{"P-001", "Martillo"},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/cargar-excel", "productos.xlsx", data))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var count int64
	db.Table("productos").Count(&count)
	if count != 0 {
		t.Errorf("structural failure must not persist rows, found %d", count)
	}
}

func TestImportExcelCreatesAndUpdates(t *testing.T) {
	db := freshDB()
	seedProduct(db, "P-001", "Martillo viejo", 1, 10.00)
	router := setupImportRouter(db, progress.NewHub())

	data := buildWorkbook(importHeaders, [][]interface{}{
		{"P-001", "Martillo nuevo", 20, 30.00},
		{"P-002", "Destornillador", 5, 12.00},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/cargar-excel", "productos.xlsx", data))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(w)
	if body["success"] != true {
		t.Errorf("expected success, got %v", body)
	}
	if body["creados"].(float64) != 1 || body["actualizados"].(float64) != 1 {
		t.Errorf("expected 1 created and 1 updated, got %v / %v", body["creados"], body["actualizados"])
	}

	var updated models.Product
	db.Where("codigo = ?", "P-001").First(&updated)
	if updated.Name != "Martillo nuevo" || updated.Quantity != 20 {
		t.Errorf("existing product not replaced: %+v", updated)
	}
}

func TestImportExcelReportsFailedRows(t *testing.T) {
	db := freshDB()
	router := setupImportRouter(db, progress.NewHub())

	data := buildWorkbook(importHeaders, [][]interface{}{
		{"P-001", "Martillo", 10, 25.50},
		{"P-002", "Regalo", 1, 0},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/cargar-excel", "productos.xlsx", data))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(w)
	if body["creados"].(float64) != 1 || body["fallidos"].(float64) != 1 {
		t.Errorf("expected 1 created and 1 failed, got %v / %v", body["creados"], body["fallidos"])
	}
	errs := body["errores"].([]interface{})
	if len(errs) != 1 || errs[0] != "Fila 3: El precio debe ser mayor a 0" {
		t.Errorf("unexpected errors: %v", errs)
	}

	// good rows persist even when siblings fail
	var count int64
	db.Table("productos").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 row persisted, found %d", count)
	}
}

func TestImportExcelBroadcastsProgress(t *testing.T) {
	db := freshDB()
	hub := progress.NewHub()
	observer := &recordingObserver{}
	hub.Register(observer)
	router := setupImportRouter(db, hub)

	data := buildWorkbook(importHeaders, [][]interface{}{
		{"P-001", "Martillo", 10, 25.50},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest("/api/productos/cargar-excel", "productos.xlsx", data))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	events := observer.Events()
	if len(events) == 0 {
		t.Fatal("expected progress events")
	}
	last := events[len(events)-1]
	if !last.Completed {
		t.Error("final event must be terminal")
	}
	if last.Percent != 100 {
		t.Errorf("expected terminal percent 100, got %d", last.Percent)
	}
}
