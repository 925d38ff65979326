package importer

import (
	"errors"
	"fmt"
	"log"

	"inventario-backend/config"
	"inventario-backend/dtos"
	"inventario-backend/excel"
	"inventario-backend/models"

	"gorm.io/gorm"
)

// Broadcaster pushes progress events to whoever is currently listening.
type Broadcaster interface {
	Broadcast(event dtos.ProgressEvent)
}

// Engine reconciles spreadsheet rows against the productos table: each row
// either updates the product with the same codigo or creates a new one.
type Engine struct {
	db           *gorm.DB
	broadcaster  Broadcaster
	batchSize    int
	failureLimit int
}

// NewEngine wires an engine with its collaborators. Non-positive tunables
// fall back to the configured defaults.
func NewEngine(db *gorm.DB, b Broadcaster, batchSize, failureLimit int) *Engine {
	if batchSize < 1 {
		batchSize = config.DefaultImportBatchSize
	}
	if failureLimit < 1 {
		failureLimit = config.DefaultImportFailureLimit
	}
	return &Engine{db: db, broadcaster: b, batchSize: batchSize, failureLimit: failureLimit}
}

// Run processes the rows in order. Writes are grouped into one transaction
// per batchSize rows, each boundary followed by a progress broadcast. A
// failing row rolls back to its savepoint and the run continues; once
// failures exceed failureLimit the remaining rows are skipped. The
// terminal completado event fires on every run that reaches the end of
// its loop, aborted or not.
func (e *Engine) Run(rows []excel.Row) (*dtos.ImportReport, error) {
	total := len(rows)
	created, updated, failed, processed := 0, 0, 0, 0
	var rowErrors []string

	tx := e.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not start import transaction: %w", tx.Error)
	}

	aborted := false
	for _, raw := range rows {
		if failed > e.failureLimit {
			aborted = true
			break
		}
		processed++

		sp := fmt.Sprintf("fila_%d", raw.Number)
		tx.SavePoint(sp)
		if err := e.applyRow(tx, raw, &created, &updated); err != nil {
			tx.RollbackTo(sp)
			failed++
			rowErrors = append(rowErrors, fmt.Sprintf("Fila %d: %s", raw.Number, err))
		}

		if processed%e.batchSize == 0 {
			if err := tx.Commit().Error; err != nil {
				return nil, fmt.Errorf("could not commit import batch: %w", err)
			}
			e.broadcast(processed, total, created+updated, failed, false)

			tx = e.db.Begin()
			if tx.Error != nil {
				return nil, fmt.Errorf("could not start import transaction: %w", tx.Error)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit final import batch: %w", err)
	}

	// Terminal event, regardless of batch alignment or an early abort.
	e.broadcast(processed, total, created+updated, failed, true)

	if aborted {
		log.Printf("Import aborted after %d failures (%d of %d rows attempted)", failed, processed, total)
	}

	return &dtos.ImportReport{
		Success: true,
		Message: fmt.Sprintf("Carga completada: %d creados, %d actualizados, %d fallidos", created, updated, failed),
		Created: created,
		Updated: updated,
		Failed:  failed,
		Total:   total,
		Errors:  capErrors(rowErrors),
	}, nil
}

// applyRow coerces one row and applies the create-or-update decision
// inside the caller's transaction.
func (e *Engine) applyRow(tx *gorm.DB, raw excel.Row, created, updated *int) error {
	row, err := coerceRow(raw)
	if err != nil {
		return err
	}

	var existing models.Product
	err = tx.Where("codigo = ?", row.Code).First(&existing).Error
	switch {
	case err == nil:
		// Full replace: absent optional columns overwrite with "".
		existing.Name = row.Name
		existing.Description = row.Description
		existing.Quantity = row.Quantity
		existing.Price = row.Price
		existing.Category = row.Category
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*updated++
	case errors.Is(err, gorm.ErrRecordNotFound):
		product := models.Product{
			Code:        row.Code,
			Name:        row.Name,
			Description: row.Description,
			Quantity:    row.Quantity,
			Price:       row.Price,
			Category:    row.Category,
		}
		// A concurrent import may have inserted the same codigo after the
		// lookup above; the unique index turns that race into a row error.
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		*created++
	default:
		return err
	}

	return nil
}

func (e *Engine) broadcast(processed, total, succeeded, failed int, completed bool) {
	if e.broadcaster == nil {
		return
	}
	percent := 0
	if total > 0 {
		percent = processed * 100 / total
	}
	e.broadcaster.Broadcast(dtos.ProgressEvent{
		Percent:   percent,
		Processed: processed,
		Total:     total,
		Succeeded: succeeded,
		Failed:    failed,
		Completed: completed,
	})
}
