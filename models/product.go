package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Product is a single inventory item. Column and JSON names stay in Spanish
// because the existing frontend and the spreadsheet templates already use them.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"column:codigo;size:50;uniqueIndex;not null" json:"codigo"`
	Name        string    `gorm:"column:nombre;size:200;not null" json:"nombre"`
	Description string    `gorm:"column:descripcion" json:"descripcion"`
	Quantity    int       `gorm:"column:cantidad;default:0" json:"cantidad"`
	Price       float64   `gorm:"column:precio;not null" json:"precio"`
	Category    string    `gorm:"column:categoria;size:100" json:"categoria"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

func (Product) TableName() string {
	return "productos"
}

// BeforeSave rounds the price to two decimals so DB values match what the
// validators promised callers.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Price = RoundPrice(p.Price)
	return nil
}

// RoundPrice rounds half away from zero to two decimal places.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
