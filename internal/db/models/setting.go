// Package models contains database model definitions.
package models

// Setting is a named JSON document, for example the brand guidelines.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:100;not null"`
	Value []byte
}
