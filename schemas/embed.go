// Package schemas holds the JSON Schemas for CV records and violation reports.
package schemas

import (
	_ "embed"
)

// File names relative to the schemas directory
const (
	CVFile         = "cv.schema.json"
	ViolationsFile = "violations.schema.json"
)

//go:embed cv.schema.json
var cvSchema []byte

//go:embed violations.schema.json
var violationsSchema []byte

// CV returns the schema for a CV record
func CV() []byte {
	return cvSchema
}

// Violations returns the schema for a violations report
func Violations() []byte {
	return violationsSchema
}
