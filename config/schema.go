package config

import (
	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schema []byte

// NewSchema returns the schema json config files are validated against.
func NewSchema() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
}
