package conf

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is returned if a configuration file does not
// match its schema.
type ValidationError struct {
	File   string
	Result *gojsonschema.Result
}

func NewValidationError(file string, result *gojsonschema.Result) *ValidationError {
	return &ValidationError{
		File:   file,
		Result: result,
	}
}

func (e *ValidationError) Error() string {
	errs := make([]string, 0, len(e.Result.Errors()))
	for _, err := range e.Result.Errors() {
		errs = append(errs, err.String())
	}

	return fmt.Sprintf("invalid config file %s: %s", e.File, strings.Join(errs, "; "))
}
