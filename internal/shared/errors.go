package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig     = fmt.Errorf("configuration not found")
	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
	ErrUnsupportedFormat = fmt.Errorf("unsupported configuration format")

	// Catalog errors
	ErrNotFound       = fmt.Errorf("record not found")
	ErrUnknownStep    = fmt.Errorf("unknown script step")
	ErrStepFailed     = fmt.Errorf("script step failed")
	ErrCatalogMissing = fmt.Errorf("catalog not initialized")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
