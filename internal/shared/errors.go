package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported file format")
	ErrParse             = fmt.Errorf("parse error")
	ErrIO                = fmt.Errorf("i/o error")

	// Database errors
	ErrJobNotFound = fmt.Errorf("migration job not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
