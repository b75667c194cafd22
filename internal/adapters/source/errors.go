package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrSourceNotFound     = errors.New("source not found")
	ErrUnrecognizedSchema = errors.New("unrecognized table schema")
	ErrADPColumnNotFound  = errors.New("adp column not found")
	ErrReadTable          = errors.New("read table")
)
