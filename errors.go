package main

import "errors"

// Conversion failure taxonomy. Statement-level errors drop one statement
// from the output, row-level errors drop one VALUES tuple; both are
// recovered and the run continues. Only input decoding and output
// writing are fatal.
var (
	errEncodingDetection    = errors.New("encoding detection failed")
	errMalformedTable       = errors.New("malformed table definition")
	errInvalidInsert        = errors.New("invalid insert statement")
	errColumnCountMismatch  = errors.New("column count mismatch")
	errUnparsableExpression = errors.New("unparsable expression")
)
