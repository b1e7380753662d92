package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultWeight is substituted when a row's weight field is missing or
// unparseable. A bad weight is recoverable; bad identifiers are not.
const DefaultWeight uint64 = 1

// ErrMalformedRecord indicates a row that does not carry the two required
// identifier fields. It is fatal to the whole construction call.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError provides structured error information for a rejected row.
type RecordError struct {
	Line   int // 1-based input line, 0 if unknown
	Fields int
	Cause  error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d (%d fields): %v", e.Line, e.Fields, e.Cause)
	}
	return fmt.Sprintf("row (%d fields): %v", e.Fields, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *RecordError) Unwrap() error {
	return e.Cause
}

// Record is one validated interaction: source acted on target with the
// given weight.
type Record struct {
	Source string
	Target string
	Weight uint64
}

// ParseRecord validates one raw row. A row needs a non-empty source and
// target; the third field is the weight, which falls back to DefaultWeight
// when missing or unparseable. The second return reports whether the
// fallback was taken. Pure function of its input.
func ParseRecord(fields []string) (Record, bool, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return Record{}, false, &RecordError{Fields: len(fields), Cause: ErrMalformedRecord}
	}

	source := strings.TrimSpace(fields[0])
	target := strings.TrimSpace(fields[1])
	if source == "" || target == "" {
		return Record{}, false, &RecordError{Fields: len(fields), Cause: ErrMalformedRecord}
	}

	weight := DefaultWeight
	defaulted := true
	if len(fields) == 3 {
		if w, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 64); err == nil && w >= 1 {
			weight = w
			defaulted = false
		}
	}

	return Record{Source: source, Target: target, Weight: weight}, defaulted, nil
}
