package engine

import "github.com/pkg/errors"

// Failure classes surfaced by the engine. Callers discriminate with errors.Is;
// wrapped variants carry the offending path, column or label.
var (
	// ErrNotFound is returned when the source path cannot be opened.
	ErrNotFound = errors.New("source not found")

	// ErrParse is returned for malformed or empty delimited input.
	ErrParse = errors.New("parse error")

	// ErrUnknownColumn is returned when a requested column name is absent.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrOutOfRange is returned when a label endpoint is absent from the index.
	ErrOutOfRange = errors.New("label out of range")

	// ErrDuplicateColumn is returned when a derived column name already exists.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrDivisionByZero is returned by derivations that hit a zero denominator.
	// The whole derivation fails; the table is left unchanged.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUndefinedStatistic is returned for statistics that have no value,
	// e.g. the sample standard deviation of fewer than two observations.
	ErrUndefinedStatistic = errors.New("undefined statistic")
)
