// Package sqlerr classifies PostgreSQL driver errors.
//
// It maps SQLSTATE codes to a small set of categories and turns them
// into errs.HTTPError values at the HTTP edge, so a missing food or a
// second open session on the same computer reaches the client as a
// readable 4xx instead of a 500.
package sqlerr

import "fmt"

// Code is the category of a database error.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	InvalidTextRepresentation
	NumericValueOutOfRange
	UndefinedObject
	SerializationFailure
	DeadlockDetected
	QueryCanceled
	ConnectionFailure
)

var codeNames = map[Code]string{
	Other:                     "other",
	NotNullViolation:          "not_null_violation",
	ForeignKeyViolation:       "foreign_key_violation",
	UniqueViolation:           "unique_violation",
	CheckViolation:            "check_violation",
	InvalidTextRepresentation: "invalid_text_representation",
	NumericValueOutOfRange:    "numeric_value_out_of_range",
	UndefinedObject:           "undefined_object",
	SerializationFailure:      "serialization_failure",
	DeadlockDetected:          "deadlock_detected",
	QueryCanceled:             "query_canceled",
	ConnectionFailure:         "connection_failure",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "22003":
		return NumericValueOutOfRange
	case "42P01", "42883", "42703":
		// undefined table, function, column
		return UndefinedObject
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "57014":
		return QueryCanceled
	}

	// class 08: connection exception
	if len(sqlstate) == 5 && sqlstate[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// Severity is the PostgreSQL message severity.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// MapSeverity maps the severity field of a server message. Unknown
// values read as SeverityError.
func MapSeverity(severity string) Severity {
	switch severity {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// Error is a classified server error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (SQLSTATE %s): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
