package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// entityNames gives the client-facing name of each table. PostgreSQL
// reports unquoted identifiers in lower case.
var entityNames = map[string]string{
	"computer":     "computer",
	"category":     "category",
	"food":         "food",
	"usagesession": "billing",
	"fooddetail":   "order line",
}

// columnEntities resolves the entity a referencing column points at.
var columnEntities = map[string]string{
	"computerid": "computer",
	"categoryid": "category",
	"foodid":     "food",
	"billingid":  "billing",
}

var constraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey|fkey|check)$`)

// ErrCode reports the Code of err, or Other when err is not a classified
// database error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError classifies a server error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// entityName picks the referenced entity from the column, falling back
// to the table.
func entityName(tableName, columnName string) string {
	if name, ok := columnEntities[strings.ToLower(columnName)]; ok {
		return name
	}
	if name, ok := entityNames[strings.ToLower(tableName)]; ok {
		return name
	}
	if tableName != "" {
		return strings.ToLower(tableName)
	}
	return "record"
}

// generateErrorCode builds codes like FOOD_NOT_FOUND or BILLING_ALREADY_EXISTS.
func generateErrorCode(entity string, code Code) string {
	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))
	return fmt.Sprintf("%s_%s", domain, action)
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// columnFromConstraint reads the column out of names like fooddetail_foodid_fkey.
func columnFromConstraint(constraintName string) string {
	matches := constraintColumn.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts an error coming out of a repository into an
// *errs.HTTPError. HTTP errors pass through untouched.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(ConvertPgError(pgErr))
	}

	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connErr), pgconn.SafeToRetry(err):
		return errs.NewServiceUnavailableError("Database is unavailable")
	case errors.Is(err, pgx.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", false, nil)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewServiceUnavailableError("Database did not respond in time")
	}

	return errs.NewInternalServerError()
}

func fromPgError(sqlErr *Error) error {
	column := sqlErr.ColumnName
	if column == "" {
		column = columnFromConstraint(sqlErr.ConstraintName)
	}

	switch sqlErr.Code {
	case ForeignKeyViolation:
		entity := entityName("", column)
		code := generateErrorCode(entity, sqlErr.Code)
		return errs.NewBadRequestError(fmt.Sprintf("The referenced %s does not exist", entity), true, &code, nil)

	case UniqueViolation:
		entity := entityName(sqlErr.TableName, "")
		code := generateErrorCode(entity, sqlErr.Code)
		if entity == "billing" {
			return errs.NewConflictError("This computer already has an open billing", code)
		}
		return errs.NewConflictError(fmt.Sprintf("A %s with this %s already exists", entity, humanizeText(column)), code)

	case NotNullViolation:
		entity := entityName(sqlErr.TableName, "")
		code := generateErrorCode(entity, sqlErr.Code)
		field := strings.ToLower(column)
		return errs.NewBadRequestError(
			fmt.Sprintf("The %s is required", humanizeText(field)), true, &code,
			[]errs.FieldError{{Field: field, Error: "is required"}},
		)

	case CheckViolation:
		entity := entityName(sqlErr.TableName, "")
		code := generateErrorCode(entity, sqlErr.Code)
		if column == "" {
			return errs.NewBadRequestError("One or more values do not meet required conditions", true, &code, nil)
		}
		return errs.NewBadRequestError(
			fmt.Sprintf("The %s value does not meet required conditions", humanizeText(column)), true, &code, nil)

	case InvalidTextRepresentation, NumericValueOutOfRange:
		return errs.NewBadRequestError("A value has the wrong format or is out of range", true, nil, nil)

	case ConnectionFailure:
		return errs.NewServiceUnavailableError("Database is unavailable")

	default:
		return errs.NewInternalServerError()
	}
}
