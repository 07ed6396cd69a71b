// Package sqlerr specifically handles database driver errors.
//
// It classifies errors coming back from pgx so the service layer can answer
// with the right status, and exposes the Postgres diagnostics (SQLSTATE,
// table, constraint) for logging. Clients never see those details.
package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/errs"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}

	var src *pgconn.PgError
	if errors.As(err, &src) {
		return MapCode(src.Code)
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
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

// generateErrorCode creates "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	items + NotNullViolation => ITEM_REQUIRED
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// "ITEMS" -> "ITEM"
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case UndefinedTable:
		action = "TABLE_MISSING"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If ErrNoRows: errs.NewNotFoundError
//   - If pgconn.PgError: errs.NewInternalServerError carrying a derived code
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError(errs.MessageNotFound)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		return errs.NewInternalServerError().WithCode(generateErrorCode(sqlErr.TableName, sqlErr.Code))
	}

	return errs.NewInternalServerError()
}

// WithDetails adds Postgres diagnostics of err, if any, to a log event.
func WithDetails(e *zerolog.Event, err error) *zerolog.Event {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return e
	}

	sqlErr := ConvertPgError(pgerr)
	e = e.Str("sqlstate", sqlErr.DatabaseCode).
		Str("sql_code", string(sqlErr.Code)).
		Str("sql_severity", string(sqlErr.Severity))

	if sqlErr.TableName != "" {
		e = e.Str("sql_table", sqlErr.TableName)
	}
	if sqlErr.ConstraintName != "" {
		e = e.Str("sql_constraint", sqlErr.ConstraintName)
	}
	return e
}
