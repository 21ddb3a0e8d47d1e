package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/tutorial-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TablePrefix marks the table name inside wrapped no-rows errors, e.g.
// "get tutorial id=7 table:tutorials: no rows in result set".
const TablePrefix = "table:"

// ConvertPgError converts a raw Postgres error into an Error.
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

// IsNoRows reports whether err signals a missing row from either driver.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// HandleError converts a low-level database error into an application error.
// HTTP errors pass through, constraint violations become 400s, missing rows
// become 404s and anything else is a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return constraintError(ConvertPgError(pgErr))
	}

	if IsNoRows(err) {
		return notFoundError(err)
	}

	return errs.NewInternalServerError()
}

func constraintError(sqlErr *Error) error {
	entity := entityName(sqlErr.TableName)
	column := humanize(constraintColumn(sqlErr))

	var action, message string
	var fieldErrors []errs.FieldError

	switch sqlErr.Code {
	case UniqueViolation:
		action = "ALREADY_EXISTS"
		if column == "" {
			column = "identifier"
		}
		message = fmt.Sprintf("A %s with this %s already exists", entity, column)

	case NotNullViolation:
		action = "REQUIRED"
		if column == "" {
			column = "field"
		}
		message = fmt.Sprintf("The %s is required", column)
		fieldErrors = []errs.FieldError{{
			Field: strings.ToLower(sqlErr.ColumnName),
			Error: "is required",
		}}

	case CheckViolation:
		action = "INVALID"
		message = "One or more values do not meet required conditions"
		if column != "" {
			message = fmt.Sprintf("The %s value does not meet required conditions", column)
		}

	default:
		return errs.NewInternalServerError()
	}

	code := strings.ToUpper(strings.ReplaceAll(entity, " ", "_")) + "_" + action
	return errs.NewBadRequestError(message, true, &code, fieldErrors, nil)
}

func notFoundError(err error) error {
	_, rest, ok := strings.Cut(err.Error(), TablePrefix)
	if !ok {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	table, _, _ := strings.Cut(rest, ":")
	return errs.NewNotFoundError(entityName(table)+" not found", true, nil)
}

// entityName singularizes a table name: "tutorials" -> "Tutorial".
func entityName(table string) string {
	if len(table) > 1 {
		table = strings.TrimSuffix(table, "s")
	}
	if table == "" {
		return "Record"
	}
	return humanize(table)
}

// constraintColumn prefers the reported column and otherwise derives it from
// constraint names like "tutorials_title_key" or "unique_tutorials_title".
func constraintColumn(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := strings.TrimPrefix(sqlErr.ConstraintName, "unique_")
	if sqlErr.TableName != "" {
		name = strings.TrimPrefix(name, sqlErr.TableName+"_")
	}
	for _, suffix := range []string{"_key", "_ukey", "_check"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// humanize converts "is_published" into "Is Published".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
