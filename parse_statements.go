package machparse

import (
	"fmt"

	"github.com/freeeve/machparse/ast"
)

// parseAs parses sql and asserts the result is of type T, returning a
// *ParseError both when the input fails to parse and when it parses to a
// different statement kind than the caller asked for.
func parseAs[T ast.Statement](sql string) (T, *ParseError) {
	var zero T
	stmt, perr := ParseWithConfig(ParseConfig{}, sql)
	if perr != nil {
		return zero, perr
	}
	typed, ok := stmt.(T)
	if !ok {
		return zero, &ParseError{Message: fmt.Sprintf("expected %T, got %T", zero, stmt)}
	}
	return typed, nil
}

// ParseSelect parses a single SELECT statement. A compound SELECT
// (UNION/INTERSECT/EXCEPT) is not a *ast.SelectStmt; use Parse for those.
func ParseSelect(sql string) (*ast.SelectStmt, *ParseError) { return parseAs[*ast.SelectStmt](sql) }

// ParseInsert parses a single INSERT (or REPLACE) statement.
func ParseInsert(sql string) (*ast.InsertStmt, *ParseError) { return parseAs[*ast.InsertStmt](sql) }

// ParseUpdate parses a single UPDATE statement.
func ParseUpdate(sql string) (*ast.UpdateStmt, *ParseError) { return parseAs[*ast.UpdateStmt](sql) }

// ParseDelete parses a single DELETE statement.
func ParseDelete(sql string) (*ast.DeleteStmt, *ParseError) { return parseAs[*ast.DeleteStmt](sql) }

// ParseSet parses a single SET variable = value statement.
func ParseSet(sql string) (*ast.SetStmt, *ParseError) { return parseAs[*ast.SetStmt](sql) }

// ParseSetOp parses a compound SELECT joined by UNION/INTERSECT/EXCEPT.
func ParseSetOp(sql string) (*ast.SetOp, *ParseError) { return parseAs[*ast.SetOp](sql) }

// ParseCreateTable parses a single CREATE TABLE statement.
func ParseCreateTable(sql string) (*ast.CreateTableStmt, *ParseError) {
	return parseAs[*ast.CreateTableStmt](sql)
}

// ParseAlterTable parses a single ALTER TABLE statement.
func ParseAlterTable(sql string) (*ast.AlterTableStmt, *ParseError) {
	return parseAs[*ast.AlterTableStmt](sql)
}

// ParseDropTable parses a single DROP TABLE statement.
func ParseDropTable(sql string) (*ast.DropTableStmt, *ParseError) {
	return parseAs[*ast.DropTableStmt](sql)
}

// ParseCreateIndex parses a single CREATE INDEX statement.
func ParseCreateIndex(sql string) (*ast.CreateIndexStmt, *ParseError) {
	return parseAs[*ast.CreateIndexStmt](sql)
}

// ParseDropIndex parses a single DROP INDEX statement.
func ParseDropIndex(sql string) (*ast.DropIndexStmt, *ParseError) {
	return parseAs[*ast.DropIndexStmt](sql)
}

// ParseTruncateTable parses a single TRUNCATE [TABLE] statement.
func ParseTruncateTable(sql string) (*ast.TruncateStmt, *ParseError) {
	return parseAs[*ast.TruncateStmt](sql)
}

// ParseRenameTable parses a single RENAME TABLE statement.
func ParseRenameTable(sql string) (*ast.RenameTableStmt, *ParseError) {
	return parseAs[*ast.RenameTableStmt](sql)
}

// ParseCreateDatabase parses a single CREATE DATABASE/SCHEMA statement.
func ParseCreateDatabase(sql string) (*ast.CreateDatabaseStmt, *ParseError) {
	return parseAs[*ast.CreateDatabaseStmt](sql)
}

// ParseAlterDatabase parses a single ALTER DATABASE/SCHEMA statement.
func ParseAlterDatabase(sql string) (*ast.AlterDatabaseStmt, *ParseError) {
	return parseAs[*ast.AlterDatabaseStmt](sql)
}

// ParseCreateView parses a single CREATE VIEW statement.
func ParseCreateView(sql string) (*ast.CreateViewStmt, *ParseError) {
	return parseAs[*ast.CreateViewStmt](sql)
}

// ParseCreateTrigger parses a single CREATE TRIGGER statement.
func ParseCreateTrigger(sql string) (*ast.CreateTriggerStmt, *ParseError) {
	return parseAs[*ast.CreateTriggerStmt](sql)
}

// ParseCreateRoutine parses a single CREATE PROCEDURE or CREATE FUNCTION
// statement.
func ParseCreateRoutine(sql string) (*ast.CreateRoutineStmt, *ParseError) {
	return parseAs[*ast.CreateRoutineStmt](sql)
}

// ParseCreateEvent parses a single CREATE EVENT statement.
func ParseCreateEvent(sql string) (*ast.CreateEventStmt, *ParseError) {
	return parseAs[*ast.CreateEventStmt](sql)
}

// ParseAlterEvent parses a single ALTER EVENT statement.
func ParseAlterEvent(sql string) (*ast.AlterEventStmt, *ParseError) {
	return parseAs[*ast.AlterEventStmt](sql)
}

// ParseCreateServer parses a single CREATE SERVER statement.
func ParseCreateServer(sql string) (*ast.CreateServerStmt, *ParseError) {
	return parseAs[*ast.CreateServerStmt](sql)
}

// ParseAlterServer parses a single ALTER SERVER statement.
func ParseAlterServer(sql string) (*ast.AlterServerStmt, *ParseError) {
	return parseAs[*ast.AlterServerStmt](sql)
}

// ParseCreateTablespace parses a single CREATE [UNDO] TABLESPACE statement.
func ParseCreateTablespace(sql string) (*ast.CreateTablespaceStmt, *ParseError) {
	return parseAs[*ast.CreateTablespaceStmt](sql)
}

// ParseCreateLogfileGroup parses a single CREATE LOGFILE GROUP statement.
func ParseCreateLogfileGroup(sql string) (*ast.CreateLogfileGroupStmt, *ParseError) {
	return parseAs[*ast.CreateLogfileGroupStmt](sql)
}

// ParseCreateSRS parses a single CREATE SPATIAL REFERENCE SYSTEM statement.
func ParseCreateSRS(sql string) (*ast.CreateSRSStmt, *ParseError) {
	return parseAs[*ast.CreateSRSStmt](sql)
}

// ParseDropObject parses a single DROP statement for any of the object
// kinds that share ast.DropObjectStmt's shape: DATABASE, VIEW, TRIGGER,
// SERVER, EVENT, PROCEDURE, FUNCTION, LOGFILE GROUP, SPATIAL REFERENCE
// SYSTEM, and TABLESPACE. DROP TABLE and DROP INDEX have their own richer
// grammars and entry points (ParseDropTable, ParseDropIndex) instead.
func ParseDropObject(sql string) (*ast.DropObjectStmt, *ParseError) {
	return parseAs[*ast.DropObjectStmt](sql)
}
