package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/machparse/ast"
)

func TestParseSetOpUnion(t *testing.T) {
	p := New("SELECT id, 1 FROM Vote UNION SELECT id, stars FROM Rating")
	stmt, err := p.Parse()
	require.NoError(t, err)

	setOp, ok := stmt.(*ast.SetOp)
	require.True(t, ok, "expected *ast.SetOp, got %T", stmt)
	assert.Equal(t, ast.Union, setOp.Type)
	assert.False(t, setOp.All)

	left, ok := setOp.Left.(*ast.SelectStmt)
	require.True(t, ok)
	assert.Len(t, left.Columns, 2)

	right, ok := setOp.Right.(*ast.SelectStmt)
	require.True(t, ok)
	assert.Len(t, right.Columns, 2)
}

func TestParseSetOpChain(t *testing.T) {
	p := New("SELECT a FROM t1 UNION ALL SELECT a FROM t2 UNION SELECT a FROM t3 ORDER BY a LIMIT 10")
	stmt, err := p.Parse()
	require.NoError(t, err)

	outer, ok := stmt.(*ast.SetOp)
	require.True(t, ok)
	assert.Equal(t, ast.Union, outer.Type)
	assert.False(t, outer.All)
	require.Len(t, outer.OrderBy, 1)
	require.NotNil(t, outer.Limit)

	inner, ok := outer.Left.(*ast.SetOp)
	require.True(t, ok, "expected left-associative nesting, got %T", outer.Left)
	assert.True(t, inner.All)
}

func TestParseSetVariable(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SET @@GLOBAL.max_connections = 200", "@@GLOBAL.max_connections"},
		{"SET @my_var = 1", "@my_var"},
		{"SET autocommit = 0", "autocommit"},
	}
	for _, tt := range tests {
		p := New(tt.input)
		stmt, err := p.Parse()
		require.NoError(t, err, tt.input)
		set, ok := stmt.(*ast.SetStmt)
		require.True(t, ok, "expected *ast.SetStmt, got %T", stmt)
		assert.Equal(t, tt.want, set.Variable)
	}
}

func TestParseRenameTable(t *testing.T) {
	p := New("RENAME TABLE old1 TO new1, old2 TO new2")
	stmt, err := p.Parse()
	require.NoError(t, err)
	rename, ok := stmt.(*ast.RenameTableStmt)
	require.True(t, ok)
	require.Len(t, rename.Pairs, 2)
	assert.Equal(t, "old1", rename.Pairs[0].Old.Name())
	assert.Equal(t, "new2", rename.Pairs[1].New.Name())
}

func TestParseCreateDatabase(t *testing.T) {
	p := New("CREATE DATABASE IF NOT EXISTS shop CHARACTER SET = utf8mb4 COLLATE = utf8mb4_unicode_ci")
	stmt, err := p.Parse()
	require.NoError(t, err)
	db, ok := stmt.(*ast.CreateDatabaseStmt)
	require.True(t, ok)
	assert.True(t, db.IfNotExists)
	assert.Equal(t, "shop", db.Name)
	assert.Equal(t, "utf8mb4", db.CharacterSet)
	assert.Equal(t, "utf8mb4_unicode_ci", db.Collate)
}

func TestParseDropObjectKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.ObjectKind
	}{
		{"DROP VIEW IF EXISTS v1", ast.ObjView},
		{"DROP TRIGGER trg1", ast.ObjTrigger},
		{"DROP PROCEDURE proc1", ast.ObjProcedure},
		{"DROP FUNCTION func1", ast.ObjFunction},
		{"DROP SERVER srv1", ast.ObjServer},
		{"DROP EVENT ev1", ast.ObjEvent},
	}
	for _, tt := range tests {
		p := New(tt.input)
		stmt, err := p.Parse()
		require.NoError(t, err, tt.input)
		drop, ok := stmt.(*ast.DropObjectStmt)
		require.True(t, ok, tt.input)
		assert.Equal(t, tt.kind, drop.Kind)
	}
}

func TestParseDropTablespaceAndSRS(t *testing.T) {
	p := New("DROP UNDO TABLESPACE ts1 ENGINE = InnoDB")
	stmt, err := p.Parse()
	require.NoError(t, err)
	drop, ok := stmt.(*ast.DropObjectStmt)
	require.True(t, ok)
	assert.True(t, drop.Undo)
	assert.Equal(t, []string{"ts1"}, drop.Names)

	p2 := New("DROP SPATIAL REFERENCE SYSTEM IF EXISTS 4326")
	stmt2, err := p2.Parse()
	require.NoError(t, err)
	srs, ok := stmt2.(*ast.DropObjectStmt)
	require.True(t, ok)
	assert.Equal(t, ast.ObjSRS, srs.Kind)
	assert.True(t, srs.IfExists)
	assert.EqualValues(t, 4326, srs.SRID)
}

func TestParseCreateView(t *testing.T) {
	p := New("CREATE OR REPLACE VIEW active_users AS SELECT id FROM users WHERE active = 1 WITH CASCADED CHECK OPTION")
	stmt, err := p.Parse()
	require.NoError(t, err)
	view, ok := stmt.(*ast.CreateViewStmt)
	require.True(t, ok)
	assert.True(t, view.OrReplace)
	assert.Equal(t, "active_users", view.View.Name())
	assert.Equal(t, "CASCADED", view.CheckOption)
	require.NotNil(t, view.As)
}

func TestParseCreateTrigger(t *testing.T) {
	p := New("CREATE DEFINER = 'admin'@'localhost' TRIGGER before_ins BEFORE INSERT ON orders FOR EACH ROW SET NEW.created_at = NOW()")
	stmt, err := p.Parse()
	require.NoError(t, err)
	trg, ok := stmt.(*ast.CreateTriggerStmt)
	require.True(t, ok)
	assert.Equal(t, "'admin'@'localhost'", trg.Definer)
	assert.True(t, trg.Before)
	assert.Equal(t, "orders", trg.Table.Name())
	assert.NotEmpty(t, trg.Body)
}

func TestParseCreateRoutine(t *testing.T) {
	p := New("CREATE FUNCTION double_it(n INT) RETURNS INT DETERMINISTIC RETURN n * 2")
	stmt, err := p.Parse()
	require.NoError(t, err)
	fn, ok := stmt.(*ast.CreateRoutineStmt)
	require.True(t, ok)
	assert.True(t, fn.Function)
	require.NotNil(t, fn.Returns)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Name)
	assert.Contains(t, fn.Characteristics, "DETERMINISTIC")
	assert.NotEmpty(t, fn.Body)
}

func TestParseCreateEvent(t *testing.T) {
	p := New("CREATE EVENT IF NOT EXISTS purge_logs ON SCHEDULE EVERY 1 DAY ON COMPLETION PRESERVE DO DELETE FROM logs WHERE created_at < NOW()")
	stmt, err := p.Parse()
	require.NoError(t, err)
	ev, ok := stmt.(*ast.CreateEventStmt)
	require.True(t, ok)
	assert.True(t, ev.IfNotExists)
	require.NotNil(t, ev.OnCompletionPreserve)
	assert.True(t, *ev.OnCompletionPreserve)
	assert.NotEmpty(t, ev.Body)
}

func TestParseCreateServer(t *testing.T) {
	p := New("CREATE SERVER s1 FOREIGN DATA WRAPPER mysql OPTIONS (HOST '127.0.0.1', PORT '3306')")
	stmt, err := p.Parse()
	require.NoError(t, err)
	srv, ok := stmt.(*ast.CreateServerStmt)
	require.True(t, ok)
	assert.Equal(t, "mysql", srv.Wrapper)
	require.Len(t, srv.Options, 2)
	assert.Equal(t, "HOST", srv.Options[0].Name)
}

func TestParseCreateTablespace(t *testing.T) {
	p := New("CREATE TABLESPACE ts1 ADD DATAFILE 'ts1.ibd' ENGINE = InnoDB")
	stmt, err := p.Parse()
	require.NoError(t, err)
	ts, ok := stmt.(*ast.CreateTablespaceStmt)
	require.True(t, ok)
	assert.Equal(t, "ts1.ibd", ts.Datafile)
	require.Len(t, ts.Options, 1)
	assert.Equal(t, "ENGINE", ts.Options[0].Name)
}

func TestParseCreateSRS(t *testing.T) {
	p := New("CREATE SPATIAL REFERENCE SYSTEM 4326 NAME 'WGS 84' DEFINITION 'GEOGCS[...]'")
	stmt, err := p.Parse()
	require.NoError(t, err)
	srs, ok := stmt.(*ast.CreateSRSStmt)
	require.True(t, ok)
	assert.EqualValues(t, 4326, srs.SRID)
	assert.Equal(t, "WGS 84", srs.Name)
}
