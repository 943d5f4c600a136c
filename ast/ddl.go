package ast

import "github.com/freeeve/machparse/token"

// SetStmt represents SET variable = value (session/global variable assignment).
type SetStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Variable string // bare name, @name, or @@[GLOBAL|SESSION.]name, verbatim
	Value    Expr
}

func (*SetStmt) statementNode()   {}
func (s *SetStmt) Pos() token.Pos { return s.StartPos }
func (s *SetStmt) End() token.Pos { return s.EndPos }

// RenamePair is one "old TO new" entry of a RENAME TABLE statement.
type RenamePair struct {
	Old *TableName
	New *TableName
}

// RenameTableStmt represents RENAME TABLE old1 TO new1 [, old2 TO new2]...
type RenameTableStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Pairs    []*RenamePair
}

func (*RenameTableStmt) statementNode()   {}
func (r *RenameTableStmt) Pos() token.Pos { return r.StartPos }
func (r *RenameTableStmt) End() token.Pos { return r.EndPos }

// CreateDatabaseStmt represents CREATE DATABASE|SCHEMA.
type CreateDatabaseStmt struct {
	StartPos     token.Pos
	EndPos       token.Pos
	IfNotExists  bool
	Name         string
	CharacterSet string
	Collate      string
	Encryption   string // 'Y' or 'N'
}

func (*CreateDatabaseStmt) statementNode()   {}
func (c *CreateDatabaseStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateDatabaseStmt) End() token.Pos { return c.EndPos }

// AlterDatabaseStmt represents ALTER DATABASE|SCHEMA.
type AlterDatabaseStmt struct {
	StartPos     token.Pos
	EndPos       token.Pos
	Name         string
	CharacterSet string
	Collate      string
	Encryption   string
	ReadOnly     *bool
}

func (*AlterDatabaseStmt) statementNode()   {}
func (a *AlterDatabaseStmt) Pos() token.Pos { return a.StartPos }
func (a *AlterDatabaseStmt) End() token.Pos { return a.EndPos }

// ObjectKind identifies the kind of object a DROP (and some CREATE) statements target.
type ObjectKind int

const (
	ObjDatabase ObjectKind = iota
	ObjView
	ObjTrigger
	ObjServer
	ObjTablespace
	ObjEvent
	ObjProcedure
	ObjFunction
	ObjLogfileGroup
	ObjSRS
)

// String returns the canonical uppercase keyword for the object kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjDatabase:
		return "DATABASE"
	case ObjView:
		return "VIEW"
	case ObjTrigger:
		return "TRIGGER"
	case ObjServer:
		return "SERVER"
	case ObjTablespace:
		return "TABLESPACE"
	case ObjEvent:
		return "EVENT"
	case ObjProcedure:
		return "PROCEDURE"
	case ObjFunction:
		return "FUNCTION"
	case ObjLogfileGroup:
		return "LOGFILE GROUP"
	case ObjSRS:
		return "SPATIAL REFERENCE SYSTEM"
	}
	return "UNKNOWN"
}

// DropObjectStmt represents the members of the DROP family that share the
// simple "DROP <KIND> [IF EXISTS] name [, name...]" shape: DATABASE, VIEW,
// TRIGGER, SERVER, EVENT, PROCEDURE, FUNCTION, LOGFILE GROUP. DROP TABLE and
// DROP INDEX keep their own richer statement types (see statement.go); DROP
// TABLESPACE and DROP SPATIAL REFERENCE SYSTEM reuse this type via the Undo
// and SRID fields since their tails differ only slightly.
type DropObjectStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Kind     ObjectKind
	IfExists bool
	Names    []string
	Undo     bool  // DROP TABLESPACE ... UNDO
	SRID     int64 // DROP SPATIAL REFERENCE SYSTEM <srid>
}

func (*DropObjectStmt) statementNode()   {}
func (d *DropObjectStmt) Pos() token.Pos { return d.StartPos }
func (d *DropObjectStmt) End() token.Pos { return d.EndPos }

// CreateViewStmt represents CREATE [OR REPLACE] VIEW.
type CreateViewStmt struct {
	StartPos    token.Pos
	EndPos      token.Pos
	OrReplace   bool
	Algorithm   string // UNDEFINED, MERGE, TEMPTABLE
	Definer     string
	SQLSecurity string // DEFINER, INVOKER
	View        *TableName
	Columns     []string
	As          *SelectStmt
	CheckOption string // CASCADED, LOCAL, "" when absent
}

func (*CreateViewStmt) statementNode()   {}
func (c *CreateViewStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateViewStmt) End() token.Pos { return c.EndPos }

// TriggerOrder represents the optional FOLLOWS/PRECEDES clause of CREATE TRIGGER.
type TriggerOrder struct {
	Precedes     bool // true for PRECEDES, false for FOLLOWS
	OtherTrigger string
}

// CreateTriggerStmt represents CREATE TRIGGER.
type CreateTriggerStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Definer  string
	Name     string
	Before   bool   // true = BEFORE, false = AFTER
	Event    string // INSERT, UPDATE, DELETE
	Table    *TableName
	Order    *TriggerOrder
	Body     string // verbatim trigger body statement(s)
}

func (*CreateTriggerStmt) statementNode()   {}
func (c *CreateTriggerStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateTriggerStmt) End() token.Pos { return c.EndPos }

// RoutineParam is one parameter of a stored procedure or function.
type RoutineParam struct {
	Mode string // IN, OUT, INOUT ("" for function params, which are always IN)
	Name string
	Type *DataType
}

// CreateRoutineStmt represents CREATE PROCEDURE or CREATE FUNCTION.
type CreateRoutineStmt struct {
	StartPos        token.Pos
	EndPos          token.Pos
	Function        bool // true = FUNCTION, false = PROCEDURE
	Definer         string
	Name            string
	Params          []*RoutineParam
	Returns         *DataType // non-nil only for FUNCTION
	Characteristics []string  // DETERMINISTIC, CONTAINS SQL, READS SQL DATA, ... verbatim
	Body            string    // verbatim routine body
}

func (*CreateRoutineStmt) statementNode()   {}
func (c *CreateRoutineStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateRoutineStmt) End() token.Pos { return c.EndPos }

// CreateEventStmt represents CREATE EVENT.
type CreateEventStmt struct {
	StartPos             token.Pos
	EndPos               token.Pos
	IfNotExists          bool
	Definer              string
	Name                 string
	Schedule             string // verbatim "AT ..." or "EVERY ... [STARTS ...] [ENDS ...]" text
	OnCompletionPreserve *bool
	Status               string // ENABLE, DISABLE, "DISABLE ON SLAVE", "" when absent
	Comment              string
	Body                 string // verbatim DO <statement>
}

func (*CreateEventStmt) statementNode()   {}
func (c *CreateEventStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateEventStmt) End() token.Pos { return c.EndPos }

// AlterEventStmt represents ALTER EVENT.
type AlterEventStmt struct {
	StartPos             token.Pos
	EndPos               token.Pos
	Name                 string
	Definer              string
	Schedule             string
	OnCompletionPreserve *bool
	RenameTo             string
	Status               string
	Comment              string
	Body                 string
}

func (*AlterEventStmt) statementNode()   {}
func (a *AlterEventStmt) Pos() token.Pos { return a.StartPos }
func (a *AlterEventStmt) End() token.Pos { return a.EndPos }

// ServerOption is one NAME 'value' pair inside CREATE/ALTER SERVER ... OPTIONS (...).
type ServerOption struct {
	Name  string
	Value string
}

// CreateServerStmt represents CREATE SERVER ... FOREIGN DATA WRAPPER ... OPTIONS (...).
type CreateServerStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Wrapper  string
	Options  []*ServerOption
}

func (*CreateServerStmt) statementNode()   {}
func (c *CreateServerStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateServerStmt) End() token.Pos { return c.EndPos }

// AlterServerStmt represents ALTER SERVER ... OPTIONS (...).
type AlterServerStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Options  []*ServerOption
}

func (*AlterServerStmt) statementNode()   {}
func (a *AlterServerStmt) Pos() token.Pos { return a.StartPos }
func (a *AlterServerStmt) End() token.Pos { return a.EndPos }

// CreateTablespaceStmt represents CREATE [UNDO] TABLESPACE ... ADD DATAFILE ...
type CreateTablespaceStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Undo     bool
	Name     string
	Datafile string
	Options  []*TableOption
}

func (*CreateTablespaceStmt) statementNode()   {}
func (c *CreateTablespaceStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateTablespaceStmt) End() token.Pos { return c.EndPos }

// CreateLogfileGroupStmt represents CREATE LOGFILE GROUP ... ADD UNDOFILE ...
type CreateLogfileGroupStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Undofile string
	Options  []*TableOption
}

func (*CreateLogfileGroupStmt) statementNode()   {}
func (c *CreateLogfileGroupStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateLogfileGroupStmt) End() token.Pos { return c.EndPos }

// CreateSRSStmt represents CREATE [OR REPLACE] SPATIAL REFERENCE SYSTEM srid ...
type CreateSRSStmt struct {
	StartPos     token.Pos
	EndPos       token.Pos
	OrReplace    bool
	IfNotExists  bool
	SRID         int64
	Name         string
	Definition   string
	Organization string
	OrgID        *int64
	Description  string
}

func (*CreateSRSStmt) statementNode()   {}
func (c *CreateSRSStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateSRSStmt) End() token.Pos { return c.EndPos }
