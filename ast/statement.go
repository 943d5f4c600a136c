package ast

import "github.com/freeeve/machparse/token"

// SelectStmt represents a SELECT statement.
type SelectStmt struct {
	StartPos   token.Pos
	EndPos     token.Pos
	With       *WithClause    // WITH clause (CTEs)
	Distinct   bool           // DISTINCT
	Columns    []SelectExpr   // SELECT expressions
	From       TableExpr      // FROM clause
	Where      Expr           // WHERE clause (optional)
	GroupBy    []Expr         // GROUP BY expressions
	Having     Expr           // HAVING clause (optional)
	OrderBy    []*OrderByExpr // ORDER BY expressions
	Limit      *Limit         // LIMIT clause (optional)
	Lock       string         // FOR UPDATE, etc.
	Into       *SelectInto    // INTO clause (optional)
	WindowDefs []*WindowDef   // WINDOW definitions
}

func (*SelectStmt) statementNode()   {}
func (s *SelectStmt) Pos() token.Pos { return s.StartPos }
func (s *SelectStmt) End() token.Pos { return s.EndPos }

// SelectInto represents SELECT ... INTO.
type SelectInto struct {
	Outfile  string
	Dumpfile string
	Vars     []string
}

// InsertStmt represents an INSERT statement.
type InsertStmt struct {
	StartPos          token.Pos
	EndPos            token.Pos
	With              *WithClause // WITH clause (CTEs)
	Replace           bool        // REPLACE INTO (MySQL)
	Ignore            bool        // INSERT IGNORE (MySQL)
	Table             *TableName
	Columns           []*ColName    // Column list (optional)
	Values            [][]Expr      // VALUES rows
	Select            *SelectStmt   // INSERT ... SELECT
	OnDuplicateUpdate []*UpdateExpr // ON DUPLICATE KEY UPDATE (MySQL)
}

func (*InsertStmt) statementNode()   {}
func (i *InsertStmt) Pos() token.Pos { return i.StartPos }
func (i *InsertStmt) End() token.Pos { return i.EndPos }

// UpdateStmt represents an UPDATE statement.
type UpdateStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	With     *WithClause // WITH clause (CTEs)
	Table    TableExpr
	Set      []*UpdateExpr
	Where    Expr
	OrderBy  []*OrderByExpr // MySQL extension
	Limit    *Limit         // MySQL extension
}

func (*UpdateStmt) statementNode()   {}
func (u *UpdateStmt) Pos() token.Pos { return u.StartPos }
func (u *UpdateStmt) End() token.Pos { return u.EndPos }

// UpdateExpr represents SET column = value.
type UpdateExpr struct {
	Column *ColName
	Expr   Expr
}

// DeleteStmt represents a DELETE statement.
type DeleteStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	With     *WithClause // WITH clause (CTEs)
	Table    TableExpr
	Where    Expr
	OrderBy  []*OrderByExpr // MySQL extension
	Limit    *Limit         // MySQL extension
}

func (*DeleteStmt) statementNode()   {}
func (d *DeleteStmt) Pos() token.Pos { return d.StartPos }
func (d *DeleteStmt) End() token.Pos { return d.EndPos }

// SetOp represents UNION/INTERSECT/EXCEPT.
type SetOp struct {
	StartPos token.Pos
	EndPos   token.Pos
	With     *WithClause // WITH clause attached to the whole compound statement
	Type     SetOpType   // UNION, INTERSECT, EXCEPT
	All      bool
	Left     Statement
	Right    Statement
	OrderBy  []*OrderByExpr
	Limit    *Limit
}

// SetOpType indicates the type of set operation.
type SetOpType int

const (
	Union SetOpType = iota
	Intersect
	Except
)

func (*SetOp) statementNode()   {}
func (s *SetOp) Pos() token.Pos { return s.StartPos }
func (s *SetOp) End() token.Pos { return s.EndPos }

// WithClause represents a WITH clause (common table expressions).
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE represents a single common table expression.
type CTE struct {
	Name    string
	Columns []string
	Query   Statement
}

// CreateTableStmt represents CREATE TABLE.
type CreateTableStmt struct {
	StartPos    token.Pos
	EndPos      token.Pos
	IfNotExists bool
	Temporary   bool
	Table       *TableName
	Columns     []*ColumnDef
	Constraints []*TableConstraint
	Options     []*TableOption
	As          *SelectStmt // CREATE TABLE AS SELECT
}

func (*CreateTableStmt) statementNode()   {}
func (c *CreateTableStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateTableStmt) End() token.Pos { return c.EndPos }

// ColumnDef represents a column definition.
type ColumnDef struct {
	Name        string
	Type        *DataType
	Constraints []*ColumnConstraint
}

// DataType represents a SQL data type.
type DataType struct {
	Name      string // INT, VARCHAR, etc.
	Length    *int   // VARCHAR(255)
	Precision *int   // DECIMAL(10,2)
	Scale     *int
	Unsigned  bool   // MySQL UNSIGNED
	Charset   string // MySQL CHARACTER SET
	Collation string // COLLATE
}

// ColumnConstraint represents a column-level constraint.
type ColumnConstraint struct {
	Name       string // optional constraint name
	Type       ConstraintType
	NotNull    bool
	Default    Expr
	Check      Expr
	References *ForeignKeyRef
	Generated  *GeneratedColumn
}

// ConstraintType indicates the type of constraint.
type ConstraintType int

const (
	ConstraintPrimaryKey ConstraintType = iota
	ConstraintUnique
	ConstraintNotNull
	ConstraintDefault
	ConstraintCheck
	ConstraintForeignKey
	ConstraintGenerated
	ConstraintFullText
	ConstraintSpatial
	ConstraintIndex // plain INDEX/KEY, carried as a table constraint the way a real key definition is
)

// IndexOption is a single KEY_BLOCK_SIZE/USING/WITH PARSER/COMMENT/VISIBLE/
// ENGINE_ATTRIBUTE/SECONDARY_ENGINE_ATTRIBUTE option on an index or key.
type IndexOption struct {
	Name  string // canonical uppercase option name
	Value string // verbatim value text (already unquoted for strings)
}

// GeneratedColumn represents a generated column specification.
type GeneratedColumn struct {
	Expr   Expr
	Stored bool // STORED vs VIRTUAL
}

// TableConstraint represents a table-level constraint.
type TableConstraint struct {
	Name       string
	Type       ConstraintType
	IndexName  string // name of the INDEX/KEY/FULLTEXT/SPATIAL itself, distinct from Name (CONSTRAINT name)
	Columns    []string
	References *ForeignKeyRef
	Check      Expr
	Enforced   *bool  // CHECK ... [NOT] ENFORCED; nil when unspecified
	Using      string // USING BTREE|HASH
	Options    []*IndexOption
}

// ForeignKeyRef represents foreign key reference.
type ForeignKeyRef struct {
	Table    *TableName
	Columns  []string
	OnDelete RefAction
	OnUpdate RefAction
}

// RefAction indicates foreign key referential action.
type RefAction int

const (
	RefNoAction RefAction = iota
	RefCascade
	RefSetNull
	RefSetDefault
	RefRestrict
)

// TableOption represents a table option.
type TableOption struct {
	Name  string
	Value string
}

// AlterTableStmt represents ALTER TABLE.
type AlterTableStmt struct {
	StartPos  token.Pos
	EndPos    token.Pos
	Table     *TableName
	Actions   []AlterTableAction
	Algorithm string // trailing ALGORITHM [=] {DEFAULT|INPLACE|COPY|INSTANT}
	Lock      string // trailing LOCK [=] {DEFAULT|NONE|SHARED|EXCLUSIVE}
}

func (*AlterTableStmt) statementNode()   {}
func (a *AlterTableStmt) Pos() token.Pos { return a.StartPos }
func (a *AlterTableStmt) End() token.Pos { return a.EndPos }

// AlterTableAction is an interface for ALTER TABLE actions.
type AlterTableAction interface {
	alterTableAction()
}

// AddColumn represents ADD COLUMN.
type AddColumn struct {
	Column *ColumnDef
}

func (*AddColumn) alterTableAction() {}

// DropColumn represents DROP COLUMN.
type DropColumn struct {
	Name     string
	IfExists bool
	Cascade  bool
}

func (*DropColumn) alterTableAction() {}

// ModifyColumn represents MODIFY/ALTER COLUMN.
type ModifyColumn struct {
	Name        string
	NewDef      *ColumnDef
	SetDefault  Expr
	DropDefault bool
	SetNotNull  bool
	DropNotNull bool
}

func (*ModifyColumn) alterTableAction() {}

// RenameColumn represents RENAME COLUMN.
type RenameColumn struct {
	OldName string
	NewName string
}

func (*RenameColumn) alterTableAction() {}

// AddConstraint represents ADD CONSTRAINT.
type AddConstraint struct {
	Constraint *TableConstraint
}

func (*AddConstraint) alterTableAction() {}

// DropConstraint represents DROP CONSTRAINT.
type DropConstraint struct {
	Name     string
	Kind     string // "", "PRIMARY KEY", "FOREIGN KEY", or "CHECK"; "" means a named CONSTRAINT
	IfExists bool
	Cascade  bool
}

func (*DropConstraint) alterTableAction() {}

// RenameTable represents RENAME TO.
type RenameTable struct {
	NewName *TableName
}

func (*RenameTable) alterTableAction() {}

// DropIndex represents DROP INDEX/KEY.
type DropIndex struct {
	Name string
}

func (*DropIndex) alterTableAction() {}

// AlterIndexVisibility represents ALTER INDEX name VISIBLE|INVISIBLE.
type AlterIndexVisibility struct {
	Name    string
	Visible bool
}

func (*AlterIndexVisibility) alterTableAction() {}

// AlterColumnDefault represents ALTER COLUMN name SET DEFAULT expr | DROP DEFAULT.
type AlterColumnDefault struct {
	Name        string
	SetDefault  Expr
	DropDefault bool
}

func (*AlterColumnDefault) alterTableAction() {}

// RenameIndex represents RENAME INDEX|KEY old TO new.
type RenameIndex struct {
	OldName string
	NewName string
}

func (*RenameIndex) alterTableAction() {}

// ConvertToCharset represents CONVERT TO CHARACTER SET name [COLLATE collation].
type ConvertToCharset struct {
	CharacterSet string
	Collate      string
}

func (*ConvertToCharset) alterTableAction() {}

// TableOptionAction represents a bare table-option change applied via ALTER
// TABLE (ENGINE =, DEFAULT CHARACTER SET/COLLATE, comment, etc.), and the
// standalone ENABLE/DISABLE KEYS, DISCARD/IMPORT TABLESPACE, FORCE directives.
type TableOptionAction struct {
	Option *TableOption
}

func (*TableOptionAction) alterTableAction() {}

// OrderByAction represents ALTER TABLE ... ORDER BY col [, col...].
type OrderByAction struct {
	Columns []string
}

func (*OrderByAction) alterTableAction() {}

// DropTableStmt represents DROP TABLE.
type DropTableStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	IfExists bool
	Tables   []*TableName
	Cascade  bool
}

func (*DropTableStmt) statementNode()   {}
func (d *DropTableStmt) Pos() token.Pos { return d.StartPos }
func (d *DropTableStmt) End() token.Pos { return d.EndPos }

// IndexKind distinguishes plain/UNIQUE/FULLTEXT/SPATIAL indexes.
type IndexKind int

const (
	IndexPlain IndexKind = iota
	IndexUnique
	IndexFullText
	IndexSpatial
)

// CreateIndexStmt represents CREATE INDEX.
type CreateIndexStmt struct {
	StartPos    token.Pos
	EndPos      token.Pos
	IfNotExists bool
	Unique      bool
	Kind        IndexKind
	Concurrent  bool // PostgreSQL CONCURRENTLY
	Name        string
	Table       *TableName
	Columns     []*IndexColumn
	Using       string // btree, hash, etc.
	Where       Expr   // Partial index (PostgreSQL)
	Options     []*IndexOption
	Algorithm   string
	Lock        string
}

func (*CreateIndexStmt) statementNode()   {}
func (c *CreateIndexStmt) Pos() token.Pos { return c.StartPos }
func (c *CreateIndexStmt) End() token.Pos { return c.EndPos }

// IndexColumn represents a column in an index.
type IndexColumn struct {
	Column       string
	Expr         Expr // Expression index
	PrefixLength int  // col_name(N); 0 when unspecified
	Desc         bool
	Nulls        string // FIRST, LAST
}

// DropIndexStmt represents DROP INDEX.
type DropIndexStmt struct {
	StartPos   token.Pos
	EndPos     token.Pos
	IfExists   bool
	Concurrent bool // PostgreSQL CONCURRENTLY
	Name       string
	Table      *TableName // MySQL requires table name
	Cascade    bool
}

func (*DropIndexStmt) statementNode()   {}
func (d *DropIndexStmt) Pos() token.Pos { return d.StartPos }
func (d *DropIndexStmt) End() token.Pos { return d.EndPos }

// TruncateStmt represents TRUNCATE TABLE.
type TruncateStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Tables   []*TableName
	Cascade  bool
}

func (*TruncateStmt) statementNode()   {}
func (t *TruncateStmt) Pos() token.Pos { return t.StartPos }
func (t *TruncateStmt) End() token.Pos { return t.EndPos }

// ExplainStmt represents EXPLAIN.
type ExplainStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Analyze  bool
	Verbose  bool
	Format   string // TEXT, JSON, YAML, XML
	Stmt     Statement
}

func (*ExplainStmt) statementNode()   {}
func (e *ExplainStmt) Pos() token.Pos { return e.StartPos }
func (e *ExplainStmt) End() token.Pos { return e.EndPos }
