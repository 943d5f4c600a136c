package parser

import (
	"strings"

	"github.com/freeeve/machparse/ast"
	"github.com/freeeve/machparse/token"
)

// parseDefinerClause parses "DEFINER = user" and returns the user spec
// ("name@host" or "CURRENT_USER") verbatim.
func (p *Parser) parseDefinerClause() string {
	p.advance() // consume DEFINER
	p.expect(token.EQ)
	return p.parseUserSpec()
}

// parseUserSpec parses a MySQL user specification: an identifier or string,
// optionally followed by @host. Returned verbatim for later Display.
func (p *Parser) parseUserSpec() string {
	var b strings.Builder
	switch {
	case p.curIsIdent():
		b.WriteString(p.curIdentValue())
		p.advance()
	case p.curIs(token.STRING):
		b.WriteString("'")
		b.WriteString(p.cur.Value)
		b.WriteString("'")
		p.advance()
	default:
		p.errorf("expected user specification")
		return ""
	}
	if p.curIs(token.AT) {
		b.WriteString("@")
		p.advance()
		switch {
		case p.curIsIdent():
			b.WriteString(p.curIdentValue())
			p.advance()
		case p.curIs(token.STRING):
			b.WriteString("'")
			b.WriteString(p.cur.Value)
			b.WriteString("'")
			p.advance()
		}
	}
	return b.String()
}

// parseVerbatimBody captures the raw source text of a routine/trigger/event
// body starting at the current token, balancing BEGIN/CASE/IF blocks against
// END so that embedded semicolons do not terminate the capture early. The
// body is not otherwise parsed; callers store it verbatim.
func (p *Parser) parseVerbatimBody() string {
	src := p.lexer.Source()
	start := p.cur.Pos.Offset

	depth := 0
	if p.curIs(token.BEGIN) {
		depth = 1
		p.advance()
	}

	for depth > 0 {
		switch p.cur.Type {
		case token.EOF:
			depth = 0
		case token.BEGIN, token.CASE, token.IF:
			depth++
			p.advance()
		case token.END:
			depth--
			p.advance()
			if p.curIs(token.IF) || p.curIs(token.CASE) {
				p.advance()
			}
		default:
			p.advance()
		}
	}

	if depth == 0 && start == p.cur.Pos.Offset {
		// Single-statement body: consume until top-level ';' or EOF.
		parenDepth := 0
		for {
			switch p.cur.Type {
			case token.EOF:
				goto done
			case token.SEMICOLON:
				if parenDepth <= 0 {
					goto done
				}
				p.advance()
			case token.LPAREN:
				parenDepth++
				p.advance()
			case token.RPAREN:
				parenDepth--
				p.advance()
			default:
				p.advance()
			}
			_ = parenDepth
		}
	done:
	}

	end := p.cur.Pos.Offset
	if end > len(src) {
		end = len(src)
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(src[start:end])
}

func (p *Parser) parseSet() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume SET

	var b strings.Builder
	if p.curIdentIs("GLOBAL") {
		b.WriteString("GLOBAL ")
		p.advance()
	} else if p.curIdentIs("SESSION") {
		b.WriteString("SESSION ")
		p.advance()
	}

	switch {
	case p.curIs(token.ATAT):
		b.WriteString("@@")
		p.advance()
		if p.curIdentIs("GLOBAL") || p.curIdentIs("SESSION") {
			b.WriteString(strings.ToUpper(p.curIdentValue()))
			p.advance()
			p.expect(token.DOT)
			b.WriteString(".")
		}
		b.WriteString(p.curIdentValue())
		p.advance()
	case p.curIs(token.PARAM):
		b.WriteString(p.cur.Value) // already includes leading '@'
		p.advance()
	default:
		b.WriteString(p.curIdentValue())
		p.advance()
	}

	stmt := &ast.SetStmt{StartPos: pos, Variable: b.String()}
	p.expect(token.EQ)
	stmt.Value = p.parseExpr()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseRenameTable() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume RENAME
	p.expect(token.TABLE)

	stmt := &ast.RenameTableStmt{StartPos: pos}
	for {
		pair := &ast.RenamePair{Old: p.parseTableName()}
		p.expect(token.TO)
		pair.New = p.parseTableName()
		stmt.Pairs = append(stmt.Pairs, pair)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseIfNotExists() bool {
	if p.curIs(token.IF) {
		p.advance()
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		return true
	}
	return false
}

func (p *Parser) parseIfExists() bool {
	if p.curIs(token.IF) {
		p.advance()
		p.expect(token.EXISTS)
		return true
	}
	return false
}

func (p *Parser) parseCreateDatabase(pos token.Pos) ast.Statement {
	p.advance() // consume DATABASE/SCHEMA
	stmt := &ast.CreateDatabaseStmt{StartPos: pos, IfNotExists: p.parseIfNotExists()}
	stmt.Name = p.curIdentValue()
	p.advance()

	for p.curIsDatabaseOption() {
		p.parseDatabaseOption(&stmt.CharacterSet, &stmt.Collate, &stmt.Encryption)
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) curIsDatabaseOption() bool {
	return p.curIs(token.CHARACTER) || p.curIs(token.CHARSET) || p.curIs(token.DEFAULT) ||
		p.curIs(token.COLLATE) || p.curIdentIs("ENCRYPTION")
}

func (p *Parser) parseDatabaseOption(charset, collate, encryption *string) {
	if p.curIs(token.DEFAULT) {
		p.advance()
	}
	switch {
	case p.curIs(token.CHARACTER):
		p.advance()
		p.expect(token.SET)
		if p.curIs(token.EQ) {
			p.advance()
		}
		*charset = p.curIdentValue()
		p.advance()
	case p.curIs(token.CHARSET):
		p.advance()
		if p.curIs(token.EQ) {
			p.advance()
		}
		*charset = p.curIdentValue()
		p.advance()
	case p.curIs(token.COLLATE):
		p.advance()
		if p.curIs(token.EQ) {
			p.advance()
		}
		*collate = p.curIdentValue()
		p.advance()
	case p.curIdentIs("ENCRYPTION"):
		p.advance()
		if p.curIs(token.EQ) {
			p.advance()
		}
		*encryption = strings.Trim(p.cur.Value, "'")
		p.advance()
	}
}

func (p *Parser) parseAlterDatabase(pos token.Pos) ast.Statement {
	p.advance() // consume DATABASE/SCHEMA
	stmt := &ast.AlterDatabaseStmt{StartPos: pos}
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}
	for p.curIsDatabaseOption() || p.curIs(token.READ) {
		if p.curIs(token.READ) {
			p.advance()
			p.expect(token.ONLY)
			if p.curIs(token.EQ) {
				p.advance()
			}
			v := p.cur.Value == "1"
			stmt.ReadOnly = &v
			p.advance()
			continue
		}
		p.parseDatabaseOption(&stmt.CharacterSet, &stmt.Collate, &stmt.Encryption)
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseDropObject(pos token.Pos, kind ast.ObjectKind, keywords ...token.Token) ast.Statement {
	for _, kw := range keywords {
		p.expect(kw)
	}
	stmt := &ast.DropObjectStmt{StartPos: pos, Kind: kind, IfExists: p.parseIfExists()}
	for {
		stmt.Names = append(stmt.Names, p.curIdentValue())
		p.advance()
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseDropTablespace parses DROP [UNDO] TABLESPACE name [ENGINE = engine].
func (p *Parser) parseDropTablespace(pos token.Pos, undo bool) ast.Statement {
	p.expect(token.TABLESPACE)
	stmt := &ast.DropObjectStmt{StartPos: pos, Kind: ast.ObjTablespace, Undo: undo}
	stmt.Names = append(stmt.Names, p.curIdentValue())
	p.advance()
	if p.curIs(token.ENGINE) {
		p.advance()
		p.expect(token.EQ)
		p.advance()
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseDropSRS parses DROP SPATIAL REFERENCE SYSTEM [IF EXISTS] srid.
func (p *Parser) parseDropSRS(pos token.Pos) ast.Statement {
	p.expect(token.SPATIAL)
	p.expect(token.REFERENCE)
	p.expectIdent("SYSTEM")
	stmt := &ast.DropObjectStmt{StartPos: pos, Kind: ast.ObjSRS, IfExists: p.parseIfExists()}
	stmt.SRID = int64(parseInt(p.cur.Value))
	p.advance()
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseCreateView parses CREATE [OR REPLACE] [ALGORITHM=...] [DEFINER=...]
// [SQL SECURITY ...] VIEW name [(cols)] AS select [WITH [CASCADED|LOCAL] CHECK OPTION].
func (p *Parser) parseCreateView(pos token.Pos, orReplace bool, definer string) ast.Statement {
	p.advance() // consume VIEW
	stmt := &ast.CreateViewStmt{StartPos: pos, OrReplace: orReplace, Definer: definer}
	stmt.View = p.parseTableName()

	if p.curIs(token.LPAREN) {
		p.advance()
		for {
			stmt.Columns = append(stmt.Columns, p.curIdentValue())
			p.advance()
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
		p.expect(token.RPAREN)
	}

	p.expect(token.AS)
	stmt.As = p.parseSimpleSelect()

	if p.curIs(token.WITH) {
		p.advance()
		if p.curIs(token.CASCADED) {
			stmt.CheckOption = "CASCADED"
			p.advance()
		} else if p.curIs(token.LOCAL) {
			stmt.CheckOption = "LOCAL"
			p.advance()
		} else {
			stmt.CheckOption = "CASCADED"
		}
		p.expect(token.CHECK)
		p.expect(token.OPTION)
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseCreateTrigger parses CREATE [DEFINER=...] TRIGGER name
// {BEFORE|AFTER} event ON table FOR EACH ROW [FOLLOWS|PRECEDES other] body.
func (p *Parser) parseCreateTrigger(pos token.Pos, definer string) ast.Statement {
	p.advance() // consume TRIGGER
	stmt := &ast.CreateTriggerStmt{StartPos: pos, Definer: definer}
	stmt.Name = p.curIdentValue()
	p.advance()

	if p.curIs(token.BEFORE) {
		stmt.Before = true
		p.advance()
	} else {
		p.expect(token.AFTER)
	}

	stmt.Event = p.cur.Value
	p.advance() // INSERT/UPDATE/DELETE

	p.expect(token.ON)
	stmt.Table = p.parseTableName()
	p.expect(token.FOR)
	p.expect(token.EACH)
	p.expect(token.ROW)

	if p.curIs(token.FOLLOWS) || p.curIs(token.PRECEDES) {
		order := &ast.TriggerOrder{Precedes: p.curIs(token.PRECEDES)}
		p.advance()
		order.OtherTrigger = p.curIdentValue()
		p.advance()
		stmt.Order = order
	}

	stmt.Body = p.parseVerbatimBody()
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseCreateRoutine parses CREATE [DEFINER=...] {PROCEDURE|FUNCTION} name
// (params) [RETURNS type] [characteristics...] body.
func (p *Parser) parseCreateRoutine(pos token.Pos, definer string) ast.Statement {
	isFunc := p.curIs(token.FUNCTION)
	p.advance() // consume PROCEDURE/FUNCTION
	stmt := &ast.CreateRoutineStmt{StartPos: pos, Function: isFunc, Definer: definer}
	stmt.Name = p.curIdentValue()
	p.advance()

	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		param := &ast.RoutineParam{}
		if !isFunc && (p.curIs(token.IN) || p.curIs(token.OUT) || p.curIs(token.INOUT)) {
			param.Mode = strings.ToUpper(p.cur.Value)
			p.advance()
		} else if !isFunc {
			param.Mode = "IN"
		}
		param.Name = p.curIdentValue()
		p.advance()
		param.Type = p.parseDataType()
		stmt.Params = append(stmt.Params, param)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)

	if isFunc {
		p.expect(token.RETURNS)
		stmt.Returns = p.parseDataType()
	}

	for p.curIsRoutineCharacteristic() {
		stmt.Characteristics = append(stmt.Characteristics, p.parseRoutineCharacteristic())
	}

	stmt.Body = p.parseVerbatimBody()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) curIsRoutineCharacteristic() bool {
	return p.curIs(token.DETERMINISTIC) || p.curIs(token.NOT) || p.curIs(token.LANGUAGE) ||
		p.curIs(token.CONTAINS) || p.curIs(token.NO_SQL) || p.curIs(token.READS) ||
		p.curIs(token.MODIFIES) || p.curIs(token.SQL_KW) || p.curIs(token.COMMENT)
}

func (p *Parser) parseRoutineCharacteristic() string {
	switch p.cur.Type {
	case token.NOT:
		p.advance()
		p.expect(token.DETERMINISTIC)
		return "NOT DETERMINISTIC"
	case token.DETERMINISTIC:
		p.advance()
		return "DETERMINISTIC"
	case token.LANGUAGE:
		p.advance()
		v := "LANGUAGE " + p.curIdentValue()
		p.advance()
		return v
	case token.CONTAINS:
		p.advance()
		p.expect(token.SQL_KW)
		return "CONTAINS SQL"
	case token.NO_SQL:
		p.advance()
		return "NO SQL"
	case token.READS:
		p.advance()
		p.expect(token.SQL_KW)
		p.expect(token.DATA)
		return "READS SQL DATA"
	case token.MODIFIES:
		p.advance()
		p.expect(token.SQL_KW)
		p.expect(token.DATA)
		return "MODIFIES SQL DATA"
	case token.SQL_KW:
		p.advance()
		p.expect(token.SECURITY)
		if p.curIs(token.DEFINER) {
			p.advance()
			return "SQL SECURITY DEFINER"
		}
		p.expect(token.INVOKER)
		return "SQL SECURITY INVOKER"
	case token.COMMENT:
		p.advance()
		v := "COMMENT " + p.cur.Value
		p.advance()
		return v
	}
	return ""
}

// parseCreateEvent parses CREATE [DEFINER=...] EVENT [IF NOT EXISTS] name
// ON SCHEDULE schedule [ON COMPLETION [NOT] PRESERVE] [ENABLE|DISABLE...] [COMMENT ...] DO body.
func (p *Parser) parseCreateEvent(pos token.Pos, definer string) ast.Statement {
	p.advance() // consume EVENT
	stmt := &ast.CreateEventStmt{StartPos: pos, Definer: definer, IfNotExists: p.parseIfNotExists()}
	stmt.Name = p.curIdentValue()
	p.advance()

	p.expect(token.ON)
	p.expect(token.SCHEDULE)
	stmt.Schedule = p.parseEventSchedule()

	p.parseEventTail(&stmt.OnCompletionPreserve, &stmt.Status, &stmt.Comment)

	p.expect(token.DO)
	stmt.Body = p.parseVerbatimBody()
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseEventSchedule captures "AT expr" or "EVERY ... [STARTS ...] [ENDS ...]" verbatim.
func (p *Parser) parseEventSchedule() string {
	src := p.lexer.Source()
	start := p.cur.Pos.Offset
	for !p.curIs(token.ON) && !p.curIs(token.DO) && !p.curIs(token.EOF) {
		p.advance()
	}
	end := p.cur.Pos.Offset
	if end > len(src) {
		end = len(src)
	}
	return strings.TrimSpace(src[start:end])
}

func (p *Parser) parseEventTail(preserve **bool, status, comment *string) {
	if p.curIs(token.ON) && p.peekIs(token.COMPLETION) {
		p.advance()
		p.advance()
		notPreserve := false
		if p.curIs(token.NOT) {
			notPreserve = true
			p.advance()
		}
		p.expect(token.PRESERVE)
		v := !notPreserve
		*preserve = &v
	}
	if p.curIs(token.ENABLE) {
		*status = "ENABLE"
		p.advance()
	} else if p.curIs(token.DISABLE) {
		p.advance()
		if p.curIs(token.ON) {
			p.advance()
			p.expect(token.SLAVE)
			*status = "DISABLE ON SLAVE"
		} else {
			*status = "DISABLE"
		}
	}
	if p.curIs(token.COMMENT) {
		p.advance()
		*comment = strings.Trim(p.cur.Value, "'")
		p.advance()
	}
}

func (p *Parser) parseAlterEvent(pos token.Pos) ast.Statement {
	p.advance() // consume EVENT
	stmt := &ast.AlterEventStmt{StartPos: pos}
	stmt.Name = p.curIdentValue()
	p.advance()

	if p.curIs(token.ON) && p.peekIs(token.SCHEDULE) {
		p.advance()
		p.advance()
		stmt.Schedule = p.parseEventSchedule()
	}
	if p.curIs(token.RENAME) {
		p.advance()
		p.expect(token.TO)
		stmt.RenameTo = p.curIdentValue()
		p.advance()
	}
	p.parseEventTail(&stmt.OnCompletionPreserve, &stmt.Status, &stmt.Comment)

	if p.curIs(token.DO) {
		p.advance()
		stmt.Body = p.parseVerbatimBody()
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseCreateServer parses CREATE SERVER name FOREIGN DATA WRAPPER wrapper OPTIONS (...).
func (p *Parser) parseCreateServer(pos token.Pos) ast.Statement {
	p.advance() // consume SERVER
	stmt := &ast.CreateServerStmt{StartPos: pos}
	stmt.Name = p.curIdentValue()
	p.advance()

	p.expectIdent("FOREIGN")
	p.expect(token.DATA)
	p.expectIdent("WRAPPER")
	stmt.Wrapper = p.curIdentValue()
	p.advance()

	stmt.Options = p.parseServerOptions()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseAlterServer(pos token.Pos) ast.Statement {
	p.advance() // consume SERVER
	stmt := &ast.AlterServerStmt{StartPos: pos}
	stmt.Name = p.curIdentValue()
	p.advance()
	stmt.Options = p.parseServerOptions()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseServerOptions() []*ast.ServerOption {
	var opts []*ast.ServerOption
	if !p.curIs(token.OPTIONS) {
		return opts
	}
	p.advance()
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		opt := &ast.ServerOption{Name: p.curIdentValue()}
		p.advance()
		opt.Value = strings.Trim(p.cur.Value, "'")
		p.advance()
		opts = append(opts, opt)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return opts
}

// parseCreateTablespace parses CREATE [UNDO] TABLESPACE name ADD DATAFILE 'file' [options...].
func (p *Parser) parseCreateTablespace(pos token.Pos, undo bool) ast.Statement {
	p.advance() // consume TABLESPACE
	stmt := &ast.CreateTablespaceStmt{StartPos: pos, Undo: undo}
	stmt.Name = p.curIdentValue()
	p.advance()

	p.expect(token.ADD)
	p.expect(token.DATAFILE)
	stmt.Datafile = strings.Trim(p.cur.Value, "'")
	p.advance()

	stmt.Options = p.parseTablespaceOptions()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseCreateLogfileGroup(pos token.Pos) ast.Statement {
	p.advance() // consume LOGFILE
	p.expect(token.GROUP)
	stmt := &ast.CreateLogfileGroupStmt{StartPos: pos}
	stmt.Name = p.curIdentValue()
	p.advance()

	p.expect(token.ADD)
	p.expect(token.UNDOFILE)
	stmt.Undofile = strings.Trim(p.cur.Value, "'")
	p.advance()

	stmt.Options = p.parseTablespaceOptions()
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseTablespaceOptions() []*ast.TableOption {
	var opts []*ast.TableOption
	for p.curIs(token.INITIAL_SIZE) || p.curIs(token.AUTOEXTEND_SIZE) || p.curIs(token.MAX_SIZE) ||
		p.curIs(token.NODEGROUP) || p.curIs(token.WAIT) || p.curIs(token.COMMENT) ||
		p.curIs(token.ENGINE) {
		name := p.cur.Value
		p.advance()
		opt := &ast.TableOption{Name: strings.ToUpper(name)}
		if p.curIs(token.EQ) {
			p.advance()
		}
		if p.curIsIdent() || p.curIs(token.STRING) || p.curIs(token.INT) {
			opt.Value = strings.Trim(p.cur.Value, "'")
			p.advance()
		}
		opts = append(opts, opt)
	}
	return opts
}

// parseCreateSRS parses CREATE [OR REPLACE] SPATIAL REFERENCE SYSTEM srid
// [NAME 'name'] [DEFINITION 'wkt'] [ORGANIZATION 'org' IDENTIFIED BY id] [DESCRIPTION 'text'].
func (p *Parser) parseCreateSRS(pos token.Pos, orReplace bool) ast.Statement {
	p.expect(token.SPATIAL)
	p.expect(token.REFERENCE)
	p.expectIdent("SYSTEM")
	stmt := &ast.CreateSRSStmt{StartPos: pos, OrReplace: orReplace, IfNotExists: p.parseIfNotExists()}

	stmt.SRID = int64(parseInt(p.cur.Value))
	p.advance()

	for p.curIsIdent() || p.curIs(token.NAME_KW) {
		switch {
		case p.curIs(token.NAME_KW):
			p.advance()
			stmt.Name = strings.Trim(p.cur.Value, "'")
			p.advance()
		case p.curIdentIs("DEFINITION"):
			p.advance()
			stmt.Definition = strings.Trim(p.cur.Value, "'")
			p.advance()
		case p.curIs(token.ORGANIZATION):
			p.advance()
			stmt.Organization = strings.Trim(p.cur.Value, "'")
			p.advance()
			p.expect(token.IDENTIFIED)
			p.expect(token.BY)
			id := int64(parseInt(p.cur.Value))
			stmt.OrgID = &id
			p.advance()
		case p.curIs(token.DESCRIPTION):
			p.advance()
			stmt.Description = strings.Trim(p.cur.Value, "'")
			p.advance()
		default:
			goto done
		}
	}
done:
	stmt.EndPos = p.cur.Pos
	return stmt
}

// expectIdent consumes the current token if it is an identifier/keyword
// matching word case-insensitively; otherwise records a parse error.
func (p *Parser) expectIdent(word string) bool {
	if p.curIdentIs(word) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %v", word, p.cur.Type)
	return false
}
