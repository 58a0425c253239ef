// Package parser implements the recursive-descent parser of spec.md §4.2:
// it consumes the lexer's token stream and emits an *ast.Program, rejecting
// structural errors with no recovery (the first error aborts parsing).
package parser

import (
	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/errors"
	"github.com/cwbudde/pasc/internal/lexer"
	"github.com/cwbudde/pasc/internal/token"
)

// Parser holds the single current_token lookahead the grammar needs.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	err     *errors.Error
}

// New creates a Parser over lex and primes current_token.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	return p
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		p.err = err
		return
	}
	p.current = tok
}

// eat consumes current_token if it matches typ, else records a ParserError
// naming the offending token kind (spec.md §4.2).
func (p *Parser) eat(typ token.TokenType) token.Token {
	tok := p.current
	if p.err != nil {
		return tok
	}
	if tok.Type != typ {
		p.err = errors.Parser(tok.Pos, "Expected token %s, got %s", typ, tok.Type)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) failed() bool { return p.err != nil }

// ParseProgram parses `program := PROGRAM ID ; block .` and returns the
// resulting AST, or an error if parsing failed anywhere.
func (p *Parser) ParseProgram() (*ast.Program, *errors.Error) {
	progTok := p.current
	p.eat(token.PROGRAM)
	nameTok := p.eat(token.IDENT)
	p.eat(token.SEMI)
	block := p.block()
	p.eat(token.DOT)
	if p.failed() {
		return nil, p.err
	}
	return &ast.Program{Token: progTok, Name: nameTok.Literal, Block: block}, nil
}

// block := declarations compound
func (p *Parser) block() *ast.Block {
	pos := p.current.Pos
	varDecls, funcDecls := p.declarations()
	compound := p.compoundStatement()
	return &ast.Block{TokenPos: pos, VarDecls: varDecls, FuncDecls: funcDecls, Compound: compound}
}

// declarations := { VAR { varDecl ; }+ | funcDecl }*
//
// VAR sections and FUNCTION declarations may appear any number of times,
// in any order.
func (p *Parser) declarations() ([]*ast.VarDecl, []*ast.FuncDecl) {
	var varDecls []*ast.VarDecl
	var funcDecls []*ast.FuncDecl

	for !p.failed() {
		switch p.current.Type {
		case token.VAR:
			p.eat(token.VAR)
			for p.current.Type == token.IDENT && !p.failed() {
				varDecls = append(varDecls, p.varDeclarationGroup()...)
				p.eat(token.SEMI)
			}
		case token.FUNCTION:
			funcDecls = append(funcDecls, p.funcDeclaration())
		default:
			return varDecls, funcDecls
		}
	}

	return varDecls, funcDecls
}

// varDecl := ID { , ID } : type
func (p *Parser) varDeclarationGroup() []*ast.VarDecl {
	var names []token.Token
	names = append(names, p.eat(token.IDENT))
	for p.current.Type == token.COMMA && !p.failed() {
		p.eat(token.COMMA)
		names = append(names, p.eat(token.IDENT))
	}
	p.eat(token.COLON)
	typeName := p.typeSpec()

	var decls []*ast.VarDecl
	for _, n := range names {
		decls = append(decls, &ast.VarDecl{Token: n, Name: n.Literal, TypeName: typeName})
	}
	return decls
}

// type := INTEGER | REAL
func (p *Parser) typeSpec() string {
	tok := p.current
	switch tok.Type {
	case token.INTEGER:
		p.eat(token.INTEGER)
	case token.REAL:
		p.eat(token.REAL)
	default:
		if !p.failed() {
			p.err = errors.Parser(tok.Pos, "Expected a type name, got %s", tok.Type)
		}
		return ""
	}
	return tok.Literal
}

// funcDecl := FUNCTION ID [ ( formalList ) ] : type ; block ;
func (p *Parser) funcDeclaration() *ast.FuncDecl {
	funcTok := p.eat(token.FUNCTION)
	nameTok := p.eat(token.IDENT)

	var params []*ast.Param
	if p.current.Type == token.LPAREN {
		p.eat(token.LPAREN)
		params = p.formalParameterList()
		p.eat(token.RPAREN)
	}

	p.eat(token.COLON)
	retType := p.typeSpec()
	p.eat(token.SEMI)
	body := p.block()
	p.eat(token.SEMI)

	return &ast.FuncDecl{Token: funcTok, Name: nameTok.Literal, Params: params, ReturnType: retType, Body: body}
}

// formalList := formalGroup { ; formalGroup }
func (p *Parser) formalParameterList() []*ast.Param {
	var params []*ast.Param
	params = append(params, p.formalParameterGroup()...)
	for p.current.Type == token.SEMI && !p.failed() {
		p.eat(token.SEMI)
		params = append(params, p.formalParameterGroup()...)
	}
	return params
}

// formalGroup := ID { , ID } : type
func (p *Parser) formalParameterGroup() []*ast.Param {
	var names []token.Token
	names = append(names, p.eat(token.IDENT))
	for p.current.Type == token.COMMA && !p.failed() {
		p.eat(token.COMMA)
		names = append(names, p.eat(token.IDENT))
	}
	p.eat(token.COLON)
	typeName := p.typeSpec()

	var params []*ast.Param
	for _, n := range names {
		params = append(params, &ast.Param{TokenPos: n.Pos, Name: n.Literal, TypeName: typeName})
	}
	return params
}

// compound := BEGIN statementList END
func (p *Parser) compoundStatement() *ast.Compound {
	pos := p.current.Pos
	p.eat(token.BEGIN)
	stmts := p.statementList()
	p.eat(token.END)
	return &ast.Compound{TokenPos: pos, Statements: stmts}
}

// statementList := statement { ; statement }
//
// The `;` is a separator, not a terminator: a statement may end the list
// without a trailing `;`. Two adjacent statements with no `;` between them
// (an unexpected leading ID right after a statement) is a parser error
// (spec.md §4.2 design notes).
func (p *Parser) statementList() []ast.Statement {
	stmts := []ast.Statement{p.statement()}

	for p.current.Type == token.SEMI && !p.failed() {
		p.eat(token.SEMI)
		stmts = append(stmts, p.statement())
	}

	if p.current.Type == token.IDENT && !p.failed() {
		p.err = errors.Parser(p.current.Pos, "Unexpected token %s in statement list (missing ';'?)", p.current.Type)
	}

	return stmts
}

// statement := compound | ifStmt | whileStmt | forStmt
//            | printStmt | assign | ε
func (p *Parser) statement() ast.Statement {
	switch p.current.Type {
	case token.BEGIN:
		return p.compoundStatement()
	case token.IF:
		return p.ifStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.FOR:
		return p.forStatement()
	case token.PRINT, token.WRITELN:
		return p.printStatement()
	case token.IDENT:
		return p.assignmentStatement()
	default:
		return &ast.NoOp{TokenPos: p.current.Pos}
	}
}

// ifStmt := IF boolExpr THEN statement [ ELSE statement ] END
//
// This dialect terminates IF with an explicit END, eliminating the
// dangling-else ambiguity (spec.md §4.2).
func (p *Parser) ifStatement() ast.Statement {
	ifTok := p.eat(token.IF)
	cond := p.boolExpr()
	p.eat(token.THEN)
	thenStmt := p.statement()

	var elseStmt ast.Statement
	if p.current.Type == token.ELSE {
		p.eat(token.ELSE)
		elseStmt = p.statement()
	}
	p.eat(token.END)

	return &ast.If{Token: ifTok, Cond: cond, Then: thenStmt, Else: elseStmt}
}

// whileStmt := WHILE boolExpr DO statement
func (p *Parser) whileStatement() ast.Statement {
	whileTok := p.eat(token.WHILE)
	cond := p.boolExpr()
	p.eat(token.DO)
	body := p.statement()
	return &ast.While{Token: whileTok, Cond: cond, Body: body}
}

// forStmt := FOR ID := expr (TO|DOWNTO) expr DO statement
func (p *Parser) forStatement() ast.Statement {
	forTok := p.eat(token.FOR)
	varTok := p.eat(token.IDENT)
	p.eat(token.ASSIGN)
	start := p.expr()

	var dir ast.ForDirection
	switch p.current.Type {
	case token.TO:
		p.eat(token.TO)
		dir = ast.ForTo
	case token.DOWNTO:
		p.eat(token.DOWNTO)
		dir = ast.ForDownto
	default:
		if !p.failed() {
			p.err = errors.Parser(p.current.Pos, "Expected TO or DOWNTO, got %s", p.current.Type)
		}
	}

	end := p.expr()
	p.eat(token.DO)
	body := p.statement()

	return &ast.For{Token: forTok, VarName: varTok.Literal, Start: start, End: end, Direction: dir, Body: body}
}

// printStmt := (PRINT|WRITELN) ( expr { , expr } )
func (p *Parser) printStatement() ast.Statement {
	tok := p.current
	newline := tok.Type == token.WRITELN
	p.advance()
	p.eat(token.LPAREN)

	var args []ast.Expression
	args = append(args, p.expr())
	for p.current.Type == token.COMMA && !p.failed() {
		p.eat(token.COMMA)
		args = append(args, p.expr())
	}
	p.eat(token.RPAREN)

	return &ast.Print{Token: tok, Args: args, Newline: newline}
}

// assign := ID := expr
func (p *Parser) assignmentStatement() ast.Statement {
	nameTok := p.eat(token.IDENT)
	assignTok := p.eat(token.ASSIGN)
	expr := p.expr()
	return &ast.Assign{Token: assignTok, Target: nameTok.Literal, TargetPos: nameTok.Pos, Expr: expr}
}

// boolExpr := boolTerm { OR boolTerm }
func (p *Parser) boolExpr() ast.Expression {
	left := p.boolTerm()
	for p.current.Type == token.OR && !p.failed() {
		tok := p.eat(token.OR)
		right := p.boolTerm()
		left = &ast.BoolBin{Token: tok, Left: left, Op: token.OR, Right: right}
	}
	return left
}

// boolTerm := boolFactor { AND boolFactor }
func (p *Parser) boolTerm() ast.Expression {
	left := p.boolFactor()
	for p.current.Type == token.AND && !p.failed() {
		tok := p.eat(token.AND)
		right := p.boolFactor()
		left = &ast.BoolBin{Token: tok, Left: left, Op: token.AND, Right: right}
	}
	return left
}

// boolFactor := NOT boolFactor | ( boolExpr ) | comparison
//
// `( boolExpr )` and `( expr )` share the same LPAREN lookahead. A leading
// `(` is first parsed as `( boolExpr )`, which covers `(a AND b)` forms; if
// an arithmetic or comparison operator follows the closing `)`, the
// parenthesized part was an arithmetic operand instead, and the parser
// rewinds to the `(` and parses a comparison, whose factor handles the
// `( expr )` production.
func (p *Parser) boolFactor() ast.Expression {
	if p.current.Type == token.NOT {
		tok := p.eat(token.NOT)
		operand := p.boolFactor()
		return &ast.BoolNot{Token: tok, Expr: operand}
	}
	if p.current.Type == token.LPAREN {
		savedLex, savedCur := *p.lex, p.current
		p.eat(token.LPAREN)
		inner := p.boolExpr()
		p.eat(token.RPAREN)
		if p.failed() || !isArithOrCompareOp(p.current.Type) {
			return inner
		}
		// An operator after the `)` means the parentheses opened an
		// arithmetic operand, as in `(x + 1) > 2`: reparse as a comparison.
		*p.lex, p.current = savedLex, savedCur
	}
	return p.comparison()
}

func isArithOrCompareOp(t token.TokenType) bool {
	switch t {
	case token.PLUS, token.MINUS, token.MUL, token.INTDIV, token.FLOATDIV,
		token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		return true
	}
	return false
}

// comparison := expr [ (= | <> | < | > | <= | >=) expr ]
func (p *Parser) comparison() ast.Expression {
	left := p.expr()
	switch p.current.Type {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		tok := p.current
		p.advance()
		right := p.expr()
		return &ast.Compare{Token: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// expr := term { (+|-) term }
func (p *Parser) expr() ast.Expression {
	left := p.term()
	for (p.current.Type == token.PLUS || p.current.Type == token.MINUS) && !p.failed() {
		tok := p.current
		p.advance()
		right := p.term()
		left = &ast.BinArith{Token: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// term := factor { (* | DIV | /) factor }
func (p *Parser) term() ast.Expression {
	left := p.factor()
	for isTermOp(p.current.Type) && !p.failed() {
		tok := p.current
		p.advance()
		right := p.factor()
		left = &ast.BinArith{Token: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

func isTermOp(t token.TokenType) bool {
	return t == token.MUL || t == token.INTDIV || t == token.FLOATDIV
}

// factor := (+|-) factor
//         | INTEGER_CONST | REAL_CONST
//         | ( expr )
//         | callOrVar
func (p *Parser) factor() ast.Expression {
	tok := p.current

	switch tok.Type {
	case token.PLUS, token.MINUS:
		p.advance()
		operand := p.factor()
		return &ast.UnaryArith{Token: tok, Op: tok.Type, Expr: operand}
	case token.INTEGER_CONST:
		p.advance()
		return &ast.Num{Token: tok, IsReal: false, IntVal: parseInt(tok.Literal)}
	case token.REAL_CONST:
		p.advance()
		return &ast.Num{Token: tok, IsReal: true, RealVal: parseFloat(tok.Literal)}
	case token.LPAREN:
		p.advance()
		inner := p.expr()
		p.eat(token.RPAREN)
		return inner
	case token.IDENT:
		return p.callOrVar()
	}

	if !p.failed() {
		p.err = errors.Parser(tok.Pos, "Unexpected token %s in expression", tok.Type)
	}
	return &errExpr{pos: tok.Pos}
}

// callOrVar := ID [ ( [ expr { , expr } ] ) ]
//
// Disambiguated with a single lookahead token: if '(' directly follows the
// identifier it is a Call, else a Var (spec.md §4.2).
func (p *Parser) callOrVar() ast.Expression {
	nameTok := p.eat(token.IDENT)
	if p.current.Type != token.LPAREN {
		return &ast.Var{Token: nameTok, Name: nameTok.Literal}
	}

	p.eat(token.LPAREN)
	var args []ast.Expression
	if p.current.Type != token.RPAREN {
		args = append(args, p.expr())
		for p.current.Type == token.COMMA && !p.failed() {
			p.eat(token.COMMA)
			args = append(args, p.expr())
		}
	}
	p.eat(token.RPAREN)

	return &ast.Call{Token: nameTok, Name: nameTok.Literal, Args: args}
}
