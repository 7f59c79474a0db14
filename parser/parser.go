// Package parser implements the Slate recursive-descent parser.
//
// The parser walks a complete token vector (produced by [lexer.Lexer.Tokenize])
// and builds an [ast.Program]. Expression parsing uses precedence climbing so
// that operator binding is encoded in a small lexeme table rather than a
// tangle of grammar rules.
//
// Usage:
//
//	toks := lexer.New(source).Tokenize()
//	prog, err := parser.Parse(toks)
//
// Error policy: abort on first error. The returned error is a [*Error]
// carrying a short message and the offending token's position; there is no
// recovery and no partial AST.
//
// No global state: the token vector, the cursor index and the current
// function's return type all live on the Parser value, so two concurrent
// parses simply use two Parsers. The precedence table is immutable shared
// configuration.
package parser

import (
	"fmt"
	"strconv"

	"github.com/slate-lang/slate/ast"
)

// ── Operator precedence ───────────────────────────────────────────────────────

// binOpPrecedence maps a binary operator lexeme to its binding tightness.
// Higher binds tighter; all operators are left-associative. Lexemes absent
// from the table are not binary operators and stop precedence climbing.
var binOpPrecedence = map[string]int{
	"=":  2,
	"<":  10,
	">":  10,
	"<=": 10,
	">=": 10,
	"==": 10,
	"!=": 10,
	"+":  20,
	"-":  20,
	"*":  40,
	"/":  40,
}

// comparisonPrec is the binding tightness of the comparison tier. Condition
// sides inside an if header are climbed with a minimum precedence just above
// it so the comparison token is left for the condition itself.
const comparisonPrec = 10

// defaultContextType is the type a bare integer literal assumes when nothing
// in the surrounding expression pins one down.
const defaultContextType = ast.I32

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds all state needed to parse one token vector.
// Create one with [New] and call [Parser.Parse], or use the package-level
// [Parse] convenience.
type Parser struct {
	toks []ast.Token
	pos  int // index of the current token

	// retType is the enclosing function's return type; it becomes the context
	// type of return statement values. Top level defaults to i32.
	retType ast.VarType
}

// New creates a Parser positioned at the first token of toks.
func New(toks []ast.Token) *Parser {
	return &Parser{toks: toks, retType: defaultContextType}
}

// Parse tokenises nothing itself: it consumes the given token vector and
// returns the program, aborting on the first error.
func Parse(toks []ast.Token) (*ast.Program, error) {
	return New(toks).Parse()
}

// Parse builds and returns the complete AST for the token vector.
// On success the cursor has consumed the entire stream (Done reports true).
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(ast.EOF) {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		prog.Nodes = append(prog.Nodes, n)
	}
	return prog, nil
}

// Done reports whether the cursor has reached end of input.
func (p *Parser) Done() bool { return p.curIs(ast.EOF) }

// ── Token cursor ──────────────────────────────────────────────────────────────

// cur returns the token at the cursor, or the final EOF token once the
// vector is exhausted.
func (p *Parser) cur() ast.Token {
	if p.pos >= len(p.toks) {
		if len(p.toks) == 0 {
			return ast.Token{Type: ast.EOF}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// peek returns the token after the cursor without consuming anything.
func (p *Parser) peek() ast.Token {
	if p.pos+1 >= len(p.toks) {
		if len(p.toks) == 0 {
			return ast.Token{Type: ast.EOF}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

// advance moves the cursor one token forward. Past the end it is a no-op.
func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(tt ast.TokenType) bool { return p.cur().Type == tt }

// curPrecedence returns the binding tightness of the current token's lexeme,
// or -1 when it is not a binary operator.
func (p *Parser) curPrecedence() int {
	if prec, ok := binOpPrecedence[p.cur().Literal]; ok && prec > 0 {
		return prec
	}
	return -1
}

// expect consumes the current token if it has the given type and otherwise
// returns an unexpected-token error.
func (p *Parser) expect(tt ast.TokenType) error {
	if p.curIs(tt) {
		p.advance()
		return nil
	}
	return p.errorf("expected %v, got %q", tt, p.cur().Literal)
}

// errorf builds a positioned parse error at the current token.
func (p *Parser) errorf(format string, args ...any) *Error {
	tok := p.cur()
	return &Error{
		Msg:  fmt.Sprintf(format, args...),
		Line: tok.Line,
		Col:  tok.Col,
	}
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseNode dispatches on the current token to the appropriate top-level or
// body parser. The same table serves both positions.
func (p *Parser) parseNode() (ast.Node, error) {
	switch p.cur().Type {
	case ast.FN:
		return p.parseFnDeclaration()
	case ast.TYPE:
		// A type keyword opens a declaration only when a name follows;
		// `i8(...)` in statement position is a typecast expression.
		if p.peek().Type == ast.IDENT {
			return p.parseVariableDeclaration()
		}
		return p.parseExpression(true, defaultContextType)
	case ast.RETURN:
		return p.parseReturnStatement()
	case ast.IF:
		// An if in statement position is the if expression itself; it is not
		// followed by a semicolon.
		return p.parseIf(defaultContextType)
	default:
		return p.parseExpression(true, defaultContextType)
	}
}

// parseFnDeclaration parses `fn name(type ident, ...) -> rettype { body }`.
func (p *Parser) parseFnDeclaration() (ast.Node, error) {
	fnTok := p.cur() // 'fn'
	p.advance()

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	if err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}

	// Return statements inside the body default their value's context type to
	// the function's return type.
	saved := p.retType
	p.retType = proto.ReturnType
	body, err := p.parseFnBody()
	p.retType = saved
	if err != nil {
		return nil, err
	}

	if err := p.expect(ast.RBRACE); err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Token:    fnTok,
		Proto:    proto,
		Body:     body,
		ArgTypes: proto.ArgTypes,
	}, nil
}

// parsePrototype parses `name(type ident, ...) -> rettype`.
// Invariant on the result: len(ArgNames) == len(ArgTypes).
func (p *Parser) parsePrototype() (*ast.Prototype, error) {
	if !p.curIs(ast.IDENT) {
		return nil, p.errorf("expected function name, got %q", p.cur().Literal)
	}
	nameTok := p.cur()
	p.advance()

	if err := p.expect(ast.LPAREN); err != nil {
		return nil, err
	}

	var argNames []string
	var argTypes []ast.VarType
	for !p.curIs(ast.RPAREN) {
		if !p.curIs(ast.TYPE) {
			return nil, p.errorf("malformed prototype: expected parameter type, got %q", p.cur().Literal)
		}
		vt := ast.TypeFromKeyword(p.cur().Literal)
		if vt == ast.Null {
			return nil, p.errorf("unknown type keyword %q", p.cur().Literal)
		}
		p.advance()

		if !p.curIs(ast.IDENT) {
			return nil, p.errorf("malformed prototype: expected parameter name, got %q", p.cur().Literal)
		}
		argTypes = append(argTypes, vt)
		argNames = append(argNames, p.cur().Literal)
		p.advance()

		if p.curIs(ast.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(ast.ARROW); err != nil {
		return nil, err
	}

	if !p.curIs(ast.TYPE) {
		return nil, p.errorf("expected return type, got %q", p.cur().Literal)
	}
	ret := ast.TypeFromKeyword(p.cur().Literal)
	if ret == ast.Null {
		return nil, p.errorf("unknown type keyword %q", p.cur().Literal)
	}
	p.advance()

	return &ast.Prototype{
		Token:      nameTok,
		Name:       nameTok.Literal,
		ArgNames:   argNames,
		ArgTypes:   argTypes,
		ReturnType: ret,
	}, nil
}

// parseFnBody parses nodes until the closing brace, which is left for the
// caller to consume.
func (p *Parser) parseFnBody() ([]ast.Node, error) {
	var body []ast.Node
	for !p.curIs(ast.RBRACE) && !p.curIs(ast.EOF) {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		body = append(body, n)
	}
	return body, nil
}

// parseVariableDeclaration parses `type name = expr;`.
// The declared type becomes the context type of the initialiser, so bare
// integer literals adopt it.
func (p *Parser) parseVariableDeclaration() (ast.Node, error) {
	typeTok := p.cur()
	vt := ast.TypeFromKeyword(typeTok.Literal)
	if vt == ast.Null {
		return nil, p.errorf("unknown type keyword %q", typeTok.Literal)
	}
	p.advance()

	if !p.curIs(ast.IDENT) {
		return nil, p.errorf("expected variable name, got %q", p.cur().Literal)
	}
	name := p.cur().Literal
	p.advance()

	if err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpression(true, vt)
	if err != nil {
		return nil, err
	}

	return &ast.VarDecl{Token: typeTok, Name: name, Type: vt, Value: value}, nil
}

// parseReturnStatement parses `return expr;`. The enclosing function's return
// type is the context type of the value.
func (p *Parser) parseReturnStatement() (ast.Node, error) {
	retTok := p.cur()
	p.advance()

	value, err := p.parseExpression(true, p.retType)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Token: retTok, Value: value}, nil
}

// ── Expression parsing ────────────────────────────────────────────────────────

// parseExpression parses one expression and, when needsSemicolon is set,
// consumes the trailing semicolon. ctx is the context type propagated to
// untyped numeric literals.
func (p *Parser) parseExpression(needsSemicolon bool, ctx ast.VarType) (ast.Expr, error) {
	lhs, err := p.parsePrimary(ctx)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseBinOpRHS(0, lhs, ctx)
	if err != nil {
		return nil, err
	}
	if needsSemicolon {
		if err := p.expect(ast.SEMICOLON); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseBinOpRHS implements left-associative precedence climbing: it extends
// lhs with every operator binding at least as tightly as minPrec. Ties stay
// left-associative because the recursive call requires strictly greater
// precedence.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expr, ctx ast.VarType) (ast.Expr, error) {
	for {
		prec := p.curPrecedence()
		if prec < minPrec {
			return lhs, nil
		}

		opTok := p.cur()
		p.advance()

		rhs, err := p.parsePrimary(ctx)
		if err != nil {
			return nil, err
		}

		// If the next operator binds tighter, it takes the rhs first.
		if prec < p.curPrecedence() {
			rhs, err = p.parseBinOpRHS(prec+1, rhs, ctx)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.BinaryExpr{Token: opTok, Op: opTok.Literal, Left: lhs, Right: rhs}
	}
}

// parsePrimary dispatches on the current token to the matching primary
// expression parser.
func (p *Parser) parsePrimary(ctx ast.VarType) (ast.Expr, error) {
	switch p.cur().Type {
	case ast.INT, ast.FLOAT, ast.TRUE, ast.FALSE:
		return p.parseNumberExpression(ctx)
	case ast.IDENT:
		return p.parseIdentifierExpression(ctx)
	case ast.LPAREN:
		return p.parseParenExpression()
	case ast.TYPE:
		return p.parseTypecastExpression()
	case ast.IF:
		return p.parseIf(ctx)
	case ast.IMPORT:
		return p.parseImport()
	case ast.STRING:
		return p.parseStringExpression()
	default:
		return nil, p.errorf("unknown token in expression: %q", p.cur().Literal)
	}
}

// parseNumberExpression consumes a numeric or boolean literal. A literal
// whose token kind does not pin a type down (bare integers) adopts ctx.
func (p *Parser) parseNumberExpression(ctx ast.VarType) (ast.Expr, error) {
	tok := p.cur()
	vt := ast.TypeFromToken(tok.Type)
	if vt == ast.Null {
		vt = ctx
	}

	var value float64
	switch tok.Type {
	case ast.TRUE:
		value = 1
	case ast.FALSE:
		value = 0
	default:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("cannot parse %q as number: %v", tok.Literal, err)
		}
		value = v
	}

	p.advance()
	return &ast.NumberLiteral{Token: tok, Value: value, Type: vt}, nil
}

// parseIdentifierExpression consumes an identifier and decides between a call
// (next token '('), an assignment (next token '='), and a plain variable
// reference.
func (p *Parser) parseIdentifierExpression(ctx ast.VarType) (ast.Expr, error) {
	nameTok := p.cur()
	p.advance()

	switch p.cur().Type {
	case ast.LPAREN:
		p.advance() // consume '('
		var args []ast.Expr
		for !p.curIs(ast.RPAREN) {
			arg, err := p.parseInner(defaultContextType)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curIs(ast.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if err := p.expect(ast.RPAREN); err != nil {
			return nil, err
		}
		return &ast.CallExpr{Token: nameTok, Callee: nameTok.Literal, Args: args}, nil

	case ast.ASSIGN:
		p.advance() // consume '='
		value, err := p.parseInner(ctx)
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Token: nameTok, Name: nameTok.Literal, Value: value}, nil

	default:
		return &ast.Identifier{Token: nameTok, Name: nameTok.Literal}, nil
	}
}

// parseInner parses a full expression without a trailing semicolon — the form
// used for call arguments, assignment values and parenthesised groups.
func (p *Parser) parseInner(ctx ast.VarType) (ast.Expr, error) {
	return p.parseExpression(false, ctx)
}

// parseParenExpression parses `( expr )`. The inner expression starts from
// the default context type again.
func (p *Parser) parseParenExpression() (ast.Expr, error) {
	p.advance() // consume '('
	expr, err := p.parseInner(defaultContextType)
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseTypecastExpression parses `typekeyword ( expr )`.
func (p *Parser) parseTypecastExpression() (ast.Expr, error) {
	typeTok := p.cur()
	target := ast.TypeFromKeyword(typeTok.Literal)
	if target == ast.Null {
		return nil, p.errorf("unknown type keyword %q", typeTok.Literal)
	}
	if p.peek().Type != ast.LPAREN {
		return nil, p.errorf("expected %q after type keyword in expression, got %q",
			"(", p.peek().Literal)
	}
	p.advance() // consume type keyword
	p.advance() // consume '('

	inner, err := p.parseInner(defaultContextType)
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CastExpr{Token: typeTok, Target: target, Value: inner}, nil
}

// parseStringExpression consumes a string literal.
func (p *Parser) parseStringExpression() (ast.Expr, error) {
	tok := p.cur()
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
}

// parseImport parses `import "path"`. The trailing semicolon, when the import
// stands as a statement, is consumed by parseExpression.
func (p *Parser) parseImport() (ast.Expr, error) {
	impTok := p.cur()
	p.advance()

	if !p.curIs(ast.STRING) {
		return nil, p.errorf("expected import path string, got %q", p.cur().Literal)
	}
	path := p.cur().Literal
	p.advance()

	return &ast.ImportExpr{Token: impTok, Path: path}, nil
}

// ── If parsing ────────────────────────────────────────────────────────────────

// parseIf parses `if ( cond {&&/|| cond} ) { body }`.
//
// Conditions and their joiners are recorded verbatim for the code generator;
// the parser guarantees len(Seps) == len(Conds)-1.
func (p *Parser) parseIf(ctx ast.VarType) (ast.Expr, error) {
	ifTok := p.cur()
	p.advance()

	if err := p.expect(ast.LPAREN); err != nil {
		return nil, err
	}

	var conds []ast.Condition
	var seps []ast.TokenType
	for {
		cond, err := p.parseCondition(ctx)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)

		if p.curIs(ast.AND) || p.curIs(ast.OR) {
			seps = append(seps, p.cur().Type)
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}

	body, err := p.parseFnBody()
	if err != nil {
		return nil, err
	}
	if err := p.expect(ast.RBRACE); err != nil {
		return nil, err
	}

	return &ast.IfExpr{Token: ifTok, Conds: conds, Seps: seps, Body: body}, nil
}

// parseCondition parses `side compare side`. The sides are climbed with a
// minimum precedence one above the comparison tier so that arithmetic binds
// into the side but the comparison token itself is left as the condition's
// operator.
func (p *Parser) parseCondition(ctx ast.VarType) (ast.Condition, error) {
	lhs, err := p.parseConditionSide(ctx)
	if err != nil {
		return ast.Condition{}, err
	}

	opTok := p.cur()
	switch opTok.Type {
	case ast.LT, ast.GT, ast.LTE, ast.GTE, ast.EQ, ast.NEQ:
		p.advance()
	default:
		return ast.Condition{}, p.errorf("expected comparison operator in if condition, got %q", opTok.Literal)
	}

	rhs, err := p.parseConditionSide(ctx)
	if err != nil {
		return ast.Condition{}, err
	}

	return ast.Condition{Left: lhs, Op: opTok, Right: rhs}, nil
}

// parseConditionSide parses one side of a condition: a primary extended by
// operators binding tighter than comparisons.
func (p *Parser) parseConditionSide(ctx ast.VarType) (ast.Expr, error) {
	side, err := p.parsePrimary(ctx)
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(comparisonPrec+1, side, ctx)
}
