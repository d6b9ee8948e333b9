// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package proposition

import (
	"fmt"
	"strings"
)

// Parse converts an infix proposition into its expression tree.
//
// # Description
//
// Grammar (precedence lowest to highest, implication right-associative):
//
//	expression  -> implication
//	implication -> disjunction ( "->" implication )?
//	disjunction -> conjunction ( "v" conjunction )*
//	conjunction -> unary ( "^" unary )*
//	unary       -> "~" unary | primary
//	primary     -> ATOM | "T" | "F" | "(" expression ")"
//
// # Inputs
//
//   - text: The proposition, e.g. "p ^ q", "~(p v q)", "p -> q -> r".
//
// # Outputs
//
//   - Expr: The parsed tree.
//   - error: *SyntaxError on empty input, unknown tokens, unbalanced
//     parentheses, or trailing garbage.
func Parse(text string) (Expr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty proposition"}
	}

	p := &parser{lex: newLexer(text)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.cur.typ != tokenEOF {
		return nil, &SyntaxError{
			Pos: p.cur.pos,
			Msg: fmt.Sprintf("unexpected %s after expression", p.cur.typ),
		}
	}
	return expr, nil
}

// MustParse is Parse for static expressions in tests and fixtures;
// it panics on error.
func MustParse(text string) Expr {
	expr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return expr
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expect(typ tokenType) error {
	if p.cur.typ != typ {
		return &SyntaxError{
			Pos: p.cur.pos,
			Msg: fmt.Sprintf("expected %s, found %s", typ, p.cur.typ),
		}
	}
	return p.advance()
}

func (p *parser) expression() (Expr, error) {
	return p.implication()
}

func (p *parser) implication() (Expr, error) {
	left, err := p.disjunction()
	if err != nil {
		return nil, err
	}

	if p.cur.typ == tokenImplies {
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Right-associative: p -> q -> r parses as p -> (q -> r).
		right, err := p.implication()
		if err != nil {
			return nil, err
		}
		return &Implies{Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) disjunction() (Expr, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}

	for p.cur.typ == tokenOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) conjunction() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.cur.typ == tokenAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.cur.typ == tokenNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	switch p.cur.typ {
	case tokenAtom:
		name := p.cur.value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Var{Name: name}, nil
	case tokenTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Const{Value: true}, nil
	case tokenFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Const{Value: false}, nil
	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, &SyntaxError{
			Pos: p.cur.pos,
			Msg: fmt.Sprintf("expected a proposition, found %s", p.cur.typ),
		}
	}
}
