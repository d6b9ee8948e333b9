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
	"unicode"
)

// SyntaxError reports an unparseable proposition. The message is
// user-correctable and is surfaced verbatim by the API.
type SyntaxError struct {
	// Pos is the rune offset in the input where the error was detected.
	Pos int

	// Msg describes what was expected or found.
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// tokenType enumerates the lexical categories of the proposition grammar.
type tokenType int

const (
	tokenAtom tokenType = iota
	tokenTrue
	tokenFalse
	tokenNot
	tokenAnd
	tokenOr
	tokenImplies
	tokenLParen
	tokenRParen
	tokenEOF
)

func (t tokenType) String() string {
	switch t {
	case tokenAtom:
		return "identifier"
	case tokenTrue:
		return "T"
	case tokenFalse:
		return "F"
	case tokenNot:
		return "'~'"
	case tokenAnd:
		return "'^'"
	case tokenOr:
		return "'v'"
	case tokenImplies:
		return "'->'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenEOF:
		return "end of input"
	}
	return "unknown token"
}

type token struct {
	typ   tokenType
	value string
	pos   int
}

// lexer tokenizes a proposition. All operator aliases collapse to a single
// token type here; the serializer later emits the canonical spelling.
//
// Aliases: negation {~ ! ¬ NOT}, conjunction {^ & * ∧ AND}, disjunction
// {v | + ∨ OR}, implication {-> => → IMPLIES}, constants {T F True False
// ⊤ ⊥}. Keyword matching is case-insensitive; variable names are
// case-sensitive identifiers.
type lexer struct {
	input []rune
	pos   int
}

func newLexer(text string) *lexer {
	return &lexer{input: []rune(text)}
}

func (l *lexer) current() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// next returns the next token, or a SyntaxError on an unknown character.
func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	start := l.pos

	ch := l.current()
	if ch == 0 {
		return token{typ: tokenEOF, pos: start}, nil
	}

	// Two-character implication arrows.
	if (ch == '-' || ch == '=') && l.peek() == '>' {
		l.pos += 2
		return token{typ: tokenImplies, value: "->", pos: start}, nil
	}

	switch ch {
	case '→':
		l.pos++
		return token{typ: tokenImplies, value: "->", pos: start}, nil
	case '~', '!', '¬':
		l.pos++
		return token{typ: tokenNot, value: "~", pos: start}, nil
	case '^', '&', '*', '∧':
		l.pos++
		return token{typ: tokenAnd, value: "^", pos: start}, nil
	case '|', '+', '∨':
		l.pos++
		return token{typ: tokenOr, value: "v", pos: start}, nil
	case '⊤':
		l.pos++
		return token{typ: tokenTrue, value: "T", pos: start}, nil
	case '⊥':
		l.pos++
		return token{typ: tokenFalse, value: "F", pos: start}, nil
	case '(':
		l.pos++
		return token{typ: tokenLParen, value: "(", pos: start}, nil
	case ')':
		l.pos++
		return token{typ: tokenRParen, value: ")", pos: start}, nil
	}

	if isIdentStart(ch) {
		word := l.scanWord()
		return keywordOrAtom(word, start), nil
	}

	return token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", string(ch))}
}

func (l *lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// keywordOrAtom resolves a scanned identifier: operator keywords and
// constant spellings win over variable names, everything else is an atom.
func keywordOrAtom(word string, pos int) token {
	switch strings.ToUpper(word) {
	case "NOT":
		return token{typ: tokenNot, value: "~", pos: pos}
	case "AND":
		return token{typ: tokenAnd, value: "^", pos: pos}
	case "OR", "V":
		return token{typ: tokenOr, value: "v", pos: pos}
	case "IMPLIES":
		return token{typ: tokenImplies, value: "->", pos: pos}
	case "T", "TRUE":
		return token{typ: tokenTrue, value: "T", pos: pos}
	case "F", "FALSE":
		return token{typ: tokenFalse, value: "F", pos: pos}
	}
	return token{typ: tokenAtom, value: word, pos: pos}
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
