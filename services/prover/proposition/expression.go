// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package proposition implements the propositional-logic expression model:
// an immutable AST, a parser for the infix textual syntax, and the
// canonical serializer.
//
// # Description
//
// Expressions are built from variables, the truth constants T and F,
// negation, conjunction, disjunction, and implication. Nodes are never
// mutated after construction; every transformation produces a new tree,
// sharing untouched subtrees with the original. Structural equality and
// positional addressing (see Path) are the primitives the law catalog and
// the proof engine are built on.
//
// # Thread Safety
//
// Expressions are immutable and safe to share across goroutines.
package proposition

import (
	"fmt"
	"strings"
)

// =============================================================================
// AST Node Types
// =============================================================================

// Expr is a propositional-logic expression node.
//
// The concrete types are *Var, *Const, *Not, *And, *Or, and *Implies.
// String returns the canonical textual form: binary operators are always
// parenthesized, negation binds directly to its operand, constants render
// as "T" and "F". Parse(e.String()) always yields a tree structurally
// equal to e.
type Expr interface {
	String() string

	// node limits implementations to this package, keeping the variant closed.
	node()
}

// Var is an atomic proposition referenced by name.
// Names are case-sensitive identifiers matching [A-Za-z][A-Za-z0-9]*.
type Var struct {
	Name string
}

// Const is one of the truth constants T (true) or F (false).
type Const struct {
	Value bool
}

// Not is the negation of its operand.
type Not struct {
	Operand Expr
}

// And is the conjunction of two expressions.
type And struct {
	Left, Right Expr
}

// Or is the disjunction of two expressions.
type Or struct {
	Left, Right Expr
}

// Implies is the material implication Left -> Right.
type Implies struct {
	Left, Right Expr
}

func (*Var) node()     {}
func (*Const) node()   {}
func (*Not) node()     {}
func (*And) node()     {}
func (*Or) node()      {}
func (*Implies) node() {}

func (v *Var) String() string { return v.Name }

func (c *Const) String() string {
	if c.Value {
		return "T"
	}
	return "F"
}

func (n *Not) String() string { return "~" + n.Operand.String() }

func (a *And) String() string {
	return "(" + a.Left.String() + " ^ " + a.Right.String() + ")"
}

func (o *Or) String() string {
	return "(" + o.Left.String() + " v " + o.Right.String() + ")"
}

func (i *Implies) String() string {
	return "(" + i.Left.String() + " -> " + i.Right.String() + ")"
}

// =============================================================================
// Structural Equality
// =============================================================================

// Equal reports whether two expressions have identical structure.
//
// Variables compare by name, constants by value. This is the termination
// predicate of the proof engine: a rewrite proof succeeds exactly when the
// two live propositions become structurally equal.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *Const:
		y, ok := b.(*Const)
		return ok && x.Value == y.Value
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.Operand, y.Operand)
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Implies:
		y, ok := b.(*Implies)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	return false
}

// =============================================================================
// Positional Addressing
// =============================================================================

// Path addresses a subexpression by the child indices walked from the root.
// Index 0 is the operand of a negation or the left child of a binary node;
// index 1 is the right child. The empty path addresses the root.
//
// Paths keep rewrites immutable: instead of editing a tree in place, the
// engine replaces the node at a path, rebuilding only the spine above it.
type Path []int

// String renders the path in dotted form for traces and logs ("root",
// "0.1", ...).
func (p Path) String() string {
	if len(p) == 0 {
		return "root"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ".")
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// At returns the subexpression addressed by path.
func At(e Expr, path Path) (Expr, error) {
	cur := e
	for depth, idx := range path {
		child, err := childAt(cur, idx)
		if err != nil {
			return nil, fmt.Errorf("path %s invalid at depth %d: %w", path, depth, err)
		}
		cur = child
	}
	return cur, nil
}

// Replace returns a new expression with the node at path swapped for repl.
// The original tree is untouched; subtrees outside the path are shared.
func Replace(e Expr, path Path, repl Expr) (Expr, error) {
	if len(path) == 0 {
		return repl, nil
	}
	idx := path[0]
	rest := path[1:]

	switch x := e.(type) {
	case *Not:
		if idx != 0 {
			return nil, fmt.Errorf("negation has no child %d", idx)
		}
		inner, err := Replace(x.Operand, rest, repl)
		if err != nil {
			return nil, err
		}
		return &Not{Operand: inner}, nil
	case *And:
		l, r, err := replaceBinary(x.Left, x.Right, idx, rest, repl)
		if err != nil {
			return nil, err
		}
		return &And{Left: l, Right: r}, nil
	case *Or:
		l, r, err := replaceBinary(x.Left, x.Right, idx, rest, repl)
		if err != nil {
			return nil, err
		}
		return &Or{Left: l, Right: r}, nil
	case *Implies:
		l, r, err := replaceBinary(x.Left, x.Right, idx, rest, repl)
		if err != nil {
			return nil, err
		}
		return &Implies{Left: l, Right: r}, nil
	default:
		return nil, fmt.Errorf("leaf node has no child %d", idx)
	}
}

// Positions returns the paths of every subexpression in pre-order
// (root first, then left subtree, then right subtree). The ordering is
// deterministic and is what makes rewrite enumeration reproducible.
func Positions(e Expr) []Path {
	var out []Path
	var walk func(node Expr, path Path)
	walk = func(node Expr, path Path) {
		out = append(out, path.Clone())
		switch x := node.(type) {
		case *Not:
			walk(x.Operand, append(path, 0))
		case *And:
			walk(x.Left, append(path, 0))
			walk(x.Right, append(path, 1))
		case *Or:
			walk(x.Left, append(path, 0))
			walk(x.Right, append(path, 1))
		case *Implies:
			walk(x.Left, append(path, 0))
			walk(x.Right, append(path, 1))
		}
	}
	walk(e, Path{})
	return out
}

// Subexpressions returns the serialized form of every distinct
// subexpression in pre-order. Used for the truth-table display columns.
func Subexpressions(e Expr) []string {
	seen := make(map[string]bool)
	var out []string
	for _, path := range Positions(e) {
		sub, err := At(e, path)
		if err != nil {
			continue
		}
		text := sub.String()
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}
	return out
}

func childAt(e Expr, idx int) (Expr, error) {
	switch x := e.(type) {
	case *Not:
		if idx == 0 {
			return x.Operand, nil
		}
	case *And:
		if idx == 0 {
			return x.Left, nil
		}
		if idx == 1 {
			return x.Right, nil
		}
	case *Or:
		if idx == 0 {
			return x.Left, nil
		}
		if idx == 1 {
			return x.Right, nil
		}
	case *Implies:
		if idx == 0 {
			return x.Left, nil
		}
		if idx == 1 {
			return x.Right, nil
		}
	}
	return nil, fmt.Errorf("no child at index %d", idx)
}

func replaceBinary(left, right Expr, idx int, rest Path, repl Expr) (Expr, Expr, error) {
	switch idx {
	case 0:
		l, err := Replace(left, rest, repl)
		return l, right, err
	case 1:
		r, err := Replace(right, rest, repl)
		return left, r, err
	default:
		return nil, nil, fmt.Errorf("binary node has no child %d", idx)
	}
}
