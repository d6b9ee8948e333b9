// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package truthtable evaluates propositions and enumerates truth tables.
//
// # Description
//
// The truth table over the union of free variables of two propositions is
// the semantic-equivalence baseline of the prover: two propositions are
// equivalent exactly when their root values agree on every row. Enumeration
// is exponential in the variable count, so it is capped before any rows are
// allocated (DefaultMaxVariables unless configured otherwise).
//
// # Thread Safety
//
// Tables are built once and read-only afterwards; all functions are pure.
package truthtable

import (
	"fmt"
	"sort"

	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
)

// DefaultMaxVariables caps the number of distinct free variables a table
// enumeration will accept. 2^20 rows is the most the service will compute
// for a single request.
const DefaultMaxVariables = 20

// =============================================================================
// Errors
// =============================================================================

// UnboundVariableError reports evaluation of an expression under an
// assignment that is missing one of its free variables.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable %q has no assigned value", e.Name)
}

// TooManyVariablesError reports a truth-table request over more free
// variables than the configured cap allows.
type TooManyVariablesError struct {
	Count int
	Max   int
}

func (e *TooManyVariablesError) Error() string {
	return fmt.Sprintf("propositions use %d variables, the table limit is %d", e.Count, e.Max)
}

// =============================================================================
// Evaluation
// =============================================================================

// FreeVariables returns the free variable names of an expression in
// first-occurrence (pre-order) order.
func FreeVariables(e proposition.Expr) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(node proposition.Expr)
	walk = func(node proposition.Expr) {
		switch x := node.(type) {
		case *proposition.Var:
			if !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x.Name)
			}
		case *proposition.Not:
			walk(x.Operand)
		case *proposition.And:
			walk(x.Left)
			walk(x.Right)
		case *proposition.Or:
			walk(x.Left)
			walk(x.Right)
		case *proposition.Implies:
			walk(x.Left)
			walk(x.Right)
		}
	}
	walk(e)
	return out
}

// Evaluate computes the truth value of an expression under the given
// assignment. Returns *UnboundVariableError if a free variable of the
// expression is not present in the assignment.
func Evaluate(e proposition.Expr, assignment map[string]bool) (bool, error) {
	switch x := e.(type) {
	case *proposition.Var:
		value, ok := assignment[x.Name]
		if !ok {
			return false, &UnboundVariableError{Name: x.Name}
		}
		return value, nil
	case *proposition.Const:
		return x.Value, nil
	case *proposition.Not:
		inner, err := Evaluate(x.Operand, assignment)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case *proposition.And:
		l, err := Evaluate(x.Left, assignment)
		if err != nil {
			return false, err
		}
		r, err := Evaluate(x.Right, assignment)
		if err != nil {
			return false, err
		}
		return l && r, nil
	case *proposition.Or:
		l, err := Evaluate(x.Left, assignment)
		if err != nil {
			return false, err
		}
		r, err := Evaluate(x.Right, assignment)
		if err != nil {
			return false, err
		}
		return l || r, nil
	case *proposition.Implies:
		l, err := Evaluate(x.Left, assignment)
		if err != nil {
			return false, err
		}
		r, err := Evaluate(x.Right, assignment)
		if err != nil {
			return false, err
		}
		return !l || r, nil
	}
	return false, fmt.Errorf("unknown expression node %T", e)
}

// =============================================================================
// Table
// =============================================================================

// Row is one assignment over the shared variable list plus everything
// evaluated under it: each subexpression of both propositions and the two
// root values.
type Row struct {
	// Assignment holds the variable values, index-aligned with
	// Table.Variables.
	Assignment []bool `json:"assignment"`

	// ValuesP1 holds the value of each entry of Table.SubexpressionsP1.
	ValuesP1 []bool `json:"values_p1"`

	// ValuesP2 holds the value of each entry of Table.SubexpressionsP2.
	ValuesP2 []bool `json:"values_p2"`

	// Prop1 and Prop2 are the root values used for the equivalence verdict.
	Prop1 bool `json:"p1"`
	Prop2 bool `json:"p2"`
}

// Table is the joint truth table of two propositions.
type Table struct {
	// Variables is the sorted union of both propositions' free variables.
	Variables []string `json:"variables"`

	// SubexpressionsP1 and SubexpressionsP2 list the distinct
	// subexpressions of each proposition in pre-order, serialized.
	SubexpressionsP1 []string `json:"subexpressions_p1"`
	SubexpressionsP2 []string `json:"subexpressions_p2"`

	Rows []Row `json:"rows"`
}

// New enumerates the joint truth table of e1 and e2.
//
// # Description
//
// The variable list is the sorted union of both free-variable sets, so row
// ordering is deterministic for a given pair of inputs. All 2^n
// assignments are enumerated; bit i of the row index is the value of
// variable i. maxVariables <= 0 falls back to DefaultMaxVariables.
//
// # Outputs
//
//   - *Table: The complete table.
//   - error: *TooManyVariablesError if the union exceeds the cap. The check
//     runs before any row is allocated.
func New(e1, e2 proposition.Expr, maxVariables int) (*Table, error) {
	if maxVariables <= 0 {
		maxVariables = DefaultMaxVariables
	}

	union := map[string]bool{}
	for _, name := range FreeVariables(e1) {
		union[name] = true
	}
	for _, name := range FreeVariables(e2) {
		union[name] = true
	}

	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > maxVariables {
		return nil, &TooManyVariablesError{Count: len(names), Max: maxVariables}
	}

	table := &Table{
		Variables:        names,
		SubexpressionsP1: proposition.Subexpressions(e1),
		SubexpressionsP2: proposition.Subexpressions(e2),
	}

	subs1 := subexpressionTrees(e1, table.SubexpressionsP1)
	subs2 := subexpressionTrees(e2, table.SubexpressionsP2)

	rowCount := 1 << len(names)
	table.Rows = make([]Row, 0, rowCount)
	assignment := make(map[string]bool, len(names))

	for i := 0; i < rowCount; i++ {
		row := Row{Assignment: make([]bool, len(names))}
		for j, name := range names {
			value := (i>>j)&1 == 1
			assignment[name] = value
			row.Assignment[j] = value
		}

		var err error
		row.ValuesP1, err = evaluateAll(subs1, assignment)
		if err != nil {
			return nil, err
		}
		row.ValuesP2, err = evaluateAll(subs2, assignment)
		if err != nil {
			return nil, err
		}

		row.Prop1, err = Evaluate(e1, assignment)
		if err != nil {
			return nil, err
		}
		row.Prop2, err = Evaluate(e2, assignment)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Equivalent reports whether the two propositions agree on every row.
// This is the semantic verdict the prover falls back to when no syntactic
// proof is found within budget.
func (t *Table) Equivalent() bool {
	for _, row := range t.Rows {
		if row.Prop1 != row.Prop2 {
			return false
		}
	}
	return true
}

// subexpressionTrees resolves the serialized subexpression list back to
// one representative tree per entry.
func subexpressionTrees(e proposition.Expr, texts []string) []proposition.Expr {
	byText := make(map[string]proposition.Expr)
	for _, path := range proposition.Positions(e) {
		sub, err := proposition.At(e, path)
		if err != nil {
			continue
		}
		text := sub.String()
		if _, ok := byText[text]; !ok {
			byText[text] = sub
		}
	}
	out := make([]proposition.Expr, len(texts))
	for i, text := range texts {
		out[i] = byText[text]
	}
	return out
}

func evaluateAll(exprs []proposition.Expr, assignment map[string]bool) ([]bool, error) {
	values := make([]bool, len(exprs))
	for i, sub := range exprs {
		value, err := Evaluate(sub, assignment)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}
