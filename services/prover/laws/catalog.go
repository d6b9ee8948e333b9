// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package laws

import (
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
)

// catalog is the fixed, ordered law registry. Registration order is part
// of the prover's deterministic candidate ordering; append only.
var catalog = []Law{
	{
		ID:          "double_negation",
		Description: "~~p => p",
		Apply:       applyDoubleNegation,
	},
	{
		ID:          "idempotence",
		Description: "p ^ p => p, p v p => p",
		Apply:       applyIdempotence,
	},
	{
		ID:          "absorption",
		Description: "p ^ (p v q) => p, p v (p ^ q) => p",
		Apply:       applyAbsorption,
	},
	{
		ID:          "implication_elimination",
		Description: "p -> q => ~p v q",
		Apply:       applyImplicationElimination,
	},
	{
		ID:          "implication_introduction",
		Description: "~p v q => p -> q",
		Apply:       applyImplicationIntroduction,
	},
	{
		ID:          "de_morgan",
		Description: "~(p ^ q) => ~p v ~q, ~(p v q) => ~p ^ ~q",
		Apply:       applyDeMorgan,
	},
	{
		ID:          "de_morgan_reverse",
		Description: "~p v ~q => ~(p ^ q), ~p ^ ~q => ~(p v q)",
		Apply:       applyDeMorganReverse,
	},
	{
		ID:          "commutativity",
		Description: "p ^ q => q ^ p, p v q => q v p",
		Apply:       applyCommutativity,
	},
	{
		ID:          "associativity",
		Description: "(p ^ q) ^ r => p ^ (q ^ r), (p v q) v r => p v (q v r)",
		Apply:       applyAssociativity,
	},
	{
		ID:          "distributivity",
		Description: "p ^ (q v r) => (p ^ q) v (p ^ r), p v (q ^ r) => (p v q) ^ (p v r)",
		Apply:       applyDistributivity,
	},
	{
		ID:          "factoring",
		Description: "(p ^ q) v (p ^ r) => p ^ (q v r), (p v q) ^ (p v r) => p v (q ^ r)",
		Apply:       applyFactoring,
	},
	{
		ID:          "contraposition",
		Description: "p -> q => ~q -> ~p",
		Apply:       applyContraposition,
	},
	{
		ID:          "complement",
		Description: "p v ~p => T, p ^ ~p => F",
		Apply:       applyComplement,
	},
	{
		ID:          "identity",
		Description: "p ^ T => p, p v F => p",
		Apply:       applyIdentity,
	},
	{
		ID:          "domination",
		Description: "p v T => T, p ^ F => F",
		Apply:       applyDomination,
	},
	{
		ID:          "negation_constant",
		Description: "~T => F, ~F => T",
		Apply:       applyNegationConstant,
	},
	{
		ID:          "implication_constant",
		Description: "T -> p => p, F -> p => T, p -> T => T, p -> F => ~p",
		Apply:       applyImplicationConstant,
	},
}

// Catalog returns the shared law registry in registration order.
// Callers must not modify the returned slice.
func Catalog() []Law {
	return catalog
}

// ByID looks a law up by identifier.
func ByID(id string) (Law, bool) {
	for _, law := range catalog {
		if law.ID == id {
			return law, true
		}
	}
	return Law{}, false
}

// =============================================================================
// Law Implementations
// =============================================================================

// applyDoubleNegation: ~~p => p.
func applyDoubleNegation(e proposition.Expr) (proposition.Expr, bool) {
	outer, ok := e.(*proposition.Not)
	if !ok {
		return nil, false
	}
	inner, ok := outer.Operand.(*proposition.Not)
	if !ok {
		return nil, false
	}
	return inner.Operand, true
}

// applyIdempotence: p ^ p => p, p v p => p.
func applyIdempotence(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		if proposition.Equal(x.Left, x.Right) {
			return x.Left, true
		}
	case *proposition.Or:
		if proposition.Equal(x.Left, x.Right) {
			return x.Left, true
		}
	}
	return nil, false
}

// applyAbsorption covers both operand orders of both forms:
// p ^ (p v q), (p v q) ^ p, p v (p ^ q), (p ^ q) v p, all reducing to p.
func applyAbsorption(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		if or, ok := x.Right.(*proposition.Or); ok && containsOperand(or.Left, or.Right, x.Left) {
			return x.Left, true
		}
		if or, ok := x.Left.(*proposition.Or); ok && containsOperand(or.Left, or.Right, x.Right) {
			return x.Right, true
		}
	case *proposition.Or:
		if and, ok := x.Right.(*proposition.And); ok && containsOperand(and.Left, and.Right, x.Left) {
			return x.Left, true
		}
		if and, ok := x.Left.(*proposition.And); ok && containsOperand(and.Left, and.Right, x.Right) {
			return x.Right, true
		}
	}
	return nil, false
}

// applyImplicationElimination: p -> q => ~p v q.
func applyImplicationElimination(e proposition.Expr) (proposition.Expr, bool) {
	imp, ok := e.(*proposition.Implies)
	if !ok {
		return nil, false
	}
	return &proposition.Or{
		Left:  &proposition.Not{Operand: imp.Left},
		Right: imp.Right,
	}, true
}

// applyImplicationIntroduction: ~p v q => p -> q.
func applyImplicationIntroduction(e proposition.Expr) (proposition.Expr, bool) {
	or, ok := e.(*proposition.Or)
	if !ok {
		return nil, false
	}
	neg, ok := or.Left.(*proposition.Not)
	if !ok {
		return nil, false
	}
	return &proposition.Implies{Left: neg.Operand, Right: or.Right}, true
}

// applyDeMorgan: ~(p ^ q) => ~p v ~q, ~(p v q) => ~p ^ ~q.
func applyDeMorgan(e proposition.Expr) (proposition.Expr, bool) {
	neg, ok := e.(*proposition.Not)
	if !ok {
		return nil, false
	}
	switch inner := neg.Operand.(type) {
	case *proposition.And:
		return &proposition.Or{
			Left:  &proposition.Not{Operand: inner.Left},
			Right: &proposition.Not{Operand: inner.Right},
		}, true
	case *proposition.Or:
		return &proposition.And{
			Left:  &proposition.Not{Operand: inner.Left},
			Right: &proposition.Not{Operand: inner.Right},
		}, true
	}
	return nil, false
}

// applyDeMorganReverse: ~p v ~q => ~(p ^ q), ~p ^ ~q => ~(p v q).
func applyDeMorganReverse(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.Or:
		l, lok := x.Left.(*proposition.Not)
		r, rok := x.Right.(*proposition.Not)
		if lok && rok {
			return &proposition.Not{
				Operand: &proposition.And{Left: l.Operand, Right: r.Operand},
			}, true
		}
	case *proposition.And:
		l, lok := x.Left.(*proposition.Not)
		r, rok := x.Right.(*proposition.Not)
		if lok && rok {
			return &proposition.Not{
				Operand: &proposition.Or{Left: l.Operand, Right: r.Operand},
			}, true
		}
	}
	return nil, false
}

// applyCommutativity: p ^ q => q ^ p, p v q => q v p.
func applyCommutativity(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		return &proposition.And{Left: x.Right, Right: x.Left}, true
	case *proposition.Or:
		return &proposition.Or{Left: x.Right, Right: x.Left}, true
	}
	return nil, false
}

// applyAssociativity regroups left-nested chains rightward:
// (p ^ q) ^ r => p ^ (q ^ r), (p v q) v r => p v (q v r).
// One direction only, so candidate enumeration stays finite per node.
func applyAssociativity(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		if inner, ok := x.Left.(*proposition.And); ok {
			return &proposition.And{
				Left:  inner.Left,
				Right: &proposition.And{Left: inner.Right, Right: x.Right},
			}, true
		}
	case *proposition.Or:
		if inner, ok := x.Left.(*proposition.Or); ok {
			return &proposition.Or{
				Left:  inner.Left,
				Right: &proposition.Or{Left: inner.Right, Right: x.Right},
			}, true
		}
	}
	return nil, false
}

// applyDistributivity: p ^ (q v r) => (p ^ q) v (p ^ r),
// p v (q ^ r) => (p v q) ^ (p v r).
func applyDistributivity(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		if or, ok := x.Right.(*proposition.Or); ok {
			return &proposition.Or{
				Left:  &proposition.And{Left: x.Left, Right: or.Left},
				Right: &proposition.And{Left: x.Left, Right: or.Right},
			}, true
		}
	case *proposition.Or:
		if and, ok := x.Right.(*proposition.And); ok {
			return &proposition.And{
				Left:  &proposition.Or{Left: x.Left, Right: and.Left},
				Right: &proposition.Or{Left: x.Left, Right: and.Right},
			}, true
		}
	}
	return nil, false
}

// applyFactoring is distributivity run backwards:
// (p ^ q) v (p ^ r) => p ^ (q v r), (p v q) ^ (p v r) => p v (q ^ r).
func applyFactoring(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.Or:
		l, lok := x.Left.(*proposition.And)
		r, rok := x.Right.(*proposition.And)
		if lok && rok && proposition.Equal(l.Left, r.Left) {
			return &proposition.And{
				Left:  l.Left,
				Right: &proposition.Or{Left: l.Right, Right: r.Right},
			}, true
		}
	case *proposition.And:
		l, lok := x.Left.(*proposition.Or)
		r, rok := x.Right.(*proposition.Or)
		if lok && rok && proposition.Equal(l.Left, r.Left) {
			return &proposition.Or{
				Left:  l.Left,
				Right: &proposition.And{Left: l.Right, Right: r.Right},
			}, true
		}
	}
	return nil, false
}

// applyContraposition: p -> q => ~q -> ~p.
func applyContraposition(e proposition.Expr) (proposition.Expr, bool) {
	imp, ok := e.(*proposition.Implies)
	if !ok {
		return nil, false
	}
	return &proposition.Implies{
		Left:  &proposition.Not{Operand: imp.Right},
		Right: &proposition.Not{Operand: imp.Left},
	}, true
}

// applyComplement: p v ~p => T, p ^ ~p => F (either operand order).
func applyComplement(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.Or:
		if isComplementPair(x.Left, x.Right) {
			return &proposition.Const{Value: true}, true
		}
	case *proposition.And:
		if isComplementPair(x.Left, x.Right) {
			return &proposition.Const{Value: false}, true
		}
	}
	return nil, false
}

// applyIdentity: p ^ T => p, p v F => p (either operand order).
func applyIdentity(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.And:
		if isConst(x.Right, true) {
			return x.Left, true
		}
		if isConst(x.Left, true) {
			return x.Right, true
		}
	case *proposition.Or:
		if isConst(x.Right, false) {
			return x.Left, true
		}
		if isConst(x.Left, false) {
			return x.Right, true
		}
	}
	return nil, false
}

// applyDomination: p v T => T, p ^ F => F (either operand order).
func applyDomination(e proposition.Expr) (proposition.Expr, bool) {
	switch x := e.(type) {
	case *proposition.Or:
		if isConst(x.Left, true) || isConst(x.Right, true) {
			return &proposition.Const{Value: true}, true
		}
	case *proposition.And:
		if isConst(x.Left, false) || isConst(x.Right, false) {
			return &proposition.Const{Value: false}, true
		}
	}
	return nil, false
}

// applyNegationConstant: ~T => F, ~F => T.
func applyNegationConstant(e proposition.Expr) (proposition.Expr, bool) {
	neg, ok := e.(*proposition.Not)
	if !ok {
		return nil, false
	}
	c, ok := neg.Operand.(*proposition.Const)
	if !ok {
		return nil, false
	}
	return &proposition.Const{Value: !c.Value}, true
}

// applyImplicationConstant: T -> p => p, F -> p => T, p -> T => T,
// p -> F => ~p. Patterns are tried in that order when both sides are
// constants.
func applyImplicationConstant(e proposition.Expr) (proposition.Expr, bool) {
	imp, ok := e.(*proposition.Implies)
	if !ok {
		return nil, false
	}
	if c, ok := imp.Left.(*proposition.Const); ok {
		if c.Value {
			return imp.Right, true
		}
		return &proposition.Const{Value: true}, true
	}
	if c, ok := imp.Right.(*proposition.Const); ok {
		if c.Value {
			return &proposition.Const{Value: true}, true
		}
		return &proposition.Not{Operand: imp.Left}, true
	}
	return nil, false
}

// =============================================================================
// Pattern Helpers
// =============================================================================

func isConst(e proposition.Expr, value bool) bool {
	c, ok := e.(*proposition.Const)
	return ok && c.Value == value
}

// isComplementPair reports whether one operand is the negation of the other.
func isComplementPair(a, b proposition.Expr) bool {
	if neg, ok := b.(*proposition.Not); ok && proposition.Equal(a, neg.Operand) {
		return true
	}
	if neg, ok := a.(*proposition.Not); ok && proposition.Equal(b, neg.Operand) {
		return true
	}
	return false
}

// containsOperand reports whether target equals either of the two operands.
func containsOperand(a, b, target proposition.Expr) bool {
	return proposition.Equal(a, target) || proposition.Equal(b, target)
}
