/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mathexpr evaluates arithmetic expressions in dimensional token
// values, preserving the shared unit suffix of the operands.
package mathexpr

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	exprlang "github.com/expr-lang/expr"

	"bennypowers.dev/gvanim/token"
)

// operandPattern matches a numeric literal with an optional unit suffix
// (8, 8.5, 8px, 50%, 1.25rem).
var operandPattern = regexp.MustCompile(`(\d*\.?\d+)\s*(%|[a-zA-Z]+)?`)

// exprCharPattern accepts what remains of an expression once operands are
// stripped: operators, parentheses, and whitespace.
var exprCharPattern = regexp.MustCompile(`^[\s()+\-*/]*$`)

// HasExpression reports whether a substituted string value contains
// arithmetic to evaluate: at least one operator between operands. Bare
// values like "8px" or "-4" are not expressions.
func HasExpression(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" || strings.ContainsAny(s, "{}") {
		// Unresolved references are never handed to the evaluator.
		return false
	}
	stripped := operandPattern.ReplaceAllString(s, "")
	if !strings.ContainsAny(stripped, "+-*/") {
		return false
	}
	// A single operand with a leading sign is not an expression.
	if t := strings.TrimLeft(s, "+-"); !strings.ContainsAny(operandPattern.ReplaceAllString(t, ""), "+-*/") {
		return false
	}
	return true
}

// Eval evaluates the arithmetic expression in value and re-attaches the
// operands' shared unit. Addition and subtraction require one consistent
// unit across operands; scaling by unitless literals is always permitted.
// Mixed units are a token.ErrUnitMismatch; anything unparseable is a
// token.ErrMalformedExpression.
func Eval(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", token.ErrMalformedExpression)
	}

	unit := ""
	units := map[string]bool{}
	numeric := operandPattern.ReplaceAllStringFunc(s, func(operand string) string {
		m := operandPattern.FindStringSubmatch(operand)
		if m[2] != "" {
			units[m[2]] = true
			unit = m[2]
		}
		return m[1]
	})

	if len(units) > 1 {
		var list []string
		for u := range units {
			list = append(list, u)
		}
		// Deterministic error text.
		sort.Strings(list)
		return "", fmt.Errorf("%w: %s in %q", token.ErrUnitMismatch, strings.Join(list, " vs "), value)
	}

	if !exprCharPattern.MatchString(operandPattern.ReplaceAllString(s, "")) {
		return "", fmt.Errorf("%w: %q", token.ErrMalformedExpression, value)
	}

	if unit != "" && unitByUnit(s) {
		return "", fmt.Errorf("%w: %s * %s in %q", token.ErrUnitMismatch, unit, unit, value)
	}

	out, err := exprlang.Eval(numeric, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", token.ErrMalformedExpression, value, err)
	}

	var n float64
	switch v := out.(type) {
	case int:
		n = float64(v)
	case float64:
		n = v
	default:
		return "", fmt.Errorf("%w: %q evaluated to %T", token.ErrMalformedExpression, value, out)
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return "", fmt.Errorf("%w: %q has no finite result", token.ErrMalformedExpression, value)
	}

	return FormatNumber(n) + unit, nil
}

// FormatNumber renders a result without float noise, rounding to six
// decimal places and trimming trailing zeros.
func FormatNumber(n float64) string {
	rounded := math.Round(n*1e6) / 1e6
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// unitByUnit reports whether any multiplication or division combines two
// unit-bearing operands. Scaling a unit value by a unitless literal is
// fine; px times px has no meaning in a token value. The walk follows
// operator precedence, and a parenthesized group carries a unit when any
// operand inside it does. Structurally broken input returns false; the
// evaluator rejects it on its own.
func unitByUnit(s string) bool {
	p := &unitParser{toks: unitTokens(s)}
	p.expr()
	return p.found
}

// unitTok is one lexical element of an expression, reduced to what unit
// checking needs: an operator or paren byte, or an operand with a unit
// presence flag.
type unitTok struct {
	op   byte
	unit bool
}

func unitTokens(s string) []unitTok {
	var toks []unitTok
	pos := 0
	for _, m := range operandPattern.FindAllStringSubmatchIndex(s, -1) {
		toks = appendOps(toks, s[pos:m[0]])
		toks = append(toks, unitTok{unit: m[4] >= 0})
		pos = m[1]
	}
	return appendOps(toks, s[pos:])
}

func appendOps(toks []unitTok, gap string) []unitTok {
	for i := 0; i < len(gap); i++ {
		switch gap[i] {
		case '+', '-', '*', '/', '(', ')':
			toks = append(toks, unitTok{op: gap[i]})
		}
	}
	return toks
}

// unitParser runs precedence-aware recursive descent over the token list,
// tracking only whether each subexpression carries a unit.
type unitParser struct {
	toks  []unitTok
	pos   int
	found bool
}

func (p *unitParser) expr() bool {
	hasUnit := p.term()
	for p.peekOp('+', '-') {
		p.pos++
		if p.term() {
			hasUnit = true
		}
	}
	return hasUnit
}

func (p *unitParser) term() bool {
	hasUnit := p.factor()
	for p.peekOp('*', '/') {
		p.pos++
		right := p.factor()
		if hasUnit && right {
			p.found = true
		}
		hasUnit = hasUnit || right
	}
	return hasUnit
}

func (p *unitParser) factor() bool {
	for p.peekOp('+', '-') {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return false
	}
	t := p.toks[p.pos]
	p.pos++
	if t.op == '(' {
		hasUnit := p.expr()
		if p.peekOp(')') {
			p.pos++
		}
		return hasUnit
	}
	if t.op == 0 {
		return t.unit
	}
	return false
}

func (p *unitParser) peekOp(ops ...byte) bool {
	if p.pos >= len(p.toks) {
		return false
	}
	for _, op := range ops {
		if p.toks[p.pos].op == op {
			return true
		}
	}
	return false
}
