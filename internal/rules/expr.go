// Package rules evaluates first-match rule sets built from a small boolean
// expression tree over named numeric fields.
//
// Evaluation is three-valued: a null field makes a comparison Unknown and
// Unknown propagates through And, Or and Not the way SQL does. A rule only
// fires where its predicate is True.
package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Truth is a three-valued logic result.
type Truth int8

const (
	Unknown Truth = iota
	False
	True
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

func truth(b bool) Truth {
	if b {
		return True
	}
	return False
}

// Frame is a column-oriented view of the rows being evaluated. Values
// returns ok=false when the field does not exist at all.
type Frame interface {
	Len() int
	Values(field string) (vals []float64, valid []bool, ok bool)
}

// Expr is a vectorised predicate: Eval returns one Truth per frame row.
type Expr interface {
	Eval(f Frame) []Truth
	Fields() []string
	String() string
	walk(fn func(Expr))
}

// Op is a numeric comparison operator.
type Op int

const (
	LT Op = iota
	LE
	GT
	GE
)

func (o Op) String() string {
	switch o {
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	}
	return ">="
}

func (o Op) apply(a, b float64) bool {
	switch o {
	case LT:
		return a < b
	case LE:
		return a <= b
	case GT:
		return a > b
	}
	return a >= b
}

type flagExpr struct {
	field string
}

// Flag is True where a binary field equals 1.
func Flag(field string) Expr { return flagExpr{field: field} }

func (e flagExpr) Eval(f Frame) []Truth {
	out := make([]Truth, f.Len())
	vals, valid, ok := f.Values(e.field)
	if !ok {
		return out
	}
	for i := range out {
		if valid[i] {
			out[i] = truth(vals[i] == 1)
		}
	}
	return out
}

func (e flagExpr) Fields() []string   { return []string{e.field} }
func (e flagExpr) String() string     { return e.field }
func (e flagExpr) walk(fn func(Expr)) { fn(e) }

type cmpExpr struct {
	field string
	op    Op
	value float64
}

// Cmp compares a numeric field against a constant.
func Cmp(field string, op Op, value float64) Expr {
	return cmpExpr{field: field, op: op, value: value}
}

// Lt is shorthand for Cmp(field, LT, v).
func Lt(field string, v float64) Expr { return Cmp(field, LT, v) }

// Ge is shorthand for Cmp(field, GE, v).
func Ge(field string, v float64) Expr { return Cmp(field, GE, v) }

func (e cmpExpr) Eval(f Frame) []Truth {
	out := make([]Truth, f.Len())
	vals, valid, ok := f.Values(e.field)
	if !ok {
		return out
	}
	for i := range out {
		if valid[i] {
			out[i] = truth(e.op.apply(vals[i], e.value))
		}
	}
	return out
}

func (e cmpExpr) Fields() []string { return []string{e.field} }
func (e cmpExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.field, e.op, strconv.FormatFloat(e.value, 'g', -1, 64))
}
func (e cmpExpr) walk(fn func(Expr)) { fn(e) }

type notExpr struct {
	x Expr
}

// Not negates x; Unknown stays Unknown.
func Not(x Expr) Expr { return notExpr{x: x} }

func (e notExpr) Eval(f Frame) []Truth {
	out := e.x.Eval(f)
	for i, v := range out {
		switch v {
		case True:
			out[i] = False
		case False:
			out[i] = True
		}
	}
	return out
}

func (e notExpr) Fields() []string { return e.x.Fields() }
func (e notExpr) String() string   { return "not " + e.x.String() }
func (e notExpr) walk(fn func(Expr)) {
	fn(e)
	e.x.walk(fn)
}

type andExpr struct {
	xs []Expr
}

// And is True when every operand is True and False when any is False.
func And(xs ...Expr) Expr { return andExpr{xs: xs} }

func (e andExpr) Eval(f Frame) []Truth {
	out := make([]Truth, f.Len())
	for i := range out {
		out[i] = True
	}
	for _, x := range e.xs {
		for i, v := range x.Eval(f) {
			switch {
			case out[i] == False || v == False:
				out[i] = False
			case v == Unknown:
				out[i] = Unknown
			}
		}
	}
	return out
}

func (e andExpr) Fields() []string { return collectFields(e.xs) }
func (e andExpr) String() string   { return join(e.xs, " AND ") }
func (e andExpr) walk(fn func(Expr)) {
	fn(e)
	for _, x := range e.xs {
		x.walk(fn)
	}
}

type orExpr struct {
	xs []Expr
}

// Or is True when any operand is True and False when every operand is False.
func Or(xs ...Expr) Expr { return orExpr{xs: xs} }

func (e orExpr) Eval(f Frame) []Truth {
	out := make([]Truth, f.Len())
	for i := range out {
		out[i] = False
	}
	for _, x := range e.xs {
		for i, v := range x.Eval(f) {
			switch {
			case out[i] == True || v == True:
				out[i] = True
			case v == Unknown:
				out[i] = Unknown
			}
		}
	}
	return out
}

func (e orExpr) Fields() []string { return collectFields(e.xs) }
func (e orExpr) String() string {
	parts := make([]string, len(e.xs))
	for i, x := range e.xs {
		parts[i] = "(" + x.String() + ")"
	}
	return strings.Join(parts, " OR ")
}
func (e orExpr) walk(fn func(Expr)) {
	fn(e)
	for _, x := range e.xs {
		x.walk(fn)
	}
}

func collectFields(xs []Expr) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, x := range xs {
		for _, f := range x.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

func join(xs []Expr, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, sep)
}
