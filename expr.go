package gosheet

import (
	"math"
	"strconv"
	"strings"
)

// ExprKind tags the closed set of expression node kinds. The AST is a
// tagged variant rather than a class hierarchy: every operation below is
// a switch on kind. The compiler does not check these switches for
// exhaustiveness; a kind missing from a switch falls to its default branch.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprReference
	ExprNeg
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprPow
	ExprEq
	ExprNe
	ExprLt
	ExprLe
	ExprGt
	ExprGe
)

// Ref carries a reference node's target coordinates, per-axis absoluteness,
// and the origin cell the reference was written in. Origin is recorded for
// provenance only: neither evaluation nor the save format reads it.
type Ref struct {
	Row, Col       int
	RowAbs, ColAbs bool
	OriginRow      int
	OriginCol      int
}

// Expr is a single node of the expression tree. Exactly the fields that
// matter for Kind are meaningful; the rest are zero.
type Expr struct {
	Kind  ExprKind
	Lit   Val
	Ref   Ref
	Left  *Expr
	Right *Expr
}

func litExpr(v Val) *Expr                  { return &Expr{Kind: ExprLiteral, Lit: v} }
func refExpr(r Ref) *Expr                  { return &Expr{Kind: ExprReference, Ref: r} }
func unaryExpr(k ExprKind, x *Expr) *Expr   { return &Expr{Kind: k, Left: x} }
func binExpr(k ExprKind, l, r *Expr) *Expr  { return &Expr{Kind: k, Left: l, Right: r} }

// Clone deep-copies the tree; nodes never share children after cloning.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	clone := &Expr{Kind: e.Kind, Lit: e.Lit, Ref: e.Ref}
	clone.Left = e.Left.Clone()
	clone.Right = e.Right.Clone()
	return clone
}

// Rebase returns a new tree with every non-absolute reference coordinate
// shifted by (dr, dc); absolute axes are preserved.
func (e *Expr) Rebase(dr, dc int) *Expr {
	if e == nil {
		return nil
	}
	clone := &Expr{Kind: e.Kind, Lit: e.Lit, Ref: e.Ref}
	if e.Kind == ExprReference {
		if !clone.Ref.RowAbs {
			clone.Ref.Row += dr
		}
		if !clone.Ref.ColAbs {
			clone.Ref.Col += dc
		}
	}
	clone.Left = e.Left.Rebase(dr, dc)
	clone.Right = e.Right.Rebase(dr, dc)
	return clone
}

// CollectRefs appends every position statically referenced anywhere in the
// tree into out. Used by the cycle precheck, which needs the static
// reference graph regardless of what those references would evaluate to.
func (e *Expr) CollectRefs(out map[Pos]struct{}) {
	if e == nil {
		return
	}
	if e.Kind == ExprReference {
		out[Pos{Row: e.Ref.Row, Col: e.Ref.Col}] = struct{}{}
	}
	e.Left.CollectRefs(out)
	e.Right.CollectRefs(out)
}

// Render produces canonical, fully parenthesized infix text. The save file
// need not be byte-identical across round-trips, only value-identical, so
// spacing here is ours to choose and need not match any particular input
// formula.
func (e *Expr) Render() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ExprLiteral:
		return renderLiteral(e.Lit)
	case ExprReference:
		return renderRef(e.Ref)
	case ExprNeg:
		return "(-" + e.Left.Render() + ")"
	default:
		return "(" + e.Left.Render() + opSymbol(e.Kind) + e.Right.Render() + ")"
	}
}

func opSymbol(k ExprKind) string {
	switch k {
	case ExprAdd:
		return "+"
	case ExprSub:
		return "-"
	case ExprMul:
		return "*"
	case ExprDiv:
		return "/"
	case ExprPow:
		return "^"
	case ExprEq:
		return "=="
	case ExprNe:
		return "!="
	case ExprLt:
		return "<"
	case ExprLe:
		return "<="
	case ExprGt:
		return ">"
	case ExprGe:
		return ">="
	default:
		return "?"
	}
}

func renderLiteral(v Val) string {
	switch v.Kind() {
	case KindNumber:
		return formatNumber(v.NumberValue())
	case KindText:
		var b strings.Builder
		b.WriteByte('"')
		for _, r := range v.TextValue() {
			if r == '"' {
				b.WriteByte('"')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
		return b.String()
	default:
		return ""
	}
}

func renderRef(r Ref) string {
	var b strings.Builder
	if r.ColAbs {
		b.WriteByte('$')
	}
	b.WriteString(ColumnLabel(r.Col))
	if r.RowAbs {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(r.Row))
	return b.String()
}

func ipow(a, b float64) float64 { return math.Pow(a, b) }

// evaluator abstracts the sheet lookups Expr.Evaluate needs, so this file
// has no direct dependency on Sheet's storage details.
type evaluator interface {
	valueAt(p Pos) Val
}

// Evaluate computes the node's value against s, recursing through
// references. It assumes the caller has already run the cycle precheck
// for the originating cell; evaluation itself never cycle-checks.
func (e *Expr) Evaluate(s evaluator) Val {
	if e == nil {
		return Empty
	}
	switch e.Kind {
	case ExprLiteral:
		return e.Lit
	case ExprReference:
		return s.valueAt(Pos{Row: e.Ref.Row, Col: e.Ref.Col})
	case ExprNeg:
		x := e.Left.Evaluate(s)
		if !x.IsNumber() {
			return Empty
		}
		return Number(-x.NumberValue())
	case ExprAdd:
		return evalAdd(e.Left.Evaluate(s), e.Right.Evaluate(s))
	case ExprSub, ExprMul, ExprDiv, ExprPow:
		return evalArith(e.Kind, e.Left.Evaluate(s), e.Right.Evaluate(s))
	case ExprEq, ExprNe, ExprLt, ExprLe, ExprGt, ExprGe:
		return evalCompare(e.Kind, e.Left.Evaluate(s), e.Right.Evaluate(s))
	default:
		return Empty
	}
}

func evalAdd(l, r Val) Val {
	if l.IsText() || r.IsText() {
		if l.IsEmpty() || r.IsEmpty() {
			return Empty
		}
		return Text(valAsText(l) + valAsText(r))
	}
	if !l.IsNumber() || !r.IsNumber() {
		return Empty
	}
	return Number(l.NumberValue() + r.NumberValue())
}

func valAsText(v Val) string {
	if v.IsText() {
		return v.TextValue()
	}
	return formatNumber(v.NumberValue())
}

func evalArith(k ExprKind, l, r Val) Val {
	if !l.IsNumber() || !r.IsNumber() {
		return Empty
	}
	a, b := l.NumberValue(), r.NumberValue()
	switch k {
	case ExprSub:
		return Number(a - b)
	case ExprMul:
		return Number(a * b)
	case ExprDiv:
		if b == 0.0 {
			return Empty
		}
		return Number(a / b)
	case ExprPow:
		return Number(ipow(a, b))
	default:
		return Empty
	}
}

func evalCompare(k ExprKind, l, r Val) Val {
	if l.Kind() != r.Kind() || l.IsEmpty() {
		return Empty
	}
	var cmp int
	if l.IsNumber() {
		switch {
		case l.NumberValue() < r.NumberValue():
			cmp = -1
		case l.NumberValue() > r.NumberValue():
			cmp = 1
		}
	} else {
		switch {
		case l.TextValue() < r.TextValue():
			cmp = -1
		case l.TextValue() > r.TextValue():
			cmp = 1
		}
	}
	var result bool
	switch k {
	case ExprEq:
		result = cmp == 0
	case ExprNe:
		result = cmp != 0
	case ExprLt:
		result = cmp < 0
	case ExprLe:
		result = cmp <= 0
	case ExprGt:
		result = cmp > 0
	case ExprGe:
		result = cmp >= 0
	}
	if result {
		return Number(1.0)
	}
	return Number(0.0)
}
