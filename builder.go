package gosheet

import "fmt"

// Builder is the build sink an external parser emits a postfix stream of
// events against; Root returns the assembled tree. It is a stack machine
// scoped to expression assembly.
type Builder struct {
	stack     []*Expr
	originRow int
	originCol int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// SetOrigin records the cell a subsequent formula is being parsed for.
// Every Reference pushed after this call carries the origin; it must be
// called once before feeding events for a given formula.
func (b *Builder) SetOrigin(row, col int) {
	b.originRow = row
	b.originCol = col
}

// PushNumber handles val_number(x).
func (b *Builder) PushNumber(x float64) { b.push(litExpr(Number(x))) }

// PushString handles val_string(s).
func (b *Builder) PushString(s string) { b.push(litExpr(Text(s))) }

// PushReference handles val_reference(s): s is the already-decoded
// reference (row, col, row_abs, col_abs) — decoding the `$LETTERS$DIGITS`
// syntax is the parser's job (internal/formulalang), not the builder's.
func (b *Builder) PushReference(row, col int, rowAbs, colAbs bool) {
	b.push(refExpr(Ref{
		Row: row, Col: col,
		RowAbs: rowAbs, ColAbs: colAbs,
		OriginRow: b.originRow, OriginCol: b.originCol,
	}))
}

// Neg handles op_neg.
func (b *Builder) Neg() error { return b.pushUnary(ExprNeg) }

// Add, Sub, Mul, Div, Pow handle the arithmetic binary events; each pops
// two operands as (right, left).
func (b *Builder) Add() error { return b.pushBinary(ExprAdd) }
func (b *Builder) Sub() error { return b.pushBinary(ExprSub) }
func (b *Builder) Mul() error { return b.pushBinary(ExprMul) }
func (b *Builder) Div() error { return b.pushBinary(ExprDiv) }
func (b *Builder) Pow() error { return b.pushBinary(ExprPow) }

// Eq, Ne, Lt, Le, Gt, Ge handle the comparison binary events.
func (b *Builder) Eq() error { return b.pushBinary(ExprEq) }
func (b *Builder) Ne() error { return b.pushBinary(ExprNe) }
func (b *Builder) Lt() error { return b.pushBinary(ExprLt) }
func (b *Builder) Le() error { return b.pushBinary(ExprLe) }
func (b *Builder) Gt() error { return b.pushBinary(ExprGt) }
func (b *Builder) Ge() error { return b.pushBinary(ExprGe) }

// Range and Call handle val_range and fun_call: accepted and ignored,
// reserved events with no evaluated semantics. They do not touch the
// stack.
func (b *Builder) Range() {}
func (b *Builder) Call(argc int) {}

func (b *Builder) push(e *Expr) { b.stack = append(b.stack, e) }

func (b *Builder) pushUnary(k ExprKind) error {
	if len(b.stack) < 1 {
		return fmt.Errorf("gosheet: builder underflow on unary op")
	}
	x := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.push(unaryExpr(k, x))
	return nil
}

func (b *Builder) pushBinary(k ExprKind) error {
	if len(b.stack) < 2 {
		return fmt.Errorf("gosheet: builder underflow on binary op")
	}
	right := b.stack[len(b.stack)-1]
	left := b.stack[len(b.stack)-2]
	b.stack = b.stack[:len(b.stack)-2]
	b.push(binExpr(k, left, right))
	return nil
}

// Root returns the single remaining tree. Finishing with a non-singleton
// stack is a programming error the parser contract is supposed to prevent;
// Root panics rather than silently picking a node, since the caller has no
// valid recovery.
func (b *Builder) Root() *Expr {
	if len(b.stack) != 1 {
		panic(fmt.Sprintf("gosheet: builder finished with %d elements on stack, want 1", len(b.stack)))
	}
	return b.stack[0]
}
