package gosheet

// Cell is one grid entry. At most one of Expr or a non-Empty Value is
// meaningful at a time: setting a literal clears Expr, setting a formula
// zeroes Value and stores both the tree and the original formula text.
type Cell struct {
	Value       Val
	Expr        *Expr
	FormulaText string
}

// clone deep-copies a cell so sheet-level copies never share expression
// trees.
func (c *Cell) clone() *Cell {
	if c == nil {
		return nil
	}
	return &Cell{
		Value:       c.Value,
		Expr:        c.Expr.Clone(),
		FormulaText: c.FormulaText,
	}
}

// payload renders the cell's save-file payload: the stored formula text
// for an expression cell, the platform double-to-string rendering for a
// Number, the string verbatim for Text, and empty for Empty.
func (c *Cell) payload() string {
	if c.Expr != nil {
		return c.FormulaText
	}
	switch c.Value.Kind() {
	case KindNumber:
		return formatNumber(c.Value.NumberValue())
	case KindText:
		return c.Value.TextValue()
	default:
		return ""
	}
}
