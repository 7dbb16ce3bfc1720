package gosheet

import "strconv"

// Kind tags the three-way variant carried by Val.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

// Val is the tagged value every cell evaluates to: empty, a number, or a
// string. The zero value is Empty.
type Val struct {
	kind Kind
	num  float64
	text string
}

// Empty is the distinguished absent value.
var Empty = Val{kind: KindEmpty}

// Number wraps a float64 as a Val.
func Number(x float64) Val { return Val{kind: KindNumber, num: x} }

// Text wraps a string as a Val.
func Text(s string) Val { return Val{kind: KindText, text: s} }

func (v Val) Kind() Kind { return v.kind }

func (v Val) IsEmpty() bool  { return v.kind == KindEmpty }
func (v Val) IsNumber() bool { return v.kind == KindNumber }
func (v Val) IsText() bool   { return v.kind == KindText }

// NumberValue returns the numeric payload; it is only meaningful when
// IsNumber() is true.
func (v Val) NumberValue() float64 { return v.num }

// TextValue returns the string payload; it is only meaningful when
// IsText() is true.
func (v Val) TextValue() string { return v.text }

// formatNumber renders a float64 using the platform default double-to-string
// format. Used uniformly by Add's string-concatenation path and by the
// Number-cell save payload so the two stay in lockstep.
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// String renders the value for diagnostics only; it is not the canonical
// save-file payload (see Cell.payload for that).
func (v Val) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Equal compares two values by kind and payload.
func (v Val) Equal(other Val) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindText:
		return v.text == other.text
	default:
		return true
	}
}
