package gosheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos is a cell coordinate. Row and Col are 1-based; (0,0) is never valid
// and is used as the zero value for "no position".
type Pos struct {
	Row int
	Col int
}

// ParsePos parses a bare label such as "AA17" (no `$` prefixes) into a Pos.
// It fails on empty input, missing letters, missing digits, trailing junk,
// or a non-positive row.
func ParsePos(label string) (Pos, error) {
	i := 0
	for i < len(label) && isLetter(label[i]) {
		i++
	}
	if i == 0 {
		return Pos{}, fmt.Errorf("gosheet: position %q has no column letters", label)
	}
	col := 0
	for j := 0; j < i; j++ {
		col = col*26 + int(upper(label[j])-'A'+1)
	}

	digitsStart := i
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return Pos{}, fmt.Errorf("gosheet: position %q has no row digits", label)
	}
	if i != len(label) {
		return Pos{}, fmt.Errorf("gosheet: position %q has trailing characters %q", label, label[i:])
	}
	row, err := strconv.Atoi(label[digitsStart:i])
	if err != nil || row <= 0 {
		return Pos{}, fmt.Errorf("gosheet: position %q has a non-positive row", label)
	}
	return Pos{Row: row, Col: col}, nil
}

// String renders the position using bijective base-26 column letters
// followed by the decimal row, e.g. Pos{Row: 17, Col: 27}.String() == "AA17".
func (p Pos) String() string {
	var b strings.Builder
	b.WriteString(ColumnLabel(p.Col))
	b.WriteString(strconv.Itoa(p.Row))
	return b.String()
}

// ColumnLabel renders a 1-based column index as bijective base-26 letters.
func ColumnLabel(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append(letters, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	if len(letters) == 0 {
		return ""
	}
	return string(letters)
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
