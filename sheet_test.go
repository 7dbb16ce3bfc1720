package gosheet

import "testing"

// sheetTestCase is a chainable test-case builder over Sheet: once a Set or
// a label parse fails, later chained calls become no-ops and Done reports
// that first failure. Each Expect* mismatch is reported at once through
// t.Errorf and does not stop the chain.
type sheetTestCase struct {
	t     *testing.T
	sheet *Sheet
	name  string
	err   string
}

func newSheetTestCase(t *testing.T, name string) *sheetTestCase {
	return &sheetTestCase{t: t, sheet: NewSheet(), name: name}
}

func (c *sheetTestCase) Set(label, text string) *sheetTestCase {
	if c.err != "" {
		return c
	}
	pos, err := ParsePos(label)
	if err != nil {
		c.err = err.Error()
		return c
	}
	if !c.sheet.Set(pos, text) {
		c.err = "set(" + label + ", " + text + ") reported failure"
	}
	return c
}

func (c *sheetTestCase) ExpectNumber(label string, want float64) *sheetTestCase {
	if c.err != "" {
		return c
	}
	pos, err := ParsePos(label)
	if err != nil {
		c.err = err.Error()
		return c
	}
	got := c.sheet.Get(pos)
	if !got.IsNumber() || got.NumberValue() != want {
		c.t.Errorf("%s: get(%s) = %v, want Number(%v)", c.name, label, got, want)
	}
	return c
}

func (c *sheetTestCase) ExpectEmpty(label string) *sheetTestCase {
	if c.err != "" {
		return c
	}
	pos, err := ParsePos(label)
	if err != nil {
		c.err = err.Error()
		return c
	}
	if got := c.sheet.Get(pos); !got.IsEmpty() {
		c.t.Errorf("%s: get(%s) = %v, want Empty", c.name, label, got)
	}
	return c
}

func (c *sheetTestCase) ExpectText(label, want string) *sheetTestCase {
	if c.err != "" {
		return c
	}
	pos, err := ParsePos(label)
	if err != nil {
		c.err = err.Error()
		return c
	}
	got := c.sheet.Get(pos)
	if !got.IsText() || got.TextValue() != want {
		c.t.Errorf("%s: get(%s) = %v, want Text(%q)", c.name, label, got, want)
	}
	return c
}

func (c *sheetTestCase) Done() {
	if c.err != "" {
		c.t.Errorf("%s: %s", c.name, c.err)
	}
}

func TestSheetLiteralValues(t *testing.T) {
	newSheetTestCase(t, "literals").
		Set("A1", "10").
		Set("A2", "hello").
		ExpectNumber("A1", 10).
		ExpectText("A2", "hello").
		Done()
}

func TestSheetEmptyCellIsEmpty(t *testing.T) {
	s := NewSheet()
	if got := s.Get(Pos{Row: 1, Col: 1}); !got.IsEmpty() {
		t.Fatalf("got %v, want Empty", got)
	}
}

func TestSheetSetEmptyTextClearsCell(t *testing.T) {
	newSheetTestCase(t, "clear").
		Set("A1", "10").
		Set("A1", "").
		ExpectEmpty("A1").
		Done()
}

func TestSheetFormulaReferencesLiteral(t *testing.T) {
	newSheetTestCase(t, "formula").
		Set("A1", "10").
		Set("A2", "=A1+5").
		ExpectNumber("A2", 15).
		Done()
}

func TestSheetBadFormulaReturnsFalseAndClears(t *testing.T) {
	s := NewSheet()
	pos, _ := ParsePos("A1")
	if s.Set(pos, "=1+") {
		t.Fatalf("expected Set to report failure for a malformed formula")
	}
	if got := s.Get(pos); !got.IsEmpty() {
		t.Fatalf("got %v, want Empty after a failed set", got)
	}
}

func TestSheetCloneIsIndependent(t *testing.T) {
	s := NewSheet()
	a1, _ := ParsePos("A1")
	s.Set(a1, "10")
	clone := s.Clone()
	clone.Set(a1, "20")
	if got := s.Get(a1); got.NumberValue() != 10 {
		t.Fatalf("mutating the clone affected the original: %v", got)
	}
	if got := clone.Get(a1); got.NumberValue() != 20 {
		t.Fatalf("got %v, want 20", got)
	}
}

func TestSheetCapabilitiesAdvertisesOnlyCyclicDeps(t *testing.T) {
	s := NewSheet()
	if got := s.Capabilities(); got != CapCyclicDeps {
		t.Fatalf("got 0x%02x, want 0x%02x", got, CapCyclicDeps)
	}
}
