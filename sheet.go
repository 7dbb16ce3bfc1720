package gosheet

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/corrin/gosheet/internal/formulalang"
	"github.com/corrin/gosheet/internal/telemetry"
)

// Capability bits advertised by Sheet.Capabilities. The core only ever
// returns CapCyclicDeps; the rest are named so a future implementation
// extending the engine (functions, faster storage, a richer parser) has a
// bit already reserved for it.
const (
	CapCyclicDeps uint32 = 0x01
	CapFunctions  uint32 = 0x02
	CapFileIO     uint32 = 0x04
	CapSpeed      uint32 = 0x08
	CapParser     uint32 = 0x10
)

// maxEvalDepth bounds both the cycle precheck and the evaluation recursion:
// a sheet deep enough to exceed it is treated the same as a cycle — the
// offending get reports Empty rather than overflowing the goroutine stack.
const maxEvalDepth = 10000

// Sheet is the owning container: a sparse Pos → Cell mapping plus the
// cycle-safe get/set/copy/save/load operations.
type Sheet struct {
	cells     map[Pos]*Cell
	SessionID string
	logger    *slog.Logger
}

// NewSheet returns an empty sheet, tagged with a fresh correlation ID for
// its log lines.
func NewSheet() *Sheet {
	id := uuid.NewString()
	return &Sheet{
		cells:     make(map[Pos]*Cell),
		SessionID: id,
		logger:    telemetry.With(id),
	}
}

// Set stores text into pos: empty text clears the cell, a leading `=`
// parses a formula, anything else is tried as a full-string number and
// falls back to verbatim text. It returns false only when a formula failed
// to parse.
func (s *Sheet) Set(pos Pos, text string) bool {
	if text == "" {
		s.cells[pos] = &Cell{Value: Empty}
		return true
	}
	if text[0] == '=' {
		b := NewBuilder()
		b.SetOrigin(pos.Row, pos.Col)
		if err := formulalang.Parse(text[1:], b); err != nil {
			s.logger.Debug("formula parse failed", "pos", pos.String(), "err", err)
			s.cells[pos] = &Cell{Value: Empty}
			return false
		}
		root := b.Root()
		s.cells[pos] = &Cell{Expr: root, FormulaText: text}
		return true
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		s.cells[pos] = &Cell{Value: Number(n)}
		return true
	}
	s.cells[pos] = &Cell{Value: Text(text)}
	return true
}

// Get runs a static DFS precheck for cycles reachable from pos, then
// evaluates. It never mutates the sheet, and it never errors: type
// mismatches, missing references, and cycles all resolve to Empty.
func (s *Sheet) Get(pos Pos) Val {
	cell, ok := s.cells[pos]
	if !ok || cell.Expr == nil {
		if !ok {
			return Empty
		}
		return cell.Value
	}
	if s.hasCycle(pos) {
		s.logger.Warn("cycle detected", "pos", pos.String())
		return Empty
	}
	ctx := &evalCtx{sheet: s, depth: 0}
	return cell.Expr.Evaluate(ctx)
}

// evalCtx threads an explicit recursion budget through Expr.Evaluate so
// reference chains cannot blow the native stack; it deliberately evaluates
// without repeating the cycle precheck, since the caller already ran one
// for the originating cell.
type evalCtx struct {
	sheet *Sheet
	depth int
}

func (c *evalCtx) valueAt(p Pos) Val {
	if c.depth >= maxEvalDepth {
		return Empty
	}
	cell, ok := c.sheet.cells[p]
	if !ok || cell.Expr == nil {
		if !ok {
			return Empty
		}
		return cell.Value
	}
	return cell.Expr.Evaluate(&evalCtx{sheet: c.sheet, depth: c.depth + 1})
}

// hasCycle walks the static reference graph from start with the classic
// seen/on-stack DFS coloring, independent of what any reference would
// actually evaluate to — a reference to a missing cell is still an edge in
// this graph.
func (s *Sheet) hasCycle(start Pos) bool {
	visited := make(map[Pos]bool)
	onStack := make(map[Pos]bool)

	var visit func(p Pos, depth int) bool
	visit = func(p Pos, depth int) bool {
		if depth >= maxEvalDepth {
			return true
		}
		if onStack[p] {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		onStack[p] = true
		defer delete(onStack, p)

		cell, ok := s.cells[p]
		if ok && cell.Expr != nil {
			refs := make(map[Pos]struct{})
			cell.Expr.CollectRefs(refs)
			for ref := range refs {
				if visit(ref, depth+1) {
					return true
				}
			}
		}
		return false
	}
	return visit(start, 0)
}

// CopyRect copies a w (columns) × h (rows) rectangle from src to dst. The
// source is read into a staging buffer before any destination write, so
// overlapping source and destination rectangles behave identically to
// copying through a temporary. Each destination reference is rebased by
// (dr, dc), respecting per-axis absoluteness; an absent source position
// writes an explicit Empty cell at the destination.
func (s *Sheet) CopyRect(dst, src Pos, w, h int) {
	dr := dst.Row - src.Row
	dc := dst.Col - src.Col

	type staged struct {
		present bool
		cell    *Cell
	}
	buffer := make([][]staged, h)
	for i := 0; i < h; i++ {
		buffer[i] = make([]staged, w)
		for j := 0; j < w; j++ {
			p := Pos{Row: src.Row + i, Col: src.Col + j}
			if c, ok := s.cells[p]; ok {
				buffer[i][j] = staged{present: true, cell: c}
			}
		}
	}

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			dstPos := Pos{Row: dst.Row + i, Col: dst.Col + j}
			st := buffer[i][j]
			if !st.present {
				s.cells[dstPos] = &Cell{Value: Empty}
				continue
			}
			if st.cell.Expr != nil {
				rebased := st.cell.Expr.Rebase(dr, dc)
				s.cells[dstPos] = &Cell{Expr: rebased, FormulaText: "=" + rebased.Render()}
				continue
			}
			s.cells[dstPos] = &Cell{Value: st.cell.Value}
		}
	}
}

// Clone deep-copies every cell so mutating the result never affects the
// receiver.
func (s *Sheet) Clone() *Sheet {
	out := NewSheet()
	for p, c := range s.cells {
		out.cells[p] = c.clone()
	}
	return out
}

// Capabilities reports the optional-feature bitmask. Only cyclic-deps is
// advertised.
func (s *Sheet) Capabilities() uint32 {
	return CapCyclicDeps
}

// Save writes the sheet in a line-oriented format, one line per stored
// cell, in row-major order for determinism.
func (s *Sheet) Save(w io.Writer) bool {
	positions := maps.Keys(s.cells)
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})
	bw := bufio.NewWriter(w)
	for _, p := range positions {
		cell := s.cells[p]
		if _, err := fmt.Fprintf(bw, "%s|%d|%s\n", ColumnLabel(p.Col), p.Row, cell.payload()); err != nil {
			s.logger.Warn("save failed", "err", err)
			return false
		}
	}
	if err := bw.Flush(); err != nil {
		s.logger.Warn("save flush failed", "err", err)
		return false
	}
	return true
}

// Load replaces the sheet's contents with the lines read from r. Failure
// leaves the receiver untouched; the replacement is built in a scratch
// sheet and only swapped in once every line has parsed.
func (s *Sheet) Load(r io.Reader) bool {
	scratch := NewSheet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		first := strings.IndexByte(line, '|')
		if first < 0 {
			s.logger.Warn("load: malformed line, missing first separator")
			return false
		}
		rest := line[first+1:]
		second := strings.IndexByte(rest, '|')
		if second < 0 {
			s.logger.Warn("load: malformed line, missing second separator")
			return false
		}
		colPart := line[:first]
		rowPart := rest[:second]
		payload := rest[second+1:]

		pos, err := ParsePos(colPart + rowPart)
		if err != nil {
			s.logger.Warn("load: malformed position", "err", err)
			return false
		}
		scratch.Set(pos, payload)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("load: scan failed", "err", err)
		return false
	}
	s.cells = scratch.cells
	return true
}
