package pego

import "io"

// Input owns a byte source and a logical cursor: position/row/col/last-byte
// tracking, plus a mark/rewind stack so combinators can backtrack. Besides
// in-memory sources, Input supports a forward-only io.Reader source: bytes
// are buffered only from the oldest live mark to the cursor, and released
// on Commit once no marks are open.
type Input struct {
	name string

	// data holds bytes from absolute offset `base` through `base+len(data)`.
	// For a string-backed Input the whole string lives here from the start
	// and reading is nil.
	data []byte
	base int

	reading io.Reader
	atEOF   bool

	pos int
	row int
	col int
	last byte

	marks []markState
}

type markState struct {
	pos  int
	row  int
	col  int
	last byte
}

// Mark is an opaque rewind point. Marks nest as a stack: a Mark must be
// committed or rewound in LIFO order relative to any Mark taken after it.
type Mark struct{ depth int }

// OpenString builds an Input over an in-memory byte string.
func OpenString(name, s string) *Input {
	return &Input{
		name:  name,
		data:  []byte(s),
		base:  0,
		atEOF: true,
		row:   1,
		col:   1,
	}
}

// OpenBytes builds an Input over an in-memory byte slice. The slice is not
// copied; the caller must not mutate it for the lifetime of the Input.
func OpenBytes(name string, b []byte) *Input {
	return &Input{
		name:  name,
		data:  b,
		base:  0,
		atEOF: true,
		row:   1,
		col:   1,
	}
}

// OpenStream builds an Input over a forward-only byte source such as a pipe.
// Bytes are read lazily and are only retained from the oldest open Mark to
// the cursor.
func OpenStream(name string, r io.Reader) *Input {
	return &Input{
		name:    name,
		reading: r,
		row:     1,
		col:     1,
	}
}

// Name returns the filename/label this Input was opened with.
func (in *Input) Name() string { return in.name }

// Pos returns the current absolute byte offset.
func (in *Input) Pos() int { return in.pos }

// Position returns the current row/col/offset as a Position value.
func (in *Input) Position() Position {
	return Position{Offset: in.pos, Row: in.row, Col: in.col}
}

// BacktrackDepth reports the number of currently open marks.
func (in *Input) BacktrackDepth() int { return len(in.marks) }

func (in *Input) ensure(upto int) {
	if in.reading == nil {
		return
	}
	for in.base+len(in.data) < upto && !in.atEOF {
		buf := make([]byte, 4096)
		n, err := in.reading.Read(buf)
		if n > 0 {
			in.data = append(in.data, buf[:n]...)
		}
		if err != nil {
			in.atEOF = true
		}
	}
}

func (in *Input) byteAt(p int) (byte, bool) {
	in.ensure(p + 1)
	idx := p - in.base
	if idx < 0 || idx >= len(in.data) {
		return 0, false
	}
	return in.data[idx], true
}

// Peek returns the byte under the cursor without consuming it. The second
// return value is false at EOF.
func (in *Input) Peek() (byte, bool) {
	return in.byteAt(in.pos)
}

// LastByte returns the most recently consumed byte, or 0 before the first
// byte is consumed. Used by Anchor parsers.
func (in *Input) LastByte() byte { return in.last }

// EOF reports whether the cursor is at the end of the input.
func (in *Input) EOF() bool {
	_, ok := in.byteAt(in.pos)
	return !ok
}

// Next consumes and returns the byte under the cursor, advancing position,
// row and column: '\n' increments row and resets col to 1.
func (in *Input) Next() (byte, bool) {
	b, ok := in.byteAt(in.pos)
	if !ok {
		return 0, false
	}
	in.pos++
	if b == '\n' {
		in.row++
		in.col = 1
	} else {
		in.col++
	}
	in.last = b
	in.trim()
	return b, true
}

// Mark registers a rewind point and returns its handle. Marks form a stack;
// calling code must Rewind or Commit marks in the reverse order they were
// taken.
func (in *Input) Mark() Mark {
	in.marks = append(in.marks, markState{pos: in.pos, row: in.row, col: in.col, last: in.last})
	return Mark{depth: len(in.marks)}
}

// Rewind restores the Input to the state at m, discarding anything consumed
// since. m must be the most recently taken still-open mark.
func (in *Input) Rewind(m Mark) {
	s := in.marks[m.depth-1]
	in.pos, in.row, in.col, in.last = s.pos, s.row, s.col, s.last
	in.marks = in.marks[:m.depth-1]
}

// Commit drops m without restoring state, keeping whatever was consumed
// since it was taken. m must be the most recently taken still-open mark.
func (in *Input) Commit(m Mark) {
	in.marks = in.marks[:m.depth-1]
	in.trim()
}

// trim releases buffered bytes that no longer live mark can rewind to.
func (in *Input) trim() {
	if in.reading == nil || len(in.marks) != 0 {
		return
	}
	if in.pos <= in.base {
		return
	}
	drop := in.pos - in.base
	if drop > len(in.data) {
		drop = len(in.data)
	}
	in.data = in.data[drop:]
	in.base += drop
}

// Since returns the bytes consumed between a previous Pos() snapshot and the
// current cursor. The caller must ensure the range is still retained (an
// open Mark covering `start` guarantees this).
func (in *Input) Since(start int) []byte {
	lo := start - in.base
	hi := in.pos - in.base
	if lo < 0 {
		lo = 0
	}
	if hi > len(in.data) {
		hi = len(in.data)
	}
	return in.data[lo:hi]
}
