package canvas

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termvas/pointer"
	"github.com/lixenwraith/termvas/terminal"
)

// outputBufferSize holds a full 80x24 repaint with colors in one flush
const outputBufferSize = 32768

// Canvas owns the committed and pending grids of one terminal
// All methods are safe for concurrent use; render passes are serialized
type Canvas struct {
	mu sync.Mutex

	backend terminal.Backend
	sink    *countingWriter
	out     *bufio.Writer

	width  int
	height int

	committed *Grid
	pending   *Grid
	touched   []bool // row-major: touched[y*width+x], set by writes until flushed
	dirty     bool

	overlaySrc  pointer.Source
	overlay     bool
	overlayX    int
	overlayY    int
	overlayCell Cell

	presentation Presenter
	presented    bool
	closed       bool

	logger *slog.Logger
	stats  Stats
}

// New creates a canvas sized to the backend and clears the screen
func New(b terminal.Backend, opts ...Option) (*Canvas, error) {
	width, height := b.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", terminal.ErrNoSize, width, height)
	}

	sink := &countingWriter{w: terminal.NewWriter(b)}
	c := &Canvas{
		backend:     b,
		sink:        sink,
		out:         bufio.NewWriterSize(sink, outputBufferSize),
		width:       width,
		height:      height,
		committed:   newGrid(width, height, DefaultCell),
		pending:     newGrid(width, height, DefaultCell),
		touched:     make([]bool, width*height),
		overlayX:    -1,
		overlayY:    -1,
		overlayCell: Cell{Glyph: ' ', Fg: terminal.ColorWhite, Bg: terminal.ColorWhite},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.presentation == nil {
		c.presentation = terminal.NewPresentation(b)
	}

	if err := validateGlyph(c.overlayCell.Glyph); err != nil {
		return nil, fmt.Errorf("overlay style: %w", err)
	}
	if err := c.overlayCell.Fg.Validate(false); err != nil {
		return nil, fmt.Errorf("overlay style: %w", err)
	}
	if err := c.overlayCell.Bg.Validate(false); err != nil {
		return nil, fmt.Errorf("overlay style: %w", err)
	}

	if err := terminal.ClearScreen(b); err != nil {
		return nil, fmt.Errorf("clear screen: %w", err)
	}

	if c.overlaySrc != nil {
		c.overlay = true
		c.overlaySrc.Subscribe(c.moveOverlay)
	}

	c.logger.Debug("canvas created", "width", width, "height", height, "overlay", c.overlay)
	return c, nil
}

// Size returns the grid dimensions fixed at construction
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// SetChar writes one glyph at the 1-indexed position (x, y)
// ColorKeep for fg or bg keeps the current color of that cell
func (c *Canvas) SetChar(x, y int, glyph rune, fg, bg terminal.Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.setChar(x, y, glyph, fg, bg)
}

// WriteText writes text left to right from the 1-indexed position (x, y), one cell per rune
// ColorKeep arguments mean ColorDefault. Not atomic: on error the runes before the
// failing one stay written
func (c *Canvas) WriteText(x, y int, text string, fg, bg terminal.Color) error {
	if fg == terminal.ColorKeep {
		fg = terminal.ColorDefault
	}
	if bg == terminal.ColorKeep {
		bg = terminal.ColorDefault
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	col := x
	for _, r := range text {
		if err := c.setChar(col, y, r, fg, bg); err != nil {
			return err
		}
		col++
	}
	return nil
}

// setChar validates then merges the write into the pending grid
// Caller holds mu
func (c *Canvas) setChar(x, y int, glyph rune, fg, bg terminal.Color) error {
	if x < 1 || y < 1 {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, y)
	}
	if x > c.width || y > c.height {
		return fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, x, y, c.width, c.height)
	}
	if err := validateGlyph(glyph); err != nil {
		return err
	}
	if err := fg.Validate(true); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	if err := bg.Validate(true); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	col, row := x-1, y-1
	idx := row*c.width + col

	// Latest intended content is the merge base: an unflushed write, else the screen
	base := c.committed.At(col, row)
	if c.touched[idx] {
		base = c.pending.At(col, row)
	}

	base.Glyph = glyph
	if fg != terminal.ColorKeep {
		base.Fg = fg
	}
	if bg != terminal.ColorKeep {
		base.Bg = bg
	}
	base.WasOverlay = false

	c.pending.Set(col, row, base)
	c.touched[idx] = true
	c.dirty = true
	return nil
}

// Cell returns the committed cell at the 1-indexed position (x, y)
func (c *Canvas) Cell(x, y int) (Cell, error) {
	if x < 1 || y < 1 {
		return Cell{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, y)
	}
	if x > c.width || y > c.height {
		return Cell{}, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, x, y, c.width, c.height)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed.At(x-1, y-1), nil
}

// Dirty reports whether a render pass has work to do
func (c *Canvas) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Close releases the presentation mode; the canvas rejects further use
func (c *Canvas) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	presented := c.presented
	c.presented = false
	c.mu.Unlock()

	// Released outside the lock: the signal watcher may be waiting on callbacks
	if !presented {
		return nil
	}
	return c.presentation.Release()
}

func validateGlyph(r rune) error {
	if runewidth.RuneWidth(r) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidGlyph, r)
	}
	return nil
}

// countingWriter tracks bytes handed to the backend
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
