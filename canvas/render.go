package canvas

import (
	"fmt"

	"github.com/lixenwraith/termvas/terminal"
)

// noColumn starts every row so the first draw never counts as adjacent
const noColumn = -2

// Stats describes the most recent render pass
type Stats struct {
	Cells int // Cells drawn
	Bytes int // Bytes written to the backend
}

// rowState is the terminal state implied by what this row has emitted so far
// ColorKeep means nothing emitted yet
type rowState struct {
	lastCol int
	fg      terminal.Color
	bg      terminal.Color
	drew    bool
}

// Render flushes changed cells and the overlay to the terminal
// Returns immediately with no output when nothing changed since the last pass
func (c *Canvas) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.dirty {
		return nil
	}

	if !c.presented {
		if err := c.presentation.Acquire(); err != nil {
			return fmt.Errorf("acquire presentation: %w", err)
		}
		c.presented = true
		c.logger.Debug("presentation acquired")
	}

	startBytes := c.sink.n
	cells := 0
	deferred := false

	for y := 0; y < c.height; y++ {
		rs := rowState{lastCol: noColumn}
		committed := c.committed.row(y)
		pending := c.pending.row(y)

		for x := 0; x < c.width; x++ {
			idx := y*c.width + x
			pendingChanged := c.touched[idx]
			isOverlay := c.overlay && x == c.overlayX && y == c.overlayY
			wasOverlay := committed[x].WasOverlay && !isOverlay

			switch {
			case isOverlay:
				// Pending content under the overlay waits until it moves away
				c.draw(&rs, x, y, c.overlayCell)
				committed[x].WasOverlay = true
				if pendingChanged {
					deferred = true
				}

			case wasOverlay && !pendingChanged:
				c.draw(&rs, x, y, committed[x])
				committed[x].WasOverlay = false

			case pendingChanged:
				cell := pending[x]
				cell.WasOverlay = false
				committed[x] = cell
				c.draw(&rs, x, y, cell)
				pending[x] = DefaultCell
				c.touched[idx] = false

			default:
				continue
			}
			cells++
		}

		if rs.drew {
			terminal.WriteReset(c.out)
		}
	}

	// Deferred writes keep the canvas dirty so they land once the overlay leaves
	c.dirty = deferred

	err := c.out.Flush()
	c.stats = Stats{Cells: cells, Bytes: c.sink.n - startBytes}
	if err != nil {
		// bufio keeps the error sticky; start clean for the next pass
		c.out.Reset(c.sink)
		return fmt.Errorf("flush: %w", err)
	}

	if cells > 0 {
		c.logger.Debug("render pass", "cells", cells, "bytes", c.stats.Bytes, "deferred", deferred)
	}
	return nil
}

// draw emits one cell, eliding cursor moves and colors already in effect
func (c *Canvas) draw(rs *rowState, x, y int, cell Cell) {
	if x != rs.lastCol+1 {
		terminal.WriteCursorPos(c.out, x, y)
	}
	if cell.Fg != rs.fg {
		terminal.WriteFg(c.out, cell.Fg)
		rs.fg = cell.Fg
	}
	if cell.Bg != rs.bg {
		terminal.WriteBg(c.out, cell.Bg)
		rs.bg = cell.Bg
	}
	terminal.WriteGlyph(c.out, cell.Glyph)
	rs.lastCol = x
	rs.drew = true
}

// LastRender returns statistics of the most recent pass that ran
func (c *Canvas) LastRender() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
