package canvas

// moveOverlay records a 1-indexed pointer position
// The overlay never touches either grid; the next pass composites it
func (c *Canvas) moveOverlay(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, row := x-1, y-1
	if col == c.overlayX && row == c.overlayY {
		return
	}
	c.overlayX, c.overlayY = col, row
	c.dirty = true
}

// Overlay returns the 1-indexed overlay position
// ok is false when overlay rendering is disabled
func (c *Canvas) Overlay() (x, y int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.overlay {
		return 0, 0, false
	}
	return c.overlayX + 1, c.overlayY + 1, true
}
