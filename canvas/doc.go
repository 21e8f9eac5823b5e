// Package canvas is a double-buffered character grid renderer.
//
// Writes land in a pending grid. Render diffs pending against the committed grid
// (what the terminal is believed to show), draws only changed cells, and commits them.
// Within a row the cursor-position sequence is emitted only on a column discontinuity
// and color sequences only when the color changes, so output scales with changed runs.
//
// An optional pointer overlay is composited on top: the cell under the pointer shows
// the overlay glyph, and its true content (or a deferred pending write) is drawn again
// once the pointer leaves.
package canvas
