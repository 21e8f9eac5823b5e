// Package terminal provides the raw terminal side of the renderer: ANSI encoders,
// the color enumeration, backends and presentation mode.
//
// Features:
//   - Eight-color SGR palette with tcell name interop
//   - Zero-alloc cursor and color sequence encoders over bufio.Writer
//   - Stdio (x/term) and /dev/tty (tcell) backends, in-memory backend for tests
//   - Cursor hide/restore with termination signal handling
//   - SGR any-motion mouse reporting toggles
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
