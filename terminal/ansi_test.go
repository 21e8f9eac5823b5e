package terminal

import (
	"bufio"
	"bytes"
	"testing"
)

func render(fn func(w *bufio.Writer)) string {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	fn(w)
	w.Flush()
	return buf.String()
}

func TestWriteInt(t *testing.T) {
	for _, n := range []int{0, 7, 10, 99, 100, 999, 1000, 12345, -4} {
		got := render(func(w *bufio.Writer) { writeInt(w, n) })
		want := map[int]string{0: "0", 7: "7", 10: "10", 99: "99", 100: "100", 999: "999", 1000: "1000", 12345: "12345", -4: "0"}[n]
		if got != want {
			t.Errorf("writeInt(%d): expected %q, got %q", n, want, got)
		}
	}
}

func TestEncoders(t *testing.T) {
	tests := []struct {
		name string
		fn   func(w *bufio.Writer)
		want string
	}{
		{"cursor origin", func(w *bufio.Writer) { WriteCursorPos(w, 0, 0) }, "\x1b[1;1H"},
		{"cursor row-major args", func(w *bufio.Writer) { WriteCursorPos(w, 79, 23) }, "\x1b[24;80H"},
		{"fg", func(w *bufio.Writer) { WriteFg(w, ColorMagenta) }, "\x1b[35m"},
		{"bg", func(w *bufio.Writer) { WriteBg(w, ColorDefault) }, "\x1b[49m"},
		{"fg keep writes nothing", func(w *bufio.Writer) { WriteFg(w, ColorKeep) }, ""},
		{"reset", WriteReset, SeqReset},
		{"ascii glyph", func(w *bufio.Writer) { WriteGlyph(w, 'x') }, "x"},
		{"utf8 glyph", func(w *bufio.Writer) { WriteGlyph(w, 'é') }, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.fn); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBackendHelpers(t *testing.T) {
	b := NewMemoryBackend(10, 4)
	if err := ClearScreen(b); err != nil {
		t.Fatal(err)
	}
	if err := EnableMouseMotion(b); err != nil {
		t.Fatal(err)
	}
	if err := DisableMouseMotion(b); err != nil {
		t.Fatal(err)
	}
	want := SeqClear + "\x1b[?1006h\x1b[?1003h" + "\x1b[?1003l\x1b[?1006l"
	if got := b.Output(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	n, err := NewWriter(b).Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Errorf("Expected 3 bytes written, got %d (%v)", n, err)
	}
}

func TestEmergencyResetSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	want := "\x1b[?1003l\x1b[?1006l" + SeqCursorShow + SeqReset
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
