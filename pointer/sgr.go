package pointer

// Report is one decoded SGR mouse report
type Report struct {
	Button  int // Raw button byte: bits 0-1 button, 4/8/16 modifiers, 32 motion, 64 wheel
	X, Y    int // 1-indexed
	Release bool
}

// Motion reports whether the report came from pointer movement
func (r Report) Motion() bool {
	return r.Button&32 != 0
}

// maxSGRLen bounds the scan for the terminator; longer runs are malformed
const maxSGRLen = 32

// parseSGRMouse decodes ESC [ < Btn ; X ; Y M/m at the start of data
// Returns bytes consumed; 0 means incomplete or not a mouse report
// A malformed report returns n > 0 with ok false and is skipped by the caller
func parseSGRMouse(data []byte) (int, Report, bool) {
	if len(data) < len(sgrPrefix) || data[0] != 0x1b || data[1] != '[' || data[2] != '<' {
		return 0, Report{}, false
	}

	// Find terminator M or m
	end := 3
	for end < len(data) && end < maxSGRLen {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end == maxSGRLen {
		// No terminator within the limit: skip the prefix, rescan what follows
		return len(sgrPrefix), Report{}, false
	}
	if end >= len(data) {
		return 0, Report{}, false
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		// Malformed: skip the whole sequence
		return end + 1, Report{}, false
	}

	return end + 1, Report{Button: btn, X: x, Y: y, Release: data[end] == 'm'}, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
