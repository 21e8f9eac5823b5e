//go:build unix

package terminal

import "os"

func pipeFiles() (*os.File, *os.File, error) {
	return os.Pipe()
}
