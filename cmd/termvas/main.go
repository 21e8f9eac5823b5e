package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/termvas/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.ResetControllingTerminal()

			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMVAS CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "termvas: %v\n", err)
		os.Exit(1)
	}
}
