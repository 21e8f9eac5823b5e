package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termvas/canvas"
	"github.com/lixenwraith/termvas/terminal"
)

// Benchmark patterns
const (
	patternXOR    = "xor"    // Every cell changes color every frame
	patternStatic = "static" // Only the top-left cell changes
)

var benchColors = []terminal.Color{
	terminal.ColorRed, terminal.ColorGreen, terminal.ColorYellow, terminal.ColorBlue,
	terminal.ColorMagenta, terminal.ColorCyan, terminal.ColorWhite, terminal.ColorBlack,
}

type benchResult struct {
	Width, Height int
	Frames        int64
	Elapsed       time.Duration
	RenderTotal   time.Duration
	Cells         int64
	Bytes         int64
}

func newBenchCmd() *cobra.Command {
	var (
		duration time.Duration
		pattern  string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure render throughput",
		Long: `bench redraws the whole screen as fast as possible and reports frame rate,
render time and bytes written once the terminal is restored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pattern != patternXOR && pattern != patternStatic {
				return fmt.Errorf("unknown pattern %q (want %s or %s)", pattern, patternXOR, patternStatic)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var res benchResult
			err = withSession(cmd.Context(), cfg, func(ctx context.Context, s *session) error {
				var berr error
				res, berr = benchmark(ctx, s.canvas, s.reader.Quit(), pattern, duration)
				return berr
			})
			if err != nil {
				return err
			}
			res.report(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "benchmark duration")
	cmd.Flags().StringVar(&pattern, "pattern", patternXOR, "pattern: xor|static")
	return cmd
}

// benchmark renders frames until duration elapses, ctx ends or quit closes
func benchmark(ctx context.Context, cv *canvas.Canvas, quit <-chan struct{}, pattern string, duration time.Duration) (benchResult, error) {
	w, h := cv.Size()
	res := benchResult{Width: w, Height: h}
	start := time.Now()

	for time.Since(start) < duration {
		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, nil
		case <-quit:
			res.Elapsed = time.Since(start)
			return res, nil
		default:
		}

		frameStart := time.Now()

		// 1. Generation
		if pattern == patternXOR {
			offset := int(res.Frames)
			for y := 1; y <= h; y++ {
				for x := 1; x <= w; x++ {
					fg := benchColors[(x+y+offset)%len(benchColors)]
					if err := cv.SetChar(x, y, '#', fg, terminal.ColorBlack); err != nil {
						return res, err
					}
				}
			}
		} else {
			fg := benchColors[int(res.Frames)%len(benchColors)]
			if err := cv.SetChar(1, 1, '#', fg, terminal.ColorKeep); err != nil {
				return res, err
			}
		}

		// 2. Render (measured separately)
		t0 := time.Now()
		if err := cv.Render(); err != nil {
			return res, err
		}
		res.RenderTotal += time.Since(t0)

		stats := cv.LastRender()
		res.Cells += int64(stats.Cells)
		res.Bytes += int64(stats.Bytes)
		res.Frames++

		// Cap at ~1000 FPS to prevent pure spin loop if too fast
		if time.Since(frameStart) < time.Millisecond {
			time.Sleep(time.Millisecond)
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func (r benchResult) report(w io.Writer) {
	fmt.Fprintf(w, "Benchmark Results:\n")
	fmt.Fprintf(w, "  Resolution:   %dx%d (%d cells)\n", r.Width, r.Height, r.Width*r.Height)
	fmt.Fprintf(w, "  Total Frames: %d\n", r.Frames)
	fmt.Fprintf(w, "  Total Time:   %v\n", r.Elapsed)
	if r.Frames == 0 || r.Elapsed <= 0 {
		return
	}
	fmt.Fprintf(w, "  Avg FPS:      %.2f\n", float64(r.Frames)/r.Elapsed.Seconds())
	fmt.Fprintf(w, "  Avg Render:   %v\n", r.RenderTotal/time.Duration(r.Frames))
	fmt.Fprintf(w, "  Cells/Frame:  %d\n", r.Cells/r.Frames)
	fmt.Fprintf(w, "  Bytes/Frame:  %d\n", r.Bytes/r.Frames)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintf(w, "  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Fprintf(w, "  Mallocs:      %d\n", m.Mallocs)
}
