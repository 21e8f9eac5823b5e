package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/lixenwraith/termvas/canvas"
	"github.com/lixenwraith/termvas/pointer"
	"github.com/lixenwraith/termvas/terminal"
)

// scene is the self-test picture: vertical HELLO and WORLD, a colored line,
// a changing digit and the last pointer position
type scene struct {
	mu     sync.Mutex
	mouseX int
	mouseY int

	rng *rand.Rand
}

func newScene(src pointer.Source) *scene {
	s := &scene{rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))}
	src.Subscribe(func(x, y int) {
		s.mu.Lock()
		s.mouseX, s.mouseY = x, y
		s.mu.Unlock()
	})
	return s
}

// setup draws the static part of the scene
func (s *scene) setup(cv *canvas.Canvas) error {
	for i, r := range "HELLO" {
		if err := drawable(cv.SetChar(1, i+1, r, terminal.ColorKeep, terminal.ColorKeep)); err != nil {
			return err
		}
	}
	for i, r := range "WORLD" {
		if err := drawable(cv.SetChar(3, i+1, r, terminal.ColorKeep, terminal.ColorKeep)); err != nil {
			return err
		}
	}
	if err := drawable(cv.WriteText(1, 6, "HELLO", terminal.ColorRed, terminal.ColorKeep)); err != nil {
		return err
	}
	return drawable(cv.WriteText(12, 6, "WORLD", terminal.ColorBlue, terminal.ColorKeep))
}

// tick updates the dynamic cells and renders
func (s *scene) tick(cv *canvas.Canvas) error {
	s.mu.Lock()
	x, y := s.mouseX, s.mouseY
	digit := rune('0' + s.rng.IntN(9))
	s.mu.Unlock()

	if err := drawable(cv.SetChar(9, 4, digit, terminal.ColorKeep, terminal.ColorKeep)); err != nil {
		return err
	}
	if err := drawable(cv.WriteText(9, 5, strconv.Itoa(x)+"   ", terminal.ColorKeep, terminal.ColorKeep)); err != nil {
		return err
	}
	if err := drawable(cv.WriteText(9, 6, strconv.Itoa(y)+"   ", terminal.ColorKeep, terminal.ColorKeep)); err != nil {
		return err
	}
	return cv.Render()
}

// drawable drops out-of-bounds errors so the scene degrades on small terminals
func drawable(err error) error {
	if errors.Is(err, canvas.ErrOutOfBounds) {
		return nil
	}
	return err
}

// loop ticks the scene until ctx ends or quit closes
func loop(ctx context.Context, cv *canvas.Canvas, sc *scene, quit <-chan struct{}, interval time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("termvas stopped", "reason", context.Cause(ctx))
			return nil
		case <-quit:
			logger.Info("termvas stopped", "reason", "quit")
			return nil
		case <-ticker.C:
			if err := sc.tick(cv); err != nil {
				return err
			}
		}
	}
}
