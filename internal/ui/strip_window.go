// Package ui renders the LED strip in an SDL2 window, for running the engine
// without hardware attached.
package ui

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"midiglow/internal/processing"
)

const (
	cellSize   = 24
	cellGap    = 4
	windowPadY = 16
)

// StripWindow shows each light of the strip as a colored cell. It implements
// processing.Observer: frames land in a buffer and are painted by the UI
// goroutine, which owns all SDL calls.
type StripWindow struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	mu      sync.Mutex
	frame   processing.Strip
	running bool
}

// NewStripWindow creates a window sized for the given number of lights.
func NewStripWindow(lightCount int) (*StripWindow, error) {
	if lightCount < 1 {
		lightCount = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	width := int32(lightCount*(cellSize+cellGap) + cellGap)
	height := int32(cellSize + 2*windowPadY)

	window, err := sdl.CreateWindow(
		"midiglow strip",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &StripWindow{
		window:   window,
		renderer: renderer,
		running:  true,
	}, nil
}

// OnStripUpdate implements processing.Observer. Called on the render
// goroutine; the frame is copied out for the UI goroutine.
func (w *StripWindow) OnStripUpdate(strip processing.Strip) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frame = append(w.frame[:0], strip...)
}

// Run paints frames and handles window events until the window is closed.
// Must be called on the main goroutine (an SDL requirement).
func (w *StripWindow) Run() error {
	defer w.Cleanup()

	for w.isRunning() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				w.Close()
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					w.Close()
				}
			}
		}

		if err := w.paint(); err != nil {
			return err
		}

		sdl.Delay(16)
	}

	return nil
}

func (w *StripWindow) paint() error {
	w.mu.Lock()
	frame := append(processing.Strip(nil), w.frame...)
	w.mu.Unlock()

	if err := w.renderer.SetDrawColor(16, 16, 16, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}

	x := int32(cellGap)
	for _, color := range frame {
		if err := w.renderer.SetDrawColor(color.R, color.G, color.B, 255); err != nil {
			return err
		}
		rect := sdl.Rect{X: x, Y: windowPadY, W: cellSize, H: cellSize}
		if err := w.renderer.FillRect(&rect); err != nil {
			return err
		}
		x += cellSize + cellGap
	}

	w.renderer.Present()
	return nil
}

func (w *StripWindow) isRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Close makes Run return after the current frame.
func (w *StripWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
}

// Cleanup destroys the SDL resources.
func (w *StripWindow) Cleanup() {
	if w.renderer != nil {
		w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
