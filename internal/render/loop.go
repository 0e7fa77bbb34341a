// Package render hosts the frame loop that drives the processing engine and
// the output encoders that push frames to hardware.
package render

import (
	"sync"
	"time"

	"midiglow/internal/debug"
	"midiglow/internal/processing"
)

// Loop periodically calls Concert.Execute on its own goroutine, making it the
// single consumer of every scheduler queue in the engine.
type Loop struct {
	concert *processing.Concert
	logger  *debug.Logger

	mu        sync.Mutex
	frameTime time.Duration
	running   bool
	stop      chan struct{}
	done      chan struct{}

	// Performance tracking
	frameCount    uint64
	fps           float64
	fpsUpdateTime time.Time
}

// NewLoop creates a loop rendering at the given frame rate.
func NewLoop(concert *processing.Concert, frameRate int, logger *debug.Logger) *Loop {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Loop{
		concert:   concert,
		logger:    logger,
		frameTime: time.Second / time.Duration(frameRate),
	}
}

// SetFrameRate changes the render cadence. Takes effect on the next frame.
func (l *Loop) SetFrameRate(frameRate int) {
	if frameRate <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.frameTime = time.Second / time.Duration(frameRate)
}

// Start launches the render goroutine. Starting a running loop panics: that
// is a programmer error, two render contexts would race on engine state.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		panic("render loop started twice")
	}
	l.running = true
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.fpsUpdateTime = time.Now()

	go l.run(l.stop, l.done)

	if l.logger != nil {
		l.logger.LogRenderf(debug.LogLevelInfo, "render loop started at %v per frame", l.frameTime)
	}
}

// Stop halts the render goroutine and waits for the frame in flight.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stop, done := l.stop, l.done
	l.mu.Unlock()

	close(stop)
	<-done

	if l.logger != nil {
		l.logger.LogRenderf(debug.LogLevelInfo, "render loop stopped")
	}
}

func (l *Loop) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(l.currentFrameTime())
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			l.concert.Execute()
			l.trackFrame()
			timer.Reset(l.currentFrameTime())
		}
	}
}

func (l *Loop) currentFrameTime() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frameTime
}

func (l *Loop) trackFrame() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.frameCount++
	elapsed := time.Since(l.fpsUpdateTime)
	if elapsed >= time.Second {
		l.fps = float64(l.frameCount) / elapsed.Seconds()
		l.frameCount = 0
		l.fpsUpdateTime = time.Now()
	}
}

// FPS returns the measured frame rate over the last tracking window.
func (l *Loop) FPS() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fps
}
