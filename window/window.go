// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window abstracts the native window a frame is presented to.
//
// A Window reports its buffer geometry and accepts finished frames. Backends
// register themselves by name so the host can pick one at run time:
//
//	w, err := window.NewByName("memory", window.Options{Width: 640, Height: 480})
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
package window

import (
	"errors"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Window is a presentation target owned by the host application.
//
// Windows are NOT required to be thread-safe.
type Window interface {
	// Geometry returns the current buffer size in pixels.
	Geometry() (width, height int)

	// Present displays a finished frame. The window must not retain img
	// after Present returns.
	Present(img *image.RGBA) error

	// Close releases the window. Close is idempotent.
	Close() error
}

// Options configures window creation.
type Options struct {
	Width  int
	Height int
	Title  string
}

// Errors.
var (
	// ErrClosed is returned when presenting to a closed window.
	ErrClosed = errors.New("window: closed")

	// ErrInvalidSize is returned for non-positive window dimensions.
	ErrInvalidSize = errors.New("window: invalid size")
)

// Memory is an off-screen window that keeps copies of presented frames.
// It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	frames []*image.RGBA
	keep   int
	closed bool
}

// DefaultKeep is how many frames a Memory window retains by default.
const DefaultKeep = 8

// NewMemory creates an off-screen window of the given size.
func NewMemory(width, height int) (*Memory, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Memory{width: width, height: height, keep: DefaultKeep}, nil
}

// SetKeep sets how many of the most recent frames are retained (minimum 1).
func (m *Memory) SetKeep(n int) {
	if n < 1 {
		n = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keep = n
	m.trim()
}

// Resize changes the reported geometry.
func (m *Memory) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = width, height
	return nil
}

// Geometry returns the window size.
func (m *Memory) Geometry() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Present stores a copy of img.
func (m *Memory) Present(img *image.RGBA) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	frame := image.NewRGBA(img.Bounds())
	draw.Draw(frame, frame.Bounds(), img, img.Bounds().Min, draw.Src)
	m.frames = append(m.frames, frame)
	m.trim()
	return nil
}

// trim drops the oldest frames beyond keep. Must be called with lock held.
func (m *Memory) trim() {
	if extra := len(m.frames) - m.keep; extra > 0 {
		m.frames = append(m.frames[:0], m.frames[extra:]...)
	}
}

// Frames returns the retained frames, oldest first.
func (m *Memory) Frames() []*image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*image.RGBA, len(m.frames))
	copy(out, m.frames)
	return out
}

// Last returns the most recently presented frame, or nil.
func (m *Memory) Last() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

// Close marks the window closed. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Ensure Memory implements Window.
var _ Window = (*Memory)(nil)
