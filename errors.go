package ggstar

import (
	"errors"

	"github.com/gogpu/ggstar/star"
)

// Errors returned by Core.
var (
	// ErrInvalidParam is returned by Init for a nil window or a
	// non-positive size.
	ErrInvalidParam = errors.New("ggstar: invalid parameter")

	// ErrNotInitialized is returned when drawing before Init or after Release.
	ErrNotInitialized = errors.New("ggstar: not initialized")

	// ErrAlreadyInitialized is returned by Init on a live core.
	ErrAlreadyInitialized = errors.New("ggstar: already initialized")

	// ErrProgram is returned when the shader program cannot be created.
	ErrProgram = errors.New("ggstar: create program")

	// ErrAttribLocation is returned when the position attribute is missing.
	ErrAttribLocation = errors.New("ggstar: position attribute not found")

	// ErrVertexCount is returned for a vertex array that is not one fan.
	ErrVertexCount = errors.New("ggstar: wrong vertex count")

	// ErrInvalidViewport is returned when the cached viewport cannot be
	// drawn to. It is the same value as star.ErrInvalidViewport.
	ErrInvalidViewport = star.ErrInvalidViewport
)
