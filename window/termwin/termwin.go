// Package termwin presents frames in a terminal.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block rune: the top pixel is the foreground color and the bottom
// pixel the background color. Frames are scaled to the cell grid before
// display.
package termwin

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/gogpu/ggstar/window"
)

// HalfBlock is the rune drawn in every cell.
const HalfBlock = '▀'

// Terminal is a window backed by a tcell screen.
type Terminal struct {
	screen tcell.Screen
	buf    *image.RGBA
	closed bool
}

// ErrClosed is returned when presenting to a closed terminal.
var ErrClosed = errors.New("termwin: closed")

// New wraps an existing screen and initializes it.
func New(screen tcell.Screen) (*Terminal, error) {
	if screen == nil {
		return nil, errors.New("termwin: nil screen")
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termwin: init screen: %w", err)
	}
	screen.Clear()
	return &Terminal{screen: screen}, nil
}

// Open creates a window on the controlling terminal.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termwin: new screen: %w", err)
	}
	return New(screen)
}

// IsTerminal reports whether standard output is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}

// Geometry returns the pixel size the terminal can show: one column per
// cell and two rows per cell.
func (t *Terminal) Geometry() (int, int) {
	cols, rows := t.screen.Size()
	return cols, rows * 2
}

// Present scales img to the cell grid and shows it.
func (t *Terminal) Present(img *image.RGBA) error {
	if t.closed {
		return ErrClosed
	}

	w, h := t.Geometry()
	if w <= 0 || h <= 0 {
		return nil
	}
	if t.buf == nil || t.buf.Bounds().Dx() != w || t.buf.Bounds().Dy() != h {
		t.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.NearestNeighbor.Scale(t.buf, t.buf.Bounds(), img, img.Bounds(), draw.Src, nil)

	for row := 0; row < h/2; row++ {
		for col := 0; col < w; col++ {
			top := t.buf.RGBAAt(col, row*2)
			bottom := t.buf.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(col, row, HalfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// WaitKey blocks until a key is pressed or the screen is finalized.
// It returns the key event, or nil.
func (t *Terminal) WaitKey() *tcell.EventKey {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			return ev
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Close restores the terminal. Close is idempotent.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

// Ensure Terminal implements window.Window.
var _ window.Window = (*Terminal)(nil)

func init() {
	window.Register("terminal", 50, func(window.Options) (window.Window, error) {
		return Open()
	}, IsTerminal)
}
