package ggstar

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/ggstar/window"
)

func sameColor(a, b RGBA) bool {
	ar, ag, ab, aa := a.Bytes()
	br, bg, bb, ba := b.Bytes()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func newTestCore(t *testing.T, w, h int, opts ...Option) (*Core, *window.Memory) {
	t.Helper()
	win, err := window.NewMemory(w, h)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCore(opts...)
	if err := c.Init(win, w, h); err != nil {
		if errors.Is(err, ErrProgram) && strings.Contains(err.Error(), "not yet implemented") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("Init() error: %v", err)
	}
	return c, win
}

type failingWindow struct {
	presentErr error
	closeErr   error
}

func (f *failingWindow) Geometry() (int, int)      { return 16, 16 }
func (f *failingWindow) Present(*image.RGBA) error { return f.presentErr }
func (f *failingWindow) Close() error              { return f.closeErr }

func TestInitInvalidParams(t *testing.T) {
	win, _ := window.NewMemory(10, 10)
	tests := []struct {
		name string
		win  window.Window
		w, h int
	}{
		{"nil window", nil, 10, 10},
		{"zero width", win, 0, 10},
		{"zero height", win, 10, 0},
		{"negative", win, -4, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCore()
			if err := c.Init(tt.win, tt.w, tt.h); !errors.Is(err, ErrInvalidParam) {
				t.Errorf("Init() error = %v, want ErrInvalidParam", err)
			}
		})
	}
}

func TestInitTwice(t *testing.T) {
	c, win := newTestCore(t, 8, 8)
	if err := c.Init(win, 8, 8); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() = %v, want ErrAlreadyInitialized", err)
	}
}

func TestDrawBeforeInit(t *testing.T) {
	c := NewCore()
	if err := c.Draw(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Draw() = %v, want ErrNotInitialized", err)
	}
	if err := c.Background(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Background() = %v, want ErrNotInitialized", err)
	}
	if c.Drawn() {
		t.Error("Drawn() = true before any draw")
	}
}

func TestDraw(t *testing.T) {
	c, win := newTestCore(t, 200, 200)

	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	if !c.Drawn() {
		t.Error("Drawn() = false after Draw")
	}

	frame := win.Last()
	if frame == nil {
		t.Fatal("no frame presented")
	}
	if len(win.Frames()) != 1 {
		t.Errorf("presented %d frames, want 1", len(win.Frames()))
	}

	pm := FromImageRGBA(frame)
	if got := pm.GetPixel(100, 100); !sameColor(got, ColorDraw) {
		t.Errorf("hub pixel = %v, want draw color", got)
	}
	// The tip of the top blade sits half a viewport above the origin in
	// clip space, a quarter of the window above its centre.
	if got := pm.GetPixel(100, 60); !sameColor(got, ColorDraw) {
		t.Errorf("top blade pixel = %v, want draw color", got)
	}
	for _, p := range [][2]int{{0, 0}, {199, 0}, {0, 199}, {199, 199}} {
		if got := pm.GetPixel(p[0], p[1]); !sameColor(got, ColorBackground) {
			t.Errorf("corner %v = %v, want background", p, got)
		}
	}
}

func TestDrawMatchesPixmap(t *testing.T) {
	c, win := newTestCore(t, 64, 48)
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	frame := win.Last()
	data := c.Pixmap().Data()
	if len(frame.Pix) != len(data) {
		t.Fatalf("frame size %d, pixmap size %d", len(frame.Pix), len(data))
	}
	for i := range data {
		if frame.Pix[i] != data[i] {
			t.Fatalf("frame differs from pixmap at byte %d", i)
		}
	}
}

func TestChangeColorBeforeDraw(t *testing.T) {
	c, win := newTestCore(t, 32, 32)
	changed, err := c.ChangeColor()
	if err != nil || changed {
		t.Errorf("ChangeColor() = %v, %v, want false, nil", changed, err)
	}
	if len(win.Frames()) != 0 {
		t.Errorf("ChangeColor before Draw presented %d frames", len(win.Frames()))
	}
}

func TestChangeColor(t *testing.T) {
	c, win := newTestCore(t, 200, 200)
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}

	changed, err := c.ChangeColor()
	if err != nil || !changed {
		t.Fatalf("ChangeColor() = %v, %v, want true, nil", changed, err)
	}

	pm := FromImageRGBA(win.Last())
	if got := pm.GetPixel(100, 100); !sameColor(got, ColorChange) {
		t.Errorf("hub pixel = %v, want change color", got)
	}
	if got := pm.GetPixel(0, 0); !sameColor(got, ColorBackground) {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestBackground(t *testing.T) {
	c, win := newTestCore(t, 12, 9)
	if err := c.Background(); err != nil {
		t.Fatal(err)
	}
	pm := FromImageRGBA(win.Last())
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			if got := pm.GetPixel(x, y); !sameColor(got, ColorBackground) {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
	if c.Drawn() {
		t.Error("Background should not set Drawn")
	}
}

func TestCustomColors(t *testing.T) {
	bg := Hex("#102030")
	fg := Hex("#ff8800")
	c, win := newTestCore(t, 100, 100, WithBackgroundColor(bg), WithDrawColor(fg))
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	pm := FromImageRGBA(win.Last())
	if !sameColor(pm.GetPixel(50, 50), fg) {
		t.Errorf("hub = %v, want %v", pm.GetPixel(50, 50), fg)
	}
	if !sameColor(pm.GetPixel(0, 0), bg) {
		t.Errorf("corner = %v, want %v", pm.GetPixel(0, 0), bg)
	}
}

func TestDrawZeroWidth(t *testing.T) {
	c, win := newTestCore(t, 20, 20)
	c.UpdateSize(0, 20)

	err := c.Draw()
	if !errors.Is(err, ErrInvalidViewport) {
		t.Fatalf("Draw() = %v, want ErrInvalidViewport", err)
	}
	if c.Drawn() {
		t.Error("Drawn() = true after failed draw")
	}
	if len(win.Frames()) != 0 {
		t.Error("a skipped frame was presented")
	}
}

func TestUpdateSize(t *testing.T) {
	c, _ := newTestCore(t, 100, 50)
	if got := c.WidthPercent(); got != 0.25 {
		t.Errorf("WidthPercent() = %v, want 0.25", got)
	}

	c.UpdateSize(40, 80)
	if w, h := c.Size(); w != 40 || h != 80 {
		t.Errorf("Size() = %d, %d, want 40, 80", w, h)
	}
	if got := c.WidthPercent(); got != 1 {
		t.Errorf("WidthPercent() = %v, want 1", got)
	}
	if c.Pixmap().Width() != 40 || c.Pixmap().Height() != 80 {
		t.Errorf("pixmap = %dx%d, want 40x80", c.Pixmap().Width(), c.Pixmap().Height())
	}

	// Zero width keeps the previous ratio.
	c.UpdateSize(0, 10)
	if got := c.WidthPercent(); got != 1 {
		t.Errorf("WidthPercent() after zero width = %v, want 1", got)
	}
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	c, _ := newTestCore(t, 40, 30, WithDump(dir, ""))

	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ChangeColor(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"dump00.bmp", "dump01.bmp"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		img, err := bmp.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
			t.Errorf("%s bounds = %v", name, img.Bounds())
		}
	}
}

func TestPresentFailure(t *testing.T) {
	c := NewCore()
	win := &failingWindow{presentErr: errors.New("surface lost")}
	if err := c.Init(win, 16, 16); err != nil {
		if errors.Is(err, ErrProgram) {
			t.Skipf("program unavailable: %v", err)
		}
		t.Fatal(err)
	}

	err := c.Draw()
	if err == nil || !strings.Contains(err.Error(), "surface lost") {
		t.Errorf("Draw() = %v, want present error", err)
	}
	if c.Drawn() {
		t.Error("Drawn() = true after failed present")
	}
}

func TestRelease(t *testing.T) {
	c, win := newTestCore(t, 10, 10)
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	if err := c.Release(); err != nil {
		t.Fatal(err)
	}
	if !win.Closed() {
		t.Error("Release did not close the window")
	}
	if err := c.Release(); err != nil {
		t.Errorf("second Release() = %v, want nil", err)
	}
	if err := c.Draw(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Draw after Release = %v, want ErrNotInitialized", err)
	}
	if c.Drawn() {
		t.Error("Drawn() = true after Release")
	}
}

func TestReleaseBeforeInit(t *testing.T) {
	if err := NewCore().Release(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Release() = %v, want ErrNotInitialized", err)
	}
}

func TestReleaseReportsCloseError(t *testing.T) {
	c := NewCore()
	win := &failingWindow{closeErr: errors.New("busy")}
	if err := c.Init(win, 16, 16); err != nil {
		if errors.Is(err, ErrProgram) {
			t.Skipf("program unavailable: %v", err)
		}
		t.Fatal(err)
	}
	err := c.Release()
	if err == nil || !strings.Contains(err.Error(), "busy") {
		t.Errorf("Release() = %v, want close error", err)
	}
}

func TestReinitAfterRelease(t *testing.T) {
	c, _ := newTestCore(t, 10, 10)
	if err := c.Release(); err != nil {
		t.Fatal(err)
	}
	win, _ := window.NewMemory(20, 20)
	if err := c.Init(win, 20, 20); err != nil {
		t.Fatalf("Init after Release = %v", err)
	}
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	if win.Last() == nil {
		t.Error("no frame after re-init")
	}
}

func TestExecuteDrawVertexCount(t *testing.T) {
	c, _ := newTestCore(t, 10, 10)
	position, err := c.prepareDraw()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 6, 7, 9, 10, 16} {
		err := c.executeDraw(position, ColorDraw, make([]float32, n))
		if !errors.Is(err, ErrVertexCount) {
			t.Errorf("executeDraw(%d floats) = %v, want ErrVertexCount", n, err)
		}
	}
	if err := c.executeDraw(-1, ColorDraw, backgroundQuad); !errors.Is(err, ErrAttribLocation) {
		t.Errorf("executeDraw(position -1) = %v, want ErrAttribLocation", err)
	}
}

func TestFanPathsAgree(t *testing.T) {
	expanded, _ := newTestCore(t, 97, 61)
	direct, _ := newTestCore(t, 97, 61, WithFanExpansion(false))

	for _, c := range []*Core{expanded, direct} {
		if err := c.Draw(); err != nil {
			t.Fatal(err)
		}
	}

	a, b := expanded.Pixmap().Data(), direct.Pixmap().Data()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expanded and direct fans differ at byte %d", i)
		}
	}
	if got := direct.Pixmap().GetPixel(47, 28); !sameColor(got, ColorDraw) {
		t.Errorf("direct fan hub pixel = %v, want draw color", got)
	}
}

func TestFloat32Geometry(t *testing.T) {
	c, win := newTestCore(t, 200, 200, WithFloat32Geometry())
	if err := c.Draw(); err != nil {
		t.Fatal(err)
	}
	pm := FromImageRGBA(win.Last())
	if got := pm.GetPixel(100, 100); !sameColor(got, ColorDraw) {
		t.Errorf("hub pixel = %v, want draw color", got)
	}
	if got := pm.GetPixel(0, 0); !sameColor(got, ColorBackground) {
		t.Errorf("corner = %v, want background", got)
	}

	c.UpdateSize(0, 200)
	if err := c.Draw(); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Draw() with zero width = %v, want ErrInvalidViewport", err)
	}
}

func BenchmarkDraw(b *testing.B) {
	win, _ := window.NewMemory(512, 512)
	win.SetKeep(1)
	c := NewCore()
	if err := c.Init(win, 512, 512); err != nil {
		b.Skip(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Draw()
	}
}
