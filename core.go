package ggstar

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggstar/internal/bmpdump"
	"github.com/gogpu/ggstar/internal/raster"
	"github.com/gogpu/ggstar/shader"
	"github.com/gogpu/ggstar/star"
	"github.com/gogpu/ggstar/window"
)

// backgroundQuad covers the whole viewport as a fan.
var backgroundQuad = []float32{
	-1, 1,
	1, 1,
	1, -1,
	-1, -1,
}

// Core renders the star scene into a window.
//
// The host calls Init once it has a window, then Draw and ChangeColor as
// often as it likes, and Release when the window goes away. A Core is not
// safe for concurrent use.
type Core struct {
	opts coreOptions

	win          window.Window
	width        int
	height       int
	widthPercent float64

	program *shader.Program
	pixmap  *Pixmap
	rast    *raster.Rasterizer
	dumper  *bmpdump.Dumper

	initialized bool
	released    bool
	drawn       bool
}

// NewCore creates a core. It does nothing until Init is called.
func NewCore(opts ...Option) *Core {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Core{opts: o}
}

// Init binds the core to win, caches its size and compiles the program.
func (c *Core) Init(win window.Window, width, height int) error {
	Logger().Info("core: init", "width", width, "height", height)

	if win == nil || width <= 0 || height <= 0 {
		Logger().Error("core: init param error")
		return fmt.Errorf("%w: window=%v size=%dx%d", ErrInvalidParam, win != nil, width, height)
	}
	if c.initialized {
		return ErrAlreadyInitialized
	}

	program, err := shader.NewDefault()
	if err != nil {
		Logger().Error("core: unable to create program", "err", err)
		return fmt.Errorf("%w: %w", ErrProgram, err)
	}

	c.win = win
	c.program = program
	c.pixmap = NewPixmap(width, height)
	c.rast = raster.NewRasterizer(width, height)
	if c.opts.dumpDir != "" {
		c.dumper = bmpdump.New(c.opts.dumpDir, c.opts.dumpPrefix)
	}
	c.UpdateSize(width, height)

	c.initialized = true
	c.released = false
	c.drawn = false
	return nil
}

// UpdateSize caches a new viewport size. When the core is initialized and
// the size is drawable the framebuffer is resized to match.
func (c *Core) UpdateSize(width, height int) {
	c.width = width
	c.height = height
	if width > 0 {
		c.widthPercent = 0.5 * float64(height) / float64(width)
	}

	if c.pixmap != nil && width > 0 && height > 0 {
		c.pixmap.Resize(width, height)
		c.rast.SetViewport(raster.Viewport{Width: width, Height: height})
	}
}

// Size returns the cached viewport size.
func (c *Core) Size() (width, height int) {
	return c.width, c.height
}

// WidthPercent returns half the viewport height as a fraction of its width.
func (c *Core) WidthPercent() float64 {
	return c.widthPercent
}

// Drawn reports whether the last Draw completed.
func (c *Core) Drawn() bool {
	return c.drawn
}

// Pixmap returns the framebuffer, or nil before Init.
func (c *Core) Pixmap() *Pixmap {
	return c.pixmap
}

// Background clears the frame and fills it with the background color.
func (c *Core) Background() error {
	position, err := c.prepareDraw()
	if err != nil {
		Logger().Error("core: background get position failed", "err", err)
		return err
	}
	if err := c.executeDraw(position, c.opts.background, backgroundQuad); err != nil {
		Logger().Error("core: background execute draw failed", "err", err)
		return err
	}
	if err := c.finishDraw(); err != nil {
		Logger().Error("core: background finish draw failed", "err", err)
		return err
	}
	return nil
}

// Draw renders the background and the star in the draw color and presents
// the frame. On success Drawn reports true.
func (c *Core) Draw() error {
	c.drawn = false
	Logger().Debug("core: draw")

	if err := c.drawScene(c.opts.draw); err != nil {
		Logger().Error("core: draw failed", "err", err)
		return err
	}
	c.drawn = true
	return nil
}

// ChangeColor redraws the star in the change color. It does nothing and
// returns false until a Draw has succeeded.
func (c *Core) ChangeColor() (bool, error) {
	if !c.drawn {
		return false, nil
	}
	Logger().Debug("core: change color")

	if err := c.drawScene(c.opts.change); err != nil {
		Logger().Error("core: change color failed", "err", err)
		return false, err
	}
	return true, nil
}

// drawScene renders background plus star in color and presents the frame.
func (c *Core) drawScene(color RGBA) error {
	position, err := c.prepareDraw()
	if err != nil {
		return err
	}
	if err := c.executeDraw(position, c.opts.background, backgroundQuad); err != nil {
		return fmt.Errorf("draw background: %w", err)
	}

	fans, err := c.starFans()
	if err != nil {
		return err
	}
	for i := range fans {
		if err := c.executeDraw(position, color, fans[i][:]); err != nil {
			return fmt.Errorf("draw blade %d: %w", i, err)
		}
	}

	return c.finishDraw()
}

// starFans generates the blades for the cached viewport in the configured
// precision.
func (c *Core) starFans() ([star.Blades][star.Floats]float32, error) {
	w, h := float64(c.width), float64(c.height)
	if c.opts.float32Geometry {
		return star.GenerateStar32(w, h, c.opts.stepDegrees)
	}

	var fans [star.Blades][star.Floats]float32
	s, err := star.GenerateStarStep(w, h, c.opts.stepDegrees)
	if err != nil {
		return fans, err
	}
	for i, blade := range s {
		fans[i] = blade.Vertices()
	}
	return fans, nil
}

// prepareDraw checks the core is usable, resets the viewport, clears the
// frame and returns the position attribute location.
func (c *Core) prepareDraw() (int, error) {
	if !c.initialized {
		return shader.NoLocation, ErrNotInitialized
	}
	if c.width <= 0 || c.height <= 0 {
		return shader.NoLocation, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, c.width, c.height)
	}
	if err := c.program.Validate(); err != nil {
		return shader.NoLocation, err
	}

	c.rast.SetViewport(raster.Viewport{Width: c.width, Height: c.height})
	c.pixmap.Clear(c.opts.clear)

	position := c.program.AttribLocation(shader.PositionName)
	if position == shader.NoLocation {
		return position, ErrAttribLocation
	}
	return position, nil
}

// executeDraw fills one fan of vertices with color.
func (c *Core) executeDraw(position int, color RGBA, vertices []float32) error {
	if position < 0 {
		return ErrAttribLocation
	}
	if len(vertices) != star.Floats {
		return fmt.Errorf("%w: got %d floats, want %d", ErrVertexCount, len(vertices), star.Floats)
	}
	if n := c.program.VertexCount(len(vertices)); n != star.FanSize {
		return fmt.Errorf("%w: got %d vertices, want %d", ErrVertexCount, n, star.FanSize)
	}

	target := pixmapTarget{c.pixmap}
	if c.opts.expandFans && c.program.Primitive().Topology == gputypes.PrimitiveTopologyTriangleList {
		list := shader.FanToTriangleList(vertices)
		return c.rast.DrawArrays(target, raster.Triangles, list, 0, len(list)/raster.Components, raster.RGBA(color))
	}
	return c.rast.DrawArrays(target, raster.TriangleFan, vertices, 0, star.FanSize, raster.RGBA(color))
}

// finishDraw presents the frame and dumps it when dumping is enabled.
func (c *Core) finishDraw() error {
	w, h := c.win.Geometry()
	if w != c.pixmap.Width() || h != c.pixmap.Height() {
		Logger().Warn("core: window geometry differs from viewport",
			"window", fmt.Sprintf("%dx%d", w, h),
			"viewport", fmt.Sprintf("%dx%d", c.pixmap.Width(), c.pixmap.Height()))
	}

	img := c.pixmap.ToImage()
	if len(img.Pix) >= 8 {
		Logger().Debug("core: read back",
			"p0", img.Pix[0:4],
			"p1", img.Pix[4:8])
	}

	if err := c.win.Present(img); err != nil {
		return fmt.Errorf("ggstar: present: %w", err)
	}

	if c.dumper != nil {
		path, err := c.dumper.Dump(img)
		if err != nil {
			Logger().Warn("core: dump failed", "err", err)
		} else {
			Logger().Debug("core: dumped frame", "path", path)
		}
	}
	return nil
}

// Release destroys the program and closes the window. Every failure is
// reported. Calling Release again is a no-op.
func (c *Core) Release() error {
	if c.released {
		return nil
	}
	if !c.initialized {
		return ErrNotInitialized
	}

	var errs []error
	if err := c.program.Validate(); err != nil {
		errs = append(errs, err)
	}
	c.program.Destroy()

	if err := c.win.Close(); err != nil {
		Logger().Warn("core: release close window failed", "err", err)
		errs = append(errs, fmt.Errorf("ggstar: close window: %w", err))
	}

	c.initialized = false
	c.released = true
	c.drawn = false
	c.win = nil
	Logger().Info("core: released")
	return errors.Join(errs...)
}

// pixmapTarget adapts a Pixmap to the rasterizer's interfaces.
type pixmapTarget struct {
	p *Pixmap
}

func (t pixmapTarget) Width() int  { return t.p.Width() }
func (t pixmapTarget) Height() int { return t.p.Height() }

func (t pixmapTarget) SetPixel(x, y int, c raster.RGBA) {
	t.p.SetPixel(x, y, RGBA(c))
}

func (t pixmapTarget) FillSpan(x1, x2, y int, c raster.RGBA) {
	t.p.FillSpan(x1, x2, y, RGBA(c))
}
