// Package ggstar renders a five-bladed star into a native window.
//
// # Overview
//
// ggstar is a small Pure Go rendering sample. A host hands the Core a
// window and its size, then drives it through a fixed lifecycle:
//
//	core := ggstar.NewCore(ggstar.WithDump("/tmp/frames", ""))
//	if err := core.Init(win, 640, 480); err != nil {
//	    log.Fatal(err)
//	}
//	defer core.Release()
//
//	core.Draw()        // background plus star in the draw color
//	core.ChangeColor() // same star in the change color
//
// Every frame is cleared, covered with a full-screen background quad and
// then each blade of the star is filled as a triangle fan. The finished
// frame is presented to the window and, when dumping is enabled, written
// to a numbered BMP file.
//
// # Architecture
//
// The library is organized into:
//   - star: pure geometry, one fan of four points per blade
//   - shader: the WGSL program, compiled to SPIR-V with naga, which
//     describes the vertex layout and primitive state
//   - internal/raster: scanline fill of fans and triangle lists
//   - window: the native window abstraction and backend registry
//   - internal/bmpdump: numbered frame dumps
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive lifecycle
// and per-frame diagnostics through log/slog.
package ggstar
