// Package canvas is a software 2D canvas: a save/restore state stack with
// clipping, transforms and offscreen layers, drawing paths, bitmaps, text
// and vertex meshes into an ARGB pixel buffer.
//
// # Quick Start
//
//	bm, _ := canvas.NewBitmap(256, 256, canvas.ConfigARGB8888)
//	c, _ := canvas.New(bm)
//	defer c.Dispose()
//
//	p := canvas.NewPaint()
//	p.Color = canvas.Red
//	c.Save(canvas.SaveAll)
//	c.ClipRect(canvas.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}, canvas.RegionOpIntersect)
//	c.Translate(20, 20)
//	_ = c.DrawRect(canvas.Rect{Right: 200, Bottom: 200}, p)
//	_ = c.Restore()
//
// # State stack
//
// Every canvas starts with one base frame holding the identity matrix and
// a clip covering the whole bitmap. Save pushes a copy of the top frame and
// returns the depth before the push; Restore and RestoreToCount pop frames.
// Popping the base frame fails with ErrStackUnderflow. SaveLayer pushes a
// frame that draws into an offscreen bitmap which is composited onto the
// frame below when it is restored.
//
// # Geometry
//
// Clips are kept as device-space Regions: normalized sets of disjoint
// rectangles combined with RegionOp boolean operators. A Path that only
// contains rectangles added with a single direction keeps an exact Region
// of its area, which lets clipping and filling skip rasterization.
//
// # Blending
//
// The twelve Porter-Duff modes are handled in the fill pipeline. Darken,
// Lighten, Multiply, Screen, Add and Overlay go through BlendComposite,
// which works on whole ARGB8888 buffers.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive slog records.
package canvas
