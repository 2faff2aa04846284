// Command canvasdemo renders sample scenes with the canvas package and
// writes them as PNG files into a directory.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/canvas"
)

func main() {
	var (
		out     = flag.String("out", ".", "output directory")
		width   = flag.Int("width", 480, "showcase width")
		height  = flag.Int("height", 320, "showcase height")
		verbose = flag.Bool("v", false, "log canvas diagnostics to stderr")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg, err := canvas.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	scenes := []struct {
		file string
		w, h int
		draw []func(*canvas.Canvas) error
	}{
		{"clip.png", 20, 20, []func(*canvas.Canvas) error{scenarioClip}},
		{"layer.png", 20, 20, []func(*canvas.Canvas) error{scenarioLayer}},
		{"showcase.png", *width, *height, []func(*canvas.Canvas) error{
			drawBackground, drawClippedRect, drawLayer, drawBlendModes, drawLabel,
		}},
	}
	for _, sc := range scenes {
		path := filepath.Join(*out, sc.file)
		if err := render(path, sc.w, sc.h, cfg, sc.draw); err != nil {
			log.Fatalf("Failed to render %s: %v", path, err)
		}
		log.Printf("Saved %s (%dx%d)\n", path, sc.w, sc.h)
	}

	p := canvas.NewPath()
	p.AddRect(canvas.Rect{Right: 10, Bottom: 10}, canvas.DirectionCW)
	p.AddRect(canvas.Rect{Left: 20, Top: 20, Right: 30, Bottom: 30}, canvas.DirectionCW)
	before := p.IsSimplePath()
	p.LineTo(5, 5)
	log.Printf("Simple path: %v after two rects, %v after lineTo\n", before, p.IsSimplePath())
}

func render(path string, w, h int, cfg canvas.Config, steps []func(*canvas.Canvas) error) error {
	bm, err := canvas.NewBitmap(w, h, canvas.ConfigARGB8888)
	if err != nil {
		return err
	}
	c, err := canvas.New(bm, canvas.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer c.Dispose()
	for _, draw := range steps {
		if err := draw(c); err != nil {
			return err
		}
	}
	return bm.SavePNG(path)
}

// scenarioClip draws a translated square through a clip, then the full
// square once the clip is restored.
func scenarioClip(c *canvas.Canvas) error {
	c.Save(canvas.SaveAll)
	c.ClipRect(canvas.Rect{Right: 10, Bottom: 10}, canvas.RegionOpIntersect)
	c.Translate(5, 5)
	if err := c.DrawRect(canvas.Rect{Right: 10, Bottom: 10}, paint(canvas.Red)); err != nil {
		return err
	}
	if err := c.Restore(); err != nil {
		return err
	}
	return c.DrawRect(canvas.Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}, paint(canvas.Blue))
}

// scenarioLayer fills a half transparent layer with opaque red over white.
func scenarioLayer(c *canvas.Canvas) error {
	if err := c.DrawColor(canvas.White, canvas.BlendSrc); err != nil {
		return err
	}
	c.SaveLayerAlpha(nil, 128, canvas.SaveAll)
	if err := c.DrawRect(canvas.Rect{Right: 20, Bottom: 20}, paint(canvas.Red)); err != nil {
		return err
	}
	return c.Restore()
}

func drawBackground(c *canvas.Canvas) error {
	w, h := float64(c.Width()), float64(c.Height())
	g, err := canvas.NewLinearGradient(0, 0, 0, h,
		[]uint32{canvas.RGB(26, 51, 102), canvas.RGB(128, 128, 153)}, nil, canvas.TileClamp)
	if err != nil {
		return err
	}
	p := canvas.NewPaint()
	p.Shader = g
	return c.DrawRect(canvas.Rect{Right: w, Bottom: h}, p)
}

// drawClippedRect draws a translated square through a smaller clip, then
// the same square again after the clip is gone.
func drawClippedRect(c *canvas.Canvas) error {
	c.Save(canvas.SaveAll)
	c.ClipRect(canvas.Rect{Left: 20, Top: 20, Right: 100, Bottom: 100}, canvas.RegionOpIntersect)
	c.Translate(60, 60)
	if err := c.DrawRect(canvas.Rect{Right: 80, Bottom: 80}, paint(canvas.Yellow)); err != nil {
		return err
	}
	if err := c.Restore(); err != nil {
		return err
	}

	outline := paint(canvas.White)
	outline.Style = canvas.StyleStroke
	outline.StrokeWidth = 2
	return c.DrawRect(canvas.Rect{Left: 60, Top: 60, Right: 140, Bottom: 140}, outline)
}

// drawLayer composites overlapping circles through a half transparent
// layer, so their overlap does not show.
func drawLayer(c *canvas.Canvas) error {
	count := c.SaveLayerAlpha(&canvas.Rect{Left: 180, Top: 20, Right: 320, Bottom: 160}, 128, canvas.SaveAll)
	for i, col := range []uint32{canvas.Red, canvas.Green, canvas.Blue} {
		x := 220 + 30*float64(i)
		if err := c.DrawCircle(x, 90, 40, paint(col)); err != nil {
			return err
		}
	}
	return c.RestoreToCount(count)
}

func drawBlendModes(c *canvas.Canvas) error {
	modes := []canvas.BlendMode{canvas.BlendMultiply, canvas.BlendScreen, canvas.BlendOverlay, canvas.BlendAdd}
	for i, mode := range modes {
		c.Save(canvas.SaveMatrix)
		c.Translate(360, 20+float64(i)*35)
		if err := c.DrawRect(canvas.Rect{Right: 100, Bottom: 30}, paint(canvas.RGB(200, 120, 40))); err != nil {
			return err
		}
		p := paint(canvas.RGB(60, 140, 220))
		p.BlendMode = mode
		if err := c.DrawOval(canvas.Rect{Left: 30, Top: -5, Right: 90, Bottom: 35}, p); err != nil {
			return err
		}
		if err := c.Restore(); err != nil {
			return err
		}
	}
	return nil
}

func drawLabel(c *canvas.Canvas) error {
	p := paint(canvas.White)
	p.TextSize = 28
	p.TextAlign = canvas.AlignCenter
	c.Save(canvas.SaveMatrix)
	defer func() { _ = c.Restore() }()
	c.RotateAbout(-4, float64(c.Width())/2, 250)
	return c.DrawText("canvas", float64(c.Width())/2, 260, p)
}

func paint(col uint32) *canvas.Paint {
	p := canvas.NewPaintWithFlags(canvas.FlagAntiAlias)
	p.Color = col
	return p
}
