// Command paintdemo paints a few strokes with each tool and saves the
// result as an image.
package main

import (
	"flag"
	"image"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/disintegration/imaging"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
	"github.com/gogpu/paint/stroke"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "paint.png", "output file")
		bgImage = flag.String("background", "", "image to paint over, scaled to the canvas")
		tip     = flag.String("tip", "", "image to use as a custom brush tip (dark is opaque)")
		presets = flag.String("presets", "", "TOML file with brush presets")
		preset  = flag.String("preset", "", "preset to paint the brush strokes with")
		mode    = flag.String("mode", "normal", "blend mode of the paint layer")
		cursor  = flag.String("cursor", "", "also save a brush cursor preview to this file")
		verbose = flag.Bool("v", false, "log stroke activity")
	)
	flag.Parse()

	if *verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	layerMode, err := paint.ParseBlendMode(*mode)
	if err != nil {
		log.Fatalf("Invalid blend mode: %v", err)
	}

	engine := brush.NewEngine(brush.WithStampCache(8))
	brushMode := paint.BlendNormal
	if *presets != "" {
		p, err := loadPreset(*presets, *preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		if err := p.Apply(engine); err != nil {
			log.Fatalf("Failed to apply preset %q: %v", p.Name, err)
		}
		brushMode = p.Mode
	}
	if *tip != "" {
		mask, err := loadTip(*tip)
		if err != nil {
			log.Fatalf("Failed to load tip: %v", err)
		}
		shape := engine.Shape()
		shape.Type = brush.Custom
		shape.Custom = mask
		if err := engine.UpdateShape(shape); err != nil {
			log.Fatalf("Failed to use tip: %v", err)
		}
	}

	background := stroke.NewBufferLayer("background", *width, *height)
	if *bgImage != "" {
		img, err := imaging.Open(*bgImage)
		if err != nil {
			log.Fatalf("Failed to load background: %v", err)
		}
		background.Buf = paint.FromImageSize(img, *width, *height)
	} else {
		drawBackground(background.Buf)
	}
	layer := stroke.NewBufferLayer("paint", *width, *height)

	var commits int
	c := stroke.New(engine, stroke.NewBrush(paint.RGB(220, 60, 40), brushMode),
		stroke.WithLayer(layer),
		stroke.WithCommitHandler(func(ev stroke.CommitEvent) {
			commits++
		}))

	drawWaves(c, *width, *height)
	drawEraser(c, *width, *height)

	// Clone and heal work on the background, where there is texture.
	c.SetLayer(background)
	drawClone(c, *width, *height)

	if *cursor != "" {
		if err := imaging.Save(brush.CreateBrushCursor(engine.Settings()), *cursor); err != nil {
			log.Fatalf("Failed to save cursor: %v", err)
		}
	}

	out := background.Buf.Clone()
	if err := paint.BlendBuffers(out, layer.Buf, layerMode, 1); err != nil {
		log.Fatalf("Failed to composite: %v", err)
	}
	if err := imaging.Save(out.ToImage(), *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := engine.CacheStats()
	log.Printf("Painting saved to %s (%dx%d, %d strokes, stamp cache %d/%d hits)\n",
		*output, *width, *height, commits, st.Hits, st.Hits+st.Misses)
}

func loadPreset(path, name string) (brush.Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return brush.Preset{}, err
	}
	defer f.Close()

	all, err := brush.LoadPresets(f)
	if err != nil {
		return brush.Preset{}, err
	}
	for _, p := range all {
		if name == "" || p.Name == name {
			return p, nil
		}
	}
	return brush.DefaultPreset(name), nil
}

// loadTip reads a brush tip image. Tips are usually drawn dark on light,
// so coverage is the inverted gray level scaled by the image's own alpha.
func loadTip(path string) (*paint.Mask, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, 256, 256, imaging.Lanczos)
	gray := imaging.Invert(imaging.Grayscale(img))

	b := gray.Bounds()
	mask := paint.NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px := gray.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			mask.Set(x, y, uint8(int(px.R)*int(px.A)/255))
		}
	}
	return mask, nil
}

func drawBackground(buf *paint.PixelBuffer) {
	w, h := buf.Width(), buf.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(y) / float64(max(h-1, 1))
			stripe := 0.0
			if (x/16+y/16)%2 == 0 {
				stripe = 12
			}
			buf.SetPixel(x, y, paint.RGB(
				paint.ClampByte(70+t*90+stripe),
				paint.ClampByte(110+t*60+stripe),
				paint.ClampByte(170-t*40+stripe)))
		}
	}
}

// drawWaves paints sine strokes with rising pressure, then a soft
// multiply pass across them.
func drawWaves(c *stroke.Controller, w, h int) {
	engine := c.Engine()
	s := engine.Settings()
	s.Size = 24
	s.Pressure = brush.PressureDynamics{Size: true, Opacity: true}
	_ = engine.UpdateSettings(s)

	for row := 0; row < 3; row++ {
		baseY := float64(h) * (0.2 + 0.12*float64(row))
		wave(c, w, baseY, 30)
	}

	s.Hardness = 0
	s.Flow = 35
	s.Opacity = 80
	_ = engine.UpdateSettings(s)
	c.SetStrategy(stroke.NewBrush(paint.RGB(40, 90, 200), paint.BlendMultiply))
	wave(c, w, float64(h)*0.32, 60)
}

func wave(c *stroke.Controller, w int, baseY, amp float64) {
	steps := 80
	left, right := float64(w)*0.1, float64(w)*0.9
	_ = c.PointerDown(stroke.Event{X: left, Y: baseY, Pressure: 0.2})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.PointerMove(stroke.Event{
			X:        left + (right-left)*t,
			Y:        baseY + amp*math.Sin(t*4*math.Pi),
			Pressure: 0.2 + 0.8*t,
		})
	}
	c.PointerUp(stroke.Event{})
}

func drawEraser(c *stroke.Controller, w, h int) {
	engine := c.Engine()
	s := engine.Settings()
	s.Size, s.Hardness, s.Opacity, s.Flow = 18, 60, 100, 100
	s.Pressure = brush.PressureDynamics{}
	_ = engine.UpdateSettings(s)

	c.SetStrategy(stroke.NewEraser())
	x := float64(w) * 0.5
	_ = c.PointerDown(stroke.Event{X: x, Y: float64(h) * 0.1})
	c.PointerMove(stroke.Event{X: x, Y: float64(h) * 0.6})
	c.PointerUp(stroke.Event{})
}

func drawClone(c *stroke.Controller, w, h int) {
	engine := c.Engine()
	s := engine.Settings()
	s.Size, s.Hardness = 40, 70
	_ = engine.UpdateSettings(s)

	src := image.Pt(w/5, h*3/4)
	clone := stroke.NewClone(true, paint.BlendNormal)
	c.SetStrategy(clone)
	_ = c.PointerDown(stroke.Event{X: float64(src.X), Y: float64(src.Y), Alt: true})
	line(c, float64(w)*0.45, float64(h)*0.75, float64(w)*0.65, float64(h)*0.8)

	heal := stroke.NewHeal(stroke.DefaultDiffusion, true)
	c.SetStrategy(heal)
	_ = c.PointerDown(stroke.Event{X: float64(src.X), Y: float64(src.Y), Alt: true})
	line(c, float64(w)*0.7, float64(h)*0.7, float64(w)*0.9, float64(h)*0.9)
	c.Deactivate()
}

func line(c *stroke.Controller, x0, y0, x1, y1 float64) {
	_ = c.PointerDown(stroke.Event{X: x0, Y: y0})
	c.PointerMove(stroke.Event{X: x1, Y: y1})
	c.PointerUp(stroke.Event{})
}
