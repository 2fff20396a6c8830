package stroke

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
)

// recorder collects commit events.
type recorder struct {
	events []CommitEvent
}

func (r *recorder) handle(ev CommitEvent) {
	r.events = append(r.events, ev)
}

func hardSettings(size, spacing float64) brush.Settings {
	s := brush.DefaultSettings()
	s.Size = size
	s.Spacing = spacing
	return s
}

func newTestController(t *testing.T, s brush.Settings, strategy Strategy) (*Controller, *BufferLayer, *recorder) {
	t.Helper()
	engine := brush.NewEngine(brush.WithSettings(s))
	if engine.Settings() != s {
		t.Fatalf("settings rejected: %+v", s)
	}
	layer := NewBufferLayer("test", 100, 100)
	rec := &recorder{}
	c := New(engine, strategy, WithLayer(layer), WithCommitHandler(rec.handle))
	return c, layer, rec
}

func TestPointerDownWithoutLayer(t *testing.T) {
	c := New(brush.NewEngine(), NewBrush(paint.Red, paint.BlendNormal))
	if err := c.PointerDown(Event{X: 5, Y: 5}); !errors.Is(err, ErrNoActiveLayer) {
		t.Fatalf("PointerDown() = %v, want ErrNoActiveLayer", err)
	}
	if c.Painting() {
		t.Error("controller painting without a layer")
	}

	c.SetLayer(&BufferLayer{Name: "empty"})
	if err := c.PointerDown(Event{X: 5, Y: 5}); !errors.Is(err, ErrNoActiveLayer) {
		t.Errorf("PointerDown() on a layer without pixels = %v, want ErrNoActiveLayer", err)
	}

	// Idle events are ignored.
	c.PointerMove(Event{X: 10, Y: 10})
	c.PointerUp(Event{})
}

func TestStrokeLogging(t *testing.T) {
	var buf bytes.Buffer
	paint.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { paint.SetLogger(nil) })

	c := New(brush.NewEngine(), NewBrush(paint.Red, paint.BlendNormal))
	_ = c.PointerDown(Event{X: 1, Y: 1})
	c.SetLayer(NewBufferLayer("l", 8, 8))
	_ = c.PointerDown(Event{X: 4, Y: 4})
	c.PointerUp(Event{})

	out := buf.String()
	for _, want := range []string{"without an active layer", "stroke: begin", "stroke: commit", "generating stamp"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestStampSpacing(t *testing.T) {
	tests := []struct {
		name       string
		spacing    float64 // percent of a 10 px brush
		moves      []paint.Point
		wantStamps int
	}{
		{"ten intervals", 25, []paint.Point{{X: 35, Y: 50}}, 11},
		{"below spacing", 25, []paint.Point{{X: 11, Y: 50}}, 1},
		{"accumulates from last stamp", 25, []paint.Point{{X: 11, Y: 50}, {X: 12.5, Y: 50}}, 2},
		{"remainder not stamped", 25, []paint.Point{{X: 16, Y: 50}}, 3},
		{"zero spacing stamps every sample", 0, []paint.Point{{X: 10.1, Y: 50}, {X: 10.2, Y: 50}, {X: 10.2, Y: 50}, {X: 40, Y: 50}}, 5},
		{"diagonal", 50, []paint.Point{{X: 40, Y: 90}}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, rec := newTestController(t, hardSettings(10, tt.spacing), NewBrush(paint.Black, paint.BlendNormal))
			if err := c.PointerDown(Event{X: 10, Y: 50}); err != nil {
				t.Fatal(err)
			}
			for _, p := range tt.moves {
				c.PointerMove(Event{X: p.X, Y: p.Y})
			}
			c.PointerUp(Event{})

			if len(rec.events) != 1 {
				t.Fatalf("got %d commits, want 1", len(rec.events))
			}
			ev := rec.events[0]
			if ev.Stamps != tt.wantStamps || len(ev.Path) != tt.wantStamps {
				t.Errorf("stamps = %d (path %d), want %d", ev.Stamps, len(ev.Path), tt.wantStamps)
			}
			if ev.Path[0] != paint.Pt(10, 50) {
				t.Errorf("first stamp at %v, want (10, 50)", ev.Path[0])
			}
		})
	}
}

// Stamps along a straight line are evenly spaced and never more than the
// spacing apart, so the stroke leaves no gaps.
func TestStampSpacingEven(t *testing.T) {
	c, layer, rec := newTestController(t, hardSettings(10, 25), NewBrush(paint.Black, paint.BlendNormal))
	if err := c.PointerDown(Event{X: 10, Y: 50}); err != nil {
		t.Fatal(err)
	}
	for x := 13.0; x <= 60; x += 3 {
		c.PointerMove(Event{X: x, Y: 50})
	}
	c.PointerUp(Event{})

	path := rec.events[0].Path
	for i := 1; i < len(path); i++ {
		if d := path[i-1].Distance(path[i]); math.Abs(d-2.5) > 1e-9 {
			t.Fatalf("stamps %d and %d are %v apart, want 2.5", i-1, i, d)
		}
	}
	for x := 10; x <= 55; x++ {
		if got := layer.Buf.GetPixel(x, 50); got.A != 255 {
			t.Fatalf("gap at x=%d: %v", x, got)
		}
	}
}

func TestCommitOnPointerUp(t *testing.T) {
	c, layer, rec := newTestController(t, hardSettings(10, 25), NewBrush(paint.Red, paint.BlendNormal))

	if err := c.PointerDown(Event{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	c.PointerMove(Event{X: 60, Y: 50})

	if !c.Painting() {
		t.Fatal("Painting() = false during a stroke")
	}
	if got := layer.Buf.GetPixel(50, 50); got != paint.Transparent {
		t.Fatalf("layer modified before commit: %v", got)
	}
	if len(rec.events) != 0 {
		t.Fatal("commit before PointerUp")
	}

	c.PointerUp(Event{X: 60, Y: 50})
	c.PointerUp(Event{X: 60, Y: 50})

	if c.Painting() {
		t.Error("Painting() = true after PointerUp")
	}
	if len(rec.events) != 1 {
		t.Fatalf("got %d commits, want exactly 1", len(rec.events))
	}
	if got := layer.Buf.GetPixel(55, 50); got != paint.Red {
		t.Errorf("pixel(55,50) = %v, want %v", got, paint.Red)
	}

	ev := rec.events[0]
	if ev.Layer != Layer(layer) {
		t.Error("commit event names the wrong layer")
	}
	if want := image.Rect(45, 45, 65, 55); ev.Dirty != want {
		t.Errorf("Dirty = %v, want %v", ev.Dirty, want)
	}
	if got := ev.Before.GetPixel(55, 50); got != paint.Transparent {
		t.Errorf("Before snapshot was painted: %v", got)
	}
	if got := layer.Buf.GetPixel(70, 50); got != paint.Transparent {
		t.Errorf("pixel outside the stroke = %v", got)
	}
}

func TestCommitOnInterruption(t *testing.T) {
	tests := []struct {
		name      string
		interrupt func(c *Controller)
	}{
		{"deactivate", func(c *Controller) { c.Deactivate() }},
		{"set strategy", func(c *Controller) { c.SetStrategy(NewEraser()) }},
		{"set layer", func(c *Controller) { c.SetLayer(NewBufferLayer("other", 10, 10)) }},
		{"pointer down", func(c *Controller) { _ = c.PointerDown(Event{X: 5, Y: 5}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, layer, rec := newTestController(t, hardSettings(10, 25), NewBrush(paint.Blue, paint.BlendNormal))
			if err := c.PointerDown(Event{X: 50, Y: 50}); err != nil {
				t.Fatal(err)
			}
			tt.interrupt(c)

			if len(rec.events) != 1 {
				t.Fatalf("got %d commits, want 1", len(rec.events))
			}
			if rec.events[0].Layer != Layer(layer) {
				t.Error("stroke committed to the wrong layer")
			}
			if got := layer.Buf.GetPixel(50, 50); got != paint.Blue {
				t.Errorf("pixel(50,50) = %v, want %v", got, paint.Blue)
			}
		})
	}
}

func TestDeactivateIdle(t *testing.T) {
	c, _, rec := newTestController(t, hardSettings(10, 25), NewBrush(paint.Blue, paint.BlendNormal))
	c.Deactivate()
	c.SetStrategy(NewEraser())
	if len(rec.events) != 0 {
		t.Errorf("idle controller committed %d strokes", len(rec.events))
	}
	if _, ok := c.Strategy().(*Eraser); !ok {
		t.Errorf("Strategy() = %T, want *Eraser", c.Strategy())
	}
}

func TestPressureScalesSize(t *testing.T) {
	tests := []struct {
		pressure float64
		want     image.Rectangle
	}{
		{0, image.Rect(40, 40, 60, 60)},
		{1, image.Rect(40, 40, 60, 60)},
		{0.5, image.Rect(45, 45, 55, 55)},
		{0.01, image.Rect(50, 50, 51, 51)},
	}
	for _, tt := range tests {
		c, _, rec := newTestController(t, hardSettings(20, 25), NewBrush(paint.Black, paint.BlendNormal))
		if err := c.PointerDown(Event{X: 50, Y: 50, Pressure: tt.pressure}); err != nil {
			t.Fatal(err)
		}
		c.PointerUp(Event{})
		if got := rec.events[0].Dirty; got != tt.want {
			t.Errorf("pressure %v: dirty = %v, want %v", tt.pressure, got, tt.want)
		}
	}
}

func TestPressureInterpolated(t *testing.T) {
	s := hardSettings(20, 25)
	s.Pressure = brush.PressureDynamics{Opacity: true}
	c, layer, _ := newTestController(t, s, NewBrush(paint.Black, paint.BlendNormal))
	layer.Buf.Fill(paint.White)

	if err := c.PointerDown(Event{X: 10, Y: 50, Pressure: 0.2}); err != nil {
		t.Fatal(err)
	}
	c.PointerMove(Event{X: 90, Y: 50, Pressure: 1})
	c.PointerUp(Event{})

	// Opacity rises along the stroke, so the far end is darker.
	start, end := layer.Buf.GetPixel(10, 50), layer.Buf.GetPixel(88, 50)
	if end.R >= start.R {
		t.Errorf("end %v not darker than start %v", end, start)
	}
}

func TestSmoothingLagsBehind(t *testing.T) {
	s := hardSettings(10, 0)
	s.Smoothing = 50
	c, _, rec := newTestController(t, s, NewBrush(paint.Black, paint.BlendNormal))

	if err := c.PointerDown(Event{X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}
	c.PointerMove(Event{X: 20, Y: 10})
	c.PointerUp(Event{})

	// History (10,10)x1 and (20,10)x2 averages to x=16.67; halfway from 10.
	got := rec.events[0].Path[1]
	if math.Abs(got.X-40.0/3) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("smoothed point = %v, want (13.33, 10)", got)
	}
}

func TestAltDownWithoutSourceStartsStroke(t *testing.T) {
	c, layer, _ := newTestController(t, hardSettings(10, 25), NewBrush(paint.Green, paint.BlendNormal))
	if err := c.PointerDown(Event{X: 50, Y: 50, Alt: true}); err != nil {
		t.Fatal(err)
	}
	if !c.Painting() {
		t.Fatal("brush ignored an Alt pointer-down")
	}
	c.PointerUp(Event{})
	if got := layer.Buf.GetPixel(50, 50); got != paint.Green {
		t.Errorf("pixel(50,50) = %v, want %v", got, paint.Green)
	}
}

func BenchmarkStroke(b *testing.B) {
	s := brush.DefaultSettings()
	s.Size, s.Hardness, s.Flow = 24, 40, 30
	engine := brush.NewEngine(brush.WithSettings(s))
	layer := NewBufferLayer("bench", 512, 512)
	c := New(engine, NewBrush(paint.Red, paint.BlendMultiply), WithLayer(layer))

	for b.Loop() {
		_ = c.PointerDown(Event{X: 20, Y: 20})
		for i := 1; i <= 40; i++ {
			c.PointerMove(Event{X: 20 + float64(i)*12, Y: 20 + float64(i)*10, Pressure: 0.7})
		}
		c.PointerUp(Event{})
	}
}
