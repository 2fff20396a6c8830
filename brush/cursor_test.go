package brush

import "testing"

func TestCreateBrushCursor(t *testing.T) {
	s := DefaultSettings()
	s.Size = 20

	img := CreateBrushCursor(s)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Fatalf("cursor bounds = %v, want 24x24", b)
	}

	// Center is 12; the outline runs at radius 10 and the crosshair
	// straddles the center.
	tests := []struct {
		name  string
		x, y  int
		drawn bool
	}{
		{"outline right", 21, 12, true},
		{"outline top", 12, 2, true},
		{"crosshair", 12, 12, true},
		{"inside ring", 17, 17, false},
		{"corner", 0, 0, false},
	}
	for _, tt := range tests {
		a := img.NRGBAAt(tt.x, tt.y).A
		if tt.drawn && a == 0 {
			t.Errorf("%s (%d,%d) is empty", tt.name, tt.x, tt.y)
		}
		if !tt.drawn && a != 0 {
			t.Errorf("%s (%d,%d) alpha = %d, want 0", tt.name, tt.x, tt.y, a)
		}
	}
}

func TestCreateBrushCursorTiny(t *testing.T) {
	s := DefaultSettings()
	s.Size = 0.5
	img := CreateBrushCursor(s)
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("cursor bounds = %v, want 5x5", b)
	}
}
