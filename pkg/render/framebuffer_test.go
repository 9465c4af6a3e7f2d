package render

import "testing"

func TestNewFramebufferValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"default size", 320, 200, false},
		{"odd width", 321, 200, true},
		{"zero width", 0, 200, true},
		{"zero height", 320, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := NewFramebuffer(tt.width, tt.height)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFramebuffer: %v", err)
			}
			if fb.Width() != tt.width || fb.Height() != tt.height {
				t.Errorf("size = %dx%d", fb.Width(), fb.Height())
			}
		})
	}
}

// Writing one pixel of a byte must leave its neighbor alone.
func TestSetPixelNibblePacking(t *testing.T) {
	fb, err := NewFramebuffer(4, 2)
	if err != nil {
		t.Fatal(err)
	}

	fb.SetPixel(0, 0, 0xA)
	fb.SetPixel(1, 0, 0x5)
	if got := fb.GetPixel(0, 0); got != 0xA {
		t.Errorf("pixel (0,0) = %#x, want 0xA", got)
	}
	if got := fb.GetPixel(1, 0); got != 0x5 {
		t.Errorf("pixel (1,0) = %#x, want 0x5", got)
	}

	// Even x lands in the high nibble of the shared byte.
	if got := fb.pix[0]; got != 0xA5 {
		t.Errorf("packed byte = %#x, want 0xA5", got)
	}

	// Overwriting one half keeps the other.
	fb.SetPixel(0, 0, 0x3)
	if got := fb.pix[0]; got != 0x35 {
		t.Errorf("packed byte after rewrite = %#x, want 0x35", got)
	}
}

func TestSetPixelOutOfBoundsDropped(t *testing.T) {
	fb, err := NewFramebuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []struct{ x, y int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100},
	} {
		fb.SetPixel(p.x, p.y, 0xF)
	}
	for _, b := range fb.pix {
		if b != 0 {
			t.Fatalf("out-of-bounds write landed in the buffer: % x", fb.pix)
		}
	}
	if got := fb.GetPixel(-1, -1); got != 0 {
		t.Errorf("out-of-bounds read = %#x, want 0", got)
	}
}

func TestClear(t *testing.T) {
	fb, err := NewFramebuffer(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	fb.Clear(7)
	for y := 0; y < 2; y++ {
		for x := 0; x < 8; x++ {
			if got := fb.GetPixel(x, y); got != 7 {
				t.Fatalf("pixel (%d,%d) = %d after Clear(7)", x, y, got)
			}
		}
	}
}

func TestStride(t *testing.T) {
	fb, err := NewFramebuffer(320, 200)
	if err != nil {
		t.Fatal(err)
	}
	if fb.stride != 160 {
		t.Errorf("stride = %d, want 160", fb.stride)
	}
	if len(fb.pix) != 160*200 {
		t.Errorf("buffer = %d bytes, want %d", len(fb.pix), 160*200)
	}
	// Address of (x, y) is y*stride + x/2.
	fb.SetPixel(2, 3, 0xC)
	if got := fb.pix[3*160+1]; got>>4 != 0xC {
		t.Errorf("pixel (2,3) stored at wrong address")
	}
}

func TestToImageUsesPalette(t *testing.T) {
	fb, err := NewFramebuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	fb.SetPixel(0, 0, 15)
	img := fb.ToImage()
	if got := img.RGBAAt(0, 0); got != DefaultPalette[15] {
		t.Errorf("pixel 15 = %v, want %v", got, DefaultPalette[15])
	}
	if got := img.RGBAAt(1, 1); got != DefaultPalette[0] {
		t.Errorf("background = %v, want %v", got, DefaultPalette[0])
	}
}
