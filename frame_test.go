package display

import (
	"errors"
	"image/color"
	"testing"

	"github.com/BeatGlow/reaction/pixel"
)

func mustFrame(t *testing.T, w, h int, a Addressing) *Frame {
	t.Helper()
	f, err := NewFrame(w, h, a)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		w, h    int
		wantLen int
		wantErr bool
	}{
		{128, 64, 1025, false},
		{128, 32, 513, false},
		{64, 48, 385, false},
		{96, 16, 193, false},
		{8, 8, 9, false},
		{0, 64, 0, true},
		{128, 0, 0, true},
		{-8, 8, 0, true},
		{128, 60, 0, true},
	}
	for _, test := range tests {
		f, err := NewFrame(test.w, test.h, RowBand)
		if test.wantErr {
			if !errors.Is(err, ErrSize) {
				t.Errorf("%dx%d: expected ErrSize, got %v", test.w, test.h, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%dx%d: %v", test.w, test.h, err)
		}
		if v := f.Len(); v != test.wantLen {
			t.Errorf("%dx%d: expected length %d, got %d", test.w, test.h, test.wantLen, v)
		}
		if v := FrameSize(test.w, test.h); v != test.wantLen {
			t.Errorf("%dx%d: expected FrameSize %d, got %d", test.w, test.h, test.wantLen, v)
		}
		if v := f.Bytes()[0]; v != FrameCommand {
			t.Errorf("%dx%d: expected command byte %#02x, got %#02x", test.w, test.h, FrameCommand, v)
		}
		for i, v := range f.Bytes()[1:] {
			if v != 0 {
				t.Fatalf("%dx%d: byte %d is %#02x, expected zero", test.w, test.h, i+1, v)
			}
		}
	}
}

func TestFrameSetPixel(t *testing.T) {
	const w, h = 128, 64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f := mustFrame(t, w, h, RowBand)
			if err := f.SetPixel(x, y); err != nil {
				t.Fatalf("(%d,%d): %v", x, y, err)
			}
			var (
				buf   = f.Bytes()
				index = 1 + x + (y>>3)*w
				bit   = byte(1) << uint(x&7)
			)
			if buf[index] != bit {
				t.Fatalf("(%d,%d): byte %d is %#08b, expected %#08b", x, y, index, buf[index], bit)
			}
			for i, v := range buf {
				if i != 0 && i != index && v != 0 {
					t.Fatalf("(%d,%d): unexpected byte %d set to %#02x", x, y, i, v)
				}
			}
			if buf[0] != FrameCommand {
				t.Fatalf("(%d,%d): command byte overwritten", x, y)
			}
			if v := f.Len(); v != 1025 {
				t.Fatalf("(%d,%d): frame length changed to %d", x, y, v)
			}
		}
	}
}

func TestFrameSetPixelExample(t *testing.T) {
	f := mustFrame(t, 128, 64, RowBand)
	if err := f.SetPixel(5, 0); err != nil {
		t.Fatal(err)
	}
	if v := f.Bytes()[6]; v != 1<<5 {
		t.Errorf("expected byte 6 to be %#02x, got %#02x", 1<<5, v)
	}
}

func TestFrameSetPixelVerticalLSB(t *testing.T) {
	f := mustFrame(t, 128, 64, VerticalLSB)
	if err := f.SetPixel(5, 11); err != nil {
		t.Fatal(err)
	}
	index := 1 + 5 + 1*128
	if v := f.Bytes()[index]; v != 1<<3 {
		t.Errorf("expected byte %d to be %#02x, got %#02x", index, 1<<3, v)
	}
	if f.At(5, 11) != pixel.On {
		t.Error("expected (5,11) to be on")
	}
	if f.At(5, 10) != pixel.Off {
		t.Error("expected (5,10) to be off")
	}
}

func TestFrameSetPixelBounds(t *testing.T) {
	f := mustFrame(t, 128, 64, RowBand)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {128, 0}, {0, 64}, {200, 200}} {
		if err := f.SetPixel(p[0], p[1]); !errors.Is(err, ErrBounds) {
			t.Errorf("(%d,%d): expected ErrBounds, got %v", p[0], p[1], err)
		}
	}
	for i, v := range f.Bytes()[1:] {
		if v != 0 {
			t.Fatalf("byte %d modified by out of bounds write", i+1)
		}
	}
	if v := f.Len(); v != 1025 {
		t.Errorf("frame length changed to %d", v)
	}
}

func TestFrameFill(t *testing.T) {
	f := mustFrame(t, 128, 64, RowBand)
	for _, value := range []byte{0xff, 0x00, 0xa5} {
		f.Fill(value)
		if v := f.Bytes()[0]; v != FrameCommand {
			t.Fatalf("fill %#02x: command byte is %#02x", value, v)
		}
		for i, v := range f.Bytes()[1:] {
			if v != value {
				t.Fatalf("fill %#02x: byte %d is %#02x", value, i+1, v)
			}
		}
		if v := f.Len(); v != 1025 {
			t.Fatalf("fill %#02x: frame length changed to %d", value, v)
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	for _, a := range []Addressing{RowBand, VerticalLSB} {
		t.Run(a.String(), func(it *testing.T) {
			var (
				f   = mustFrame(it, 128, 64, a)
				rec = new(recordingPeripheral)
			)
			f.Fill(0xff)
			if err := Transmit(rec, f); err != nil {
				it.Fatal(err)
			}
			if len(rec.sent) != 1 {
				it.Fatalf("expected 1 transfer, got %d", len(rec.sent))
			}

			// Decode the transferred bytes into a fresh frame.
			g := mustFrame(it, 128, 64, a)
			copy(g.Bytes(), rec.sent[0])
			for y := 0; y < 64; y++ {
				for x := 0; x < 128; x++ {
					if g.At(x, y) != pixel.On {
						it.Fatalf("pixel (%d,%d) is off after round trip", x, y)
					}
				}
			}

			f.Clear()
			for y := 0; y < 64; y++ {
				for x := 0; x < 128; x++ {
					if f.At(x, y) != pixel.Off {
						it.Fatalf("pixel (%d,%d) is on after clear", x, y)
					}
				}
			}
		})
	}
}

func TestFrameSet(t *testing.T) {
	f := mustFrame(t, 16, 8, VerticalLSB)
	f.Set(3, 4, color.White)
	if f.At(3, 4) != pixel.On {
		t.Fatal("expected (3,4) to be on")
	}
	f.Set(3, 4, color.Black)
	if f.At(3, 4) != pixel.Off {
		t.Fatal("expected (3,4) to be off")
	}
	f.Set(16, 0, color.White)
	if v := f.At(16, 0); v != color.Transparent {
		t.Errorf("expected out of bounds pixel to be transparent, got %v", v)
	}
}

func TestParseAddressing(t *testing.T) {
	for _, a := range []Addressing{RowBand, VerticalLSB} {
		v, err := ParseAddressing(a.String())
		if err != nil {
			t.Fatal(err)
		}
		if v != a {
			t.Errorf("expected %s, got %s", a, v)
		}
	}
	if _, err := ParseAddressing("diagonal"); err == nil {
		t.Error("expected error for unknown addressing")
	}
}

type recordingPeripheral struct {
	sent [][]byte
}

func (p *recordingPeripheral) SendData(buf []byte) error {
	p.sent = append(p.sent, append([]byte(nil), buf...))
	return nil
}
