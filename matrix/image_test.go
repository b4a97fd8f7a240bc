package matrix

import (
	"errors"
	"testing"

	"github.com/BeatGlow/reaction/pixel"
)

func TestParseImage(t *testing.T) {
	i, err := ParseImage("000,255\n 001 , 000 \n\n")
	if err != nil {
		t.Fatal(err)
	}
	if v := i.Bounds().Size(); v.X != 2 || v.Y != 2 {
		t.Fatalf("expected 2x2 image, got %s", v)
	}
	want := [][]pixel.Mono{
		{pixel.Off, pixel.On},
		{pixel.On, pixel.Off},
	}
	for y, row := range want {
		for x, c := range row {
			if i.At(x, y) != c {
				t.Errorf("pixel (%d,%d) is %v, expected %v", x, y, i.At(x, y), c)
			}
		}
	}
}

func TestParseImageErrors(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"empty", ""},
		{"blank", "\n  \n"},
		{"ragged", "0,0,0\n0,0"},
		{"overflow", "256,0"},
		{"garbage", "a,b"},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if _, err := ParseImage(test.s); !errors.Is(err, ErrImage) {
				it.Errorf("expected ErrImage, got %v", err)
			}
		})
	}
}

func TestFaces(t *testing.T) {
	for name, i := range map[string]*pixel.MonoImage{"happy": Happy, "sad": Sad} {
		if v := i.Bounds().Size(); v.X != 5 || v.Y != 5 {
			t.Errorf("%s: expected 5x5, got %s", name, v)
		}
		if v := i.Lit(); v != 7 {
			t.Errorf("%s: expected 7 lit LEDs, got %d", name, v)
		}
	}
	if Happy.At(0, 2) != pixel.On || Sad.At(0, 4) != pixel.On {
		t.Error("faces have the wrong mouth")
	}
}
